package savesession

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"feasibility-workers/internal/common/camunda"
	"feasibility-workers/internal/common/errors"
	"feasibility-workers/internal/common/logger"
	"feasibility-workers/internal/session"
	"feasibility-workers/pkg/registry"
)

const TaskType = "save-session"

type Handler struct {
	config   *Config
	store    *session.Store
	activity *registry.Activity
	errors   *errors.ErrorHandler
	logger   logger.Logger
	now      func() time.Time
}

func NewHandler(config *Config, rdb redis.Cmdable, log logger.Logger) (*Handler, error) {
	activity, err := camunda.LookupActivity(TaskType)
	if err != nil {
		return nil, err
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		store:    session.NewStore(rdb, config.SessionTTL),
		activity: activity,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
		now:      time.Now,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, h.activity, &input); err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"error": err})
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ValidateAccount(input.Email, input.Password, input.ConfirmPassword); err != nil {
		return nil, err
	}

	set, err := session.DecodeAnswerSet(input.AnswerSet)
	if err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}

	email := strings.TrimSpace(input.Email)
	if err := h.store.Save(ctx, input.SessionID, set, email); err != nil {
		return nil, errors.NewSessionSaveFailedError(err)
	}

	now := h.now().UTC()
	h.logger.Info("session saved", map[string]interface{}{
		"sessionId":    input.SessionID,
		"businessName": set.BusinessName,
	})

	return &Output{
		Saved:     true,
		SavedAt:   now.Format(time.RFC3339),
		ExpiresAt: now.Add(h.store.TTL()).Format(time.RFC3339),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
