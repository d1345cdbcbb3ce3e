package computefeasibilityscore

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"feasibility-workers/internal/common/camunda"
	"feasibility-workers/internal/common/errors"
	"feasibility-workers/internal/common/logger"
	"feasibility-workers/internal/common/metrics"
	"feasibility-workers/internal/document"
	"feasibility-workers/internal/feasibility"
	"feasibility-workers/internal/session"
	"feasibility-workers/pkg/registry"
)

const TaskType = "compute-feasibility-score"

type Handler struct {
	config   *Config
	activity *registry.Activity
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	activity, err := camunda.LookupActivity(TaskType)
	if err != nil {
		return nil, err
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		activity: activity,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	set, err := session.DecodeAnswerSet(input.AnswerSet)
	if err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}

	breakdown := feasibility.ScoreBreakdown(set)
	tier := feasibility.TierFor(breakdown.Total)
	recs := document.Recommendations(breakdown.Total)

	metrics.FeasibilityScore.Observe(float64(breakdown.Total))

	h.logger.Info("feasibility score calculated", map[string]interface{}{
		"score":     breakdown.Total,
		"tier":      tier,
		"breakdown": breakdown,
	})

	return &Output{
		FeasibilityScore: breakdown.Total,
		ScoreTier:        tier,
		ScoreBreakdown:   breakdown,
		Recommendations:  recs[:],
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
