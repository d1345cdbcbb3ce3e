package renderdocument

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"feasibility-workers/internal/common/camunda"
	"feasibility-workers/internal/common/errors"
	"feasibility-workers/internal/common/logger"
	"feasibility-workers/internal/common/metrics"
	"feasibility-workers/internal/document"
	"feasibility-workers/internal/session"
	"feasibility-workers/pkg/registry"
)

const TaskType = "render-document"

const insertAuditSQL = `INSERT INTO document_audit
	(id, document_type, filename, score, page_count, size_bytes)
	VALUES ($1, $2, $3, $4, $5, $6)`

// DocumentKey is the Redis key holding a rendered PDF.
func DocumentKey(id string) string {
	return "document:" + id
}

type Handler struct {
	config   *Config
	renderer *document.Renderer
	redis    redis.Cmdable
	db       *sql.DB
	activity *registry.Activity
	errors   *errors.ErrorHandler
	logger   logger.Logger
	now      func() time.Time
}

// NewHandler wires the renderer to its stores. A nil db disables the audit row.
func NewHandler(config *Config, rdb redis.Cmdable, db *sql.DB, log logger.Logger) (*Handler, error) {
	activity, err := camunda.LookupActivity(TaskType)
	if err != nil {
		return nil, err
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		renderer: document.NewRenderer(document.Config{
			BrandName: config.BrandName,
			Currency:  config.Currency,
		}),
		redis:    rdb,
		db:       db,
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
	docType, err := document.ParseDocumentType(input.DocumentType)
	if err != nil {
		return nil, errors.NewInvalidDocumentTypeError(input.DocumentType)
	}

	set, err := session.DecodeAnswerSet(input.AnswerSet)
	if err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}

	result, err := h.renderer.Render(set, docType)
	if err != nil {
		return nil, errors.NewDocumentRenderFailedError(string(docType), err)
	}

	id := uuid.New().String()
	if err := h.redis.Set(ctx, DocumentKey(id), result.Bytes, h.config.DocumentTTL).Err(); err != nil {
		return nil, errors.NewDocumentStoreFailedError(err)
	}

	if err := h.recordAudit(ctx, id, result); err != nil {
		return nil, err
	}

	metrics.DocumentsRendered.WithLabelValues(string(docType)).Inc()
	metrics.DocumentPages.WithLabelValues(string(docType)).Observe(float64(result.Pages))

	h.logger.Info("document rendered", map[string]interface{}{
		"documentId":   id,
		"documentType": docType,
		"pages":        result.Pages,
		"sizeBytes":    len(result.Bytes),
	})

	return &Output{
		DocumentID:       id,
		DocumentType:     string(docType),
		Filename:         result.Filename,
		PageCount:        result.Pages,
		SizeBytes:        len(result.Bytes),
		FeasibilityScore: result.Score,
		ExpiresAt:        h.now().UTC().Add(h.config.DocumentTTL).Format(time.RFC3339),
	}, nil
}

func (h *Handler) recordAudit(ctx context.Context, id string, result *document.Result) error {
	if h.db == nil {
		return nil
	}
	_, err := h.db.ExecContext(ctx, insertAuditSQL,
		id,
		string(result.Type),
		result.Filename,
		int64(result.Score),
		int64(result.Pages),
		int64(len(result.Bytes)),
	)
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewDatabaseQueryTimeoutError("insert document_audit")
	}
	return errors.NewDatabaseInsertFailedError(err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
