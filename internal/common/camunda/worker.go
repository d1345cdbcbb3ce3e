package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"feasibility-workers/internal/common/config"
	"feasibility-workers/internal/common/metrics"
	"feasibility-workers/internal/common/observability"
)

// Job outcomes, as seen from the commands a handler issued.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeThrown    = "bpmn_error"
	OutcomeNone      = "no_command"
)

// Worker is an open Zeebe job worker for one task type.
type Worker struct {
	taskType  string
	jobWorker worker.JobWorker
	logger    *zap.Logger
}

// StartWorker opens an instrumented job worker. It returns nil when the
// worker is disabled in the configuration.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler worker.JobHandler,
	obs *observability.Observability,
	log *zap.Logger,
) *Worker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, obs)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)

	return &Worker{taskType: taskType, jobWorker: jw, logger: log}
}

// Stop closes the worker and waits for in-flight jobs.
func (w *Worker) Stop() {
	if w == nil {
		return
	}
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.jobWorker.Close()
	w.jobWorker.AwaitClose()
}

// Instrument wraps a handler with job metrics. The outcome is taken from
// the last command the handler created on the job client.
func Instrument(taskType string, next worker.JobHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		rc := &recordingClient{JobClient: client, outcome: OutcomeNone}
		start := time.Now()
		next(rc, job)
		elapsed := time.Since(start)

		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		if rc.outcome == OutcomeCompleted {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		} else {
			metrics.WorkerJobsFailed.WithLabelValues(taskType, rc.outcome).Inc()
		}

		ctx := context.Background()
		obs.RecordJobProcessed(ctx, taskType, rc.outcome)
		obs.RecordJobDuration(ctx, taskType, elapsed, rc.outcome)
	}
}

type recordingClient struct {
	worker.JobClient
	outcome string
}

func (c *recordingClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.outcome = OutcomeCompleted
	return c.JobClient.NewCompleteJobCommand()
}

func (c *recordingClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.outcome = OutcomeFailed
	return c.JobClient.NewFailJobCommand()
}

func (c *recordingClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.outcome = OutcomeThrown
	return c.JobClient.NewThrowErrorCommand()
}
