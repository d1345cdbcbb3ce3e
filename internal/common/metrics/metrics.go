package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed or thrown as BPMN errors by worker",
		},
		[]string{"task_type", "outcome"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	FeasibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feasibility_score",
			Help:    "Distribution of computed feasibility scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	DocumentsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_rendered_total",
			Help: "Total number of PDF documents rendered",
		},
		[]string{"document_type"},
	)

	DocumentPages = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_pages",
			Help:    "Page count of rendered documents",
			Buckets: prometheus.LinearBuckets(1, 1, 6),
		},
		[]string{"document_type"},
	)
)
