// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"

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
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
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

	JobMatchScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_match_score",
			Help:    "Distribution of computed job match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"task_type"},
	)

	XPLevelReached = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xp_level_reached_total",
			Help: "Number of times users reached a level",
		},
		[]string{"level"},
	)
)

func ObserveMatchScore(taskType string, score int) {
	JobMatchScore.WithLabelValues(taskType).Observe(float64(score))
}

func RecordLevelReached(level int) {
	XPLevelReached.WithLabelValues(strconv.Itoa(level)).Inc()
}
