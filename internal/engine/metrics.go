package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blend_weight_jobs_processed_total",
		Help: "Weight jobs processed, by final status.",
	}, []string{"status"})

	pipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blend_weight_pipeline_duration_seconds",
		Help:    "Time spent running the weight pipeline for one job.",
		Buckets: prometheus.DefBuckets,
	})
)
