package describer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	describedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sseol_describer_images_total",
			Help: "Images described, by outcome (success, cache_hit, fallback).",
		},
		[]string{"outcome"},
	)
	describeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sseol_describer_request_duration_seconds",
			Help:    "Duration of a single image description call.",
			Buckets: prometheus.DefBuckets,
		},
	)
)
