package placement

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sseol_placement_results_total",
			Help: "Placement results by pipeline branch (empty, oracle, completed, fallback).",
		},
		[]string{"source"},
	)
	imagesPerRequest = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sseol_placement_images",
			Help:    "Number of images per placement request.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)
	synthesizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sseol_placement_synthesized_total",
			Help: "Placements created by gap filling instead of the oracle.",
		},
	)
)
