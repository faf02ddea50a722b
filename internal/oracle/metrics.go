package oracle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sseol_oracle_requests_total",
			Help: "Total number of placement oracle requests.",
		},
		[]string{"provider", "model", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sseol_oracle_request_duration_seconds",
			Help:    "Histogram of placement oracle request durations.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90, 120},
		},
		[]string{"provider", "model"},
	)
	promptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sseol_oracle_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(500, 500, 20),
		},
		[]string{"provider", "model"},
	)
	completionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sseol_oracle_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 200, 20),
		},
		[]string{"provider", "model"},
	)
	estimatedCostUSD = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sseol_oracle_estimated_cost_usd_total",
			Help: "Estimated total cost of placement oracle requests in USD.",
		},
		[]string{"provider", "model"},
	)
)

// observe записывает метрики успешного вызова.
func observe(provider string, res *Result) {
	labels := prometheus.Labels{"provider": provider, "model": res.Model}
	requestsTotal.With(prometheus.Labels{"provider": provider, "model": res.Model, "status": "success"}).Inc()
	requestDuration.With(labels).Observe(res.Latency.Seconds())
	if res.TotalTokens > 0 {
		promptTokens.With(labels).Observe(float64(res.InputTokens))
		completionTokens.With(labels).Observe(float64(res.OutputTokens))
	}
	if res.CostUSD.TotalUSD > 0 {
		estimatedCostUSD.With(labels).Add(res.CostUSD.TotalUSD)
	}
}

func observeError(provider, model, status string) {
	requestsTotal.With(prometheus.Labels{"provider": provider, "model": model, "status": status}).Inc()
}
