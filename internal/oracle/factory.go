package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sseol-server/internal/config"

	"go.uber.org/zap"
)

// Имена провайдеров для меток метрик.
const (
	ProviderGemini = config.ProviderGemini
	ProviderOpenAI = config.ProviderOpenAI
	ProviderOllama = config.ProviderOllama
)

// Options - общие параметры всех реализаций PlacementOracle.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float32
	Pricing     Pricing
	Logger      *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// OptionsFromConfig собирает Options из конфигурации сервиса.
func OptionsFromConfig(cfg *config.Config, pricing Pricing, logger *zap.Logger) Options {
	return Options{
		APIKey:      cfg.OracleAPIKey,
		Model:       cfg.OracleModel,
		BaseURL:     cfg.OracleBaseURL,
		Timeout:     cfg.OracleTimeout,
		Temperature: cfg.OracleTemperature,
		Pricing:     pricing,
		Logger:      logger,
	}
}

// New создаёт PlacementOracle в зависимости от cfg.OracleProvider.
func New(ctx context.Context, cfg *config.Config, pricing Pricing, logger *zap.Logger) (PlacementOracle, error) {
	opts := OptionsFromConfig(cfg, pricing, logger)
	switch strings.ToLower(cfg.OracleProvider) {
	case ProviderGemini:
		return NewGeminiOracle(ctx, opts)
	case ProviderOpenAI:
		return NewOpenAIOracle(opts), nil
	case ProviderOllama:
		return NewOllamaOracle(opts)
	default:
		return nil, fmt.Errorf("unknown oracle provider: '%s'", cfg.OracleProvider)
	}
}

// finalize дополняет usage оценкой tiktoken, если провайдер его не вернул, и считает стоимость.
func finalize(res *Result, req Request, pricing Pricing) {
	if res.InputTokens == 0 {
		res.InputTokens = EstimateTokens(req.SystemInstruction) + EstimateTokens(req.Prompt)
	}
	if res.OutputTokens == 0 {
		res.OutputTokens = EstimateTokens(res.Text)
	}
	if res.TotalTokens < res.InputTokens+res.OutputTokens {
		res.TotalTokens = res.InputTokens + res.OutputTokens
	}
	if pricing != nil {
		res.CostUSD = pricing.Cost(res.Model, res.InputTokens, res.OutputTokens)
	}
}
