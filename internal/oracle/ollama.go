package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sseol-server/internal/domain"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaOracle вызывает локальную модель через нативный API Ollama с format=json.
type OllamaOracle struct {
	client      *api.Client
	model       string
	temperature float32
	timeout     time.Duration
	pricing     Pricing
	logger      *zap.Logger
}

// NewOllamaOracle создаёт клиента Ollama. api.NewClient ожидает URL без суффикса /v1.
func NewOllamaOracle(opts Options) (*OllamaOracle, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ollama base url '%s': %w", baseURL, err)
	}

	return &OllamaOracle{
		client:      api.NewClient(parsedURL, &http.Client{}),
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		pricing:     opts.Pricing,
		logger:      opts.logger().Named("OllamaOracle"),
	}, nil
}

func (o *OllamaOracle) Model() string { return o.model }

// Client отдаёт клиента Ollama для переиспользования.
func (o *OllamaOracle) Client() *api.Client { return o.client }

func (o *OllamaOracle) Invoke(ctx context.Context, req Request) (*Result, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	stream := false
	chatReq := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: req.SystemInstruction},
			{Role: "user", Content: req.Prompt},
		},
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
		Options: map[string]interface{}{
			"temperature": o.temperature,
			"num_predict": req.MaxOutputTokens,
		},
	}

	start := time.Now()
	var resp api.ChatResponse
	err := o.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	latency := time.Since(start)
	if err != nil {
		observeError(ProviderOllama, o.model, "error")
		if errors.Is(err, context.DeadlineExceeded) {
			o.logger.Warn("Ollama request timed out", zap.Duration("timeout", o.timeout), zap.Error(err))
		} else {
			o.logger.Warn("Ollama request failed", zap.Duration("latency", latency), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}

	res := &Result{
		Text:         resp.Message.Content,
		Model:        o.model,
		InputTokens:  resp.PromptEvalCount,
		OutputTokens: resp.EvalCount,
		TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
		FinishReason: resp.DoneReason,
		Latency:      latency,
	}
	finalize(res, req, o.pricing)
	observe(ProviderOllama, res)

	o.logger.Info("Placement response received",
		zap.Duration("latency", latency),
		zap.Int("response_length", len(res.Text)),
		zap.String("finish_reason", res.FinishReason),
		zap.Int("total_tokens", res.TotalTokens),
	)
	return res, nil
}
