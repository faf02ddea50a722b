package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sseol-server/internal/domain"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiOracle вызывает Gemini через google.golang.org/genai в JSON-режиме.
type GeminiOracle struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	pricing     Pricing
	logger      *zap.Logger
}

// NewGeminiOracle создаёт клиента Gemini API.
func NewGeminiOracle(ctx context.Context, opts Options) (*GeminiOracle, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiOracle{
		client:      client,
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		pricing:     opts.Pricing,
		logger:      opts.logger().Named("GeminiOracle"),
	}, nil
}

func (o *GeminiOracle) Model() string { return o.model }

// Client отдаёт genai клиента для переиспользования (например, описателем изображений).
func (o *GeminiOracle) Client() *genai.Client { return o.client }

func (o *GeminiOracle) Invoke(ctx context.Context, req Request) (*Result, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}},
		Temperature:       genai.Ptr(o.temperature),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   int32(req.MaxOutputTokens),
	}
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: req.Prompt}},
	}}

	o.logger.Debug("Sending placement request",
		zap.String("model", o.model),
		zap.Int("prompt_bytes", len(req.Prompt)),
		zap.Int("max_output_tokens", req.MaxOutputTokens),
	)

	start := time.Now()
	resp, err := o.client.Models.GenerateContent(ctx, o.model, contents, config)
	latency := time.Since(start)
	if err != nil {
		observeError(ProviderGemini, o.model, "error")
		o.logger.Warn("Gemini request failed", zap.Duration("latency", latency), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		observeError(ProviderGemini, o.model, "error_empty_response")
		return nil, fmt.Errorf("%w: empty response", domain.ErrOracleUnavailable)
	}

	candidate := resp.Candidates[0]
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			text.WriteString(part.Text)
		}
	}

	res := &Result{
		Text:         text.String(),
		Model:        o.model,
		FinishReason: string(candidate.FinishReason),
		Latency:      latency,
	}
	if resp.UsageMetadata != nil {
		res.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		res.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		res.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	finalize(res, req, o.pricing)
	observe(ProviderGemini, res)

	o.logger.Info("Placement response received",
		zap.Duration("latency", latency),
		zap.Int("response_length", len(res.Text)),
		zap.String("finish_reason", res.FinishReason),
		zap.Int("total_tokens", res.TotalTokens),
	)
	return res, nil
}
