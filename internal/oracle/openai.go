package oracle

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sseol-server/internal/domain"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIOracle вызывает OpenAI-совместимый API (OpenAI, OpenRouter) с response_format=json_object.
type OpenAIOracle struct {
	client      *openaigo.Client
	model       string
	temperature float32
	pricing     Pricing
	logger      *zap.Logger
}

// NewOpenAIOracle создаёт клиента. Пустой BaseURL означает api.openai.com.
func NewOpenAIOracle(opts Options) *OpenAIOracle {
	openaiConfig := openaigo.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		openaiConfig.BaseURL = opts.BaseURL
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: opts.Timeout}

	return &OpenAIOracle{
		client:      openaigo.NewClientWithConfig(openaiConfig),
		model:       opts.Model,
		temperature: opts.Temperature,
		pricing:     opts.Pricing,
		logger:      opts.logger().Named("OpenAIOracle"),
	}
}

func (o *OpenAIOracle) Model() string { return o.model }

// Client отдаёт go-openai клиента для переиспользования.
func (o *OpenAIOracle) Client() *openaigo.Client { return o.client }

func (o *OpenAIOracle) Invoke(ctx context.Context, req Request) (*Result, error) {
	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: req.SystemInstruction},
		{Role: openaigo.ChatMessageRoleUser, Content: req.Prompt},
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   req.MaxOutputTokens,
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	latency := time.Since(start)
	if err != nil {
		observeError(ProviderOpenAI, o.model, "error")
		o.logger.Warn("OpenAI request failed", zap.Duration("latency", latency), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		observeError(ProviderOpenAI, o.model, "error_empty_response")
		return nil, fmt.Errorf("%w: empty response", domain.ErrOracleUnavailable)
	}

	res := &Result{
		Text:         resp.Choices[0].Message.Content,
		Model:        o.model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
		FinishReason: string(resp.Choices[0].FinishReason),
		Latency:      latency,
	}
	finalize(res, req, o.pricing)
	observe(ProviderOpenAI, res)

	o.logger.Info("Placement response received",
		zap.Duration("latency", latency),
		zap.Int("response_length", len(res.Text)),
		zap.String("finish_reason", res.FinishReason),
		zap.Int("total_tokens", res.TotalTokens),
	)
	return res, nil
}
