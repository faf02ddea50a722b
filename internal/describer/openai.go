package describer

import (
	"context"
	"encoding/base64"
	"fmt"

	"sseol-server/internal/domain"

	openaigo "github.com/sashabaranov/go-openai"
)

// OpenAIDescriber описывает изображения через vision-модель OpenAI (data URL).
type OpenAIDescriber struct {
	client *openaigo.Client
	model  string
}

func NewOpenAIDescriber(client *openaigo.Client, model string) *OpenAIDescriber {
	return &OpenAIDescriber{client: client, model: model}
}

func (d *OpenAIDescriber) Describe(ctx context.Context, img Image) (domain.ImageDescriptor, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))

	resp, err := d.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: d.model,
		Messages: []openaigo.ChatCompletionMessage{{
			Role: openaigo.ChatMessageRoleUser,
			MultiContent: []openaigo.ChatMessagePart{
				{Type: openaigo.ChatMessagePartTypeText, Text: describeInstruction},
				{Type: openaigo.ChatMessagePartTypeImageURL, ImageURL: &openaigo.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openaigo.ImageURLDetailLow,
				}},
			},
		}},
		MaxTokens: 1024,
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: %v", domain.ErrDescribeFailed, err)
	}
	if len(resp.Choices) == 0 {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: empty response", domain.ErrDescribeFailed)
	}
	return parseDescriptor(resp.Choices[0].Message.Content)
}
