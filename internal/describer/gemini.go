package describer

import (
	"context"
	"fmt"
	"strings"

	"sseol-server/internal/domain"

	"google.golang.org/genai"
)

// GeminiDescriber описывает изображения через Gemini, передавая картинку как InlineData.
type GeminiDescriber struct {
	client *genai.Client
	model  string
}

func NewGeminiDescriber(client *genai.Client, model string) *GeminiDescriber {
	return &GeminiDescriber{client: client, model: model}
}

func (d *GeminiDescriber) Describe(ctx context.Context, img Image) (domain.ImageDescriptor, error) {
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: img.Data}},
			{Text: describeInstruction},
		},
	}}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  1024,
	}

	resp, err := d.client.Models.GenerateContent(ctx, d.model, contents, config)
	if err != nil {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: %v", domain.ErrDescribeFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: empty response", domain.ErrDescribeFailed)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			text.WriteString(part.Text)
		}
	}
	return parseDescriptor(text.String())
}
