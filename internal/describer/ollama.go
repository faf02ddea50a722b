package describer

import (
	"context"
	"encoding/json"
	"fmt"

	"sseol-server/internal/domain"

	"github.com/ollama/ollama/api"
)

// OllamaDescriber описывает изображения локальной мультимодальной моделью (llava и т.п.).
type OllamaDescriber struct {
	client *api.Client
	model  string
}

func NewOllamaDescriber(client *api.Client, model string) *OllamaDescriber {
	return &OllamaDescriber{client: client, model: model}
}

func (d *OllamaDescriber) Describe(ctx context.Context, img Image) (domain.ImageDescriptor, error) {
	stream := false
	req := &api.ChatRequest{
		Model: d.model,
		Messages: []api.Message{{
			Role:    "user",
			Content: describeInstruction,
			Images:  []api.ImageData{img.Data},
		}},
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
	}

	var resp api.ChatResponse
	if err := d.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	}); err != nil {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: %v", domain.ErrDescribeFailed, err)
	}
	return parseDescriptor(resp.Message.Content)
}
