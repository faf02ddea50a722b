package describer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sseol-server/internal/domain"
	"sseol-server/internal/utils"
)

// Image - загруженное изображение.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// ImageDescriber описывает одно изображение. Index в результате выставляет пул.
type ImageDescriber interface {
	Describe(ctx context.Context, img Image) (domain.ImageDescriptor, error)
}

// fallbackDescription - описание-заглушка для изображения, которое не удалось описать.
const fallbackDescription = "이미지 설명을 가져오지 못했습니다"

// FallbackDescriptor возвращает описание-заглушку для позиции index.
func FallbackDescriptor(index int) domain.ImageDescriptor {
	return domain.ImageDescriptor{Index: index, Description: fallbackDescription}
}

// describeInstruction - запрос к модели зрения. Ответ ожидается JSON-объектом.
const describeInstruction = `이 이미지를 짧은 이야기(썰)에 넣을 삽화로 쓰려고 합니다.
다음 JSON 객체 하나만 출력하세요:
{"description": "이미지를 한두 문장으로 설명", "mood": "분위기 한 단어", "subjects": ["주요 피사체"], "dominantColors": ["#rrggbb"]}`

type descriptorPayload struct {
	Description    string   `json:"description"`
	Mood           string   `json:"mood"`
	Subjects       []string `json:"subjects"`
	DominantColors []string `json:"dominantColors"`
}

// parseDescriptor разбирает ответ модели зрения. Пустое описание считается ошибкой.
func parseDescriptor(text string) (domain.ImageDescriptor, error) {
	objectText, ok := utils.RepairJSONObject(text)
	if !ok {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: response is not a JSON object", domain.ErrDescribeFailed)
	}

	var payload descriptorPayload
	if err := json.Unmarshal([]byte(objectText), &payload); err != nil {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: %v", domain.ErrDescribeFailed, err)
	}

	description := strings.TrimSpace(payload.Description)
	if description == "" {
		return domain.ImageDescriptor{}, fmt.Errorf("%w: empty description", domain.ErrDescribeFailed)
	}

	return domain.ImageDescriptor{
		Description:    description,
		Mood:           strings.TrimSpace(payload.Mood),
		Subjects:       nonEmpty(payload.Subjects),
		DominantColors: nonEmpty(payload.DominantColors),
	}, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
