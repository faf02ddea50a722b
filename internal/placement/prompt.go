package placement

import (
	"encoding/json"
	"fmt"
	"strings"

	"sseol-server/internal/domain"
)

// SystemInstruction - системная инструкция модели размещения, отдельная от промпта.
const SystemInstruction = `당신은 한국어 썰(짧은 이야기) 편집자입니다.
사용자가 올린 이미지를 이야기의 장면과 대사에 가장 잘 어울리게 배치합니다.
반드시 유효한 JSON 객체 하나만 출력하고, 설명이나 마크다운은 쓰지 않습니다.`

// BuildPrompt собирает промпт размещения. Чистая функция: одинаковый вход даёт одинаковый текст.
// Порядок блоков важен: жёсткие правила в начале, данные и мягкие подсказки
// в середине, напоминание о схеме в конце.
func BuildPrompt(scenes []domain.Scene, images []domain.ImageDescriptor, ctx *domain.PlacementContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "이야기의 장면 %d개와 이미지 %d장이 있습니다. 각 이미지를 가장 어울리는 장면에 배치하세요.\n\n", len(scenes), len(images))

	b.WriteString("## 필수 규칙\n")
	b.WriteString("1. 모든 이미지는 정확히 한 번만 배치합니다. 빠뜨리거나 중복하지 마세요.\n")
	fmt.Fprintf(&b, "2. imageIndex는 0부터 %d까지, sceneIndex는 0부터 %d까지의 정수입니다.\n", max(len(images)-1, 0), max(len(scenes)-1, 0))
	b.WriteString("3. 한 장면에는 scene-scope 이미지를 최대 1장만 둡니다.\n")
	b.WriteString("4. 한 대사에는 이미지를 최대 1장만 둡니다.\n")
	b.WriteString("5. 규칙이 충돌하면 confidence가 더 높은 배치를 남깁니다.\n")
	b.WriteString("6. statement-scope는 특정 대사의 순간을 보여줄 때만 쓰고, statementIndices는 해당 장면의 대사 번호만 씁니다.\n\n")

	b.WriteString("## 장면\n")
	writeScenes(&b, scenes)

	b.WriteString("\n## 이미지\n")
	writeImages(&b, images)

	if !ctx.IsEmpty() {
		writeContext(&b, ctx)
	}

	b.WriteString("\n## 배치 기준\n")
	b.WriteString("- 이미지의 분위기(mood)와 장면의 감정이 맞는지 봅니다.\n")
	b.WriteString("- 장면 전체의 배경이나 분위기를 보여주는 이미지는 scene-scope로 둡니다.\n")
	b.WriteString("- 대사 한두 줄의 구체적인 행동이나 사물을 보여주는 이미지는 statement-scope로 둡니다.\n")
	b.WriteString("- 가능하면 이미지를 여러 장면에 고르게 나눕니다.\n")

	b.WriteString("\n## 출력 예시\n")
	for _, example := range workedExamples(scenes, images) {
		b.WriteString("```json\n")
		b.WriteString(example)
		b.WriteString("\n```\n")
	}

	b.WriteString("\n## 출력 형식\n")
	b.WriteString(`{"placements": [{"imageIndex": 정수, "type": "scene-scope" 또는 "statement-scope", "sceneIndex": 정수, "statementIndices": [정수, ...] (statement-scope일 때만), "confidence": 0.0~1.0, "reason": "배치 이유"}]}`)
	fmt.Fprintf(&b, "\nplacements 배열에는 이미지 %d장 모두가 들어가야 합니다. JSON 외의 텍스트는 출력하지 마세요.\n", len(images))

	return b.String()
}

func writeScenes(b *strings.Builder, scenes []domain.Scene) {
	for si, scene := range scenes {
		fmt.Fprintf(b, "장면 %d:\n", si)
		if len(scene.Statements) == 0 {
			b.WriteString("  (대사 없음)\n")
		}
		for sti, st := range scene.Statements {
			fmt.Fprintf(b, "  [%d] %s\n", sti, strings.TrimSpace(st.DisplayText))
		}
	}
}

func writeImages(b *strings.Builder, images []domain.ImageDescriptor) {
	for i, img := range images {
		fmt.Fprintf(b, "이미지 %d: %s\n", i, strings.TrimSpace(img.Description))
		if img.Mood != "" {
			fmt.Fprintf(b, "  분위기: %s\n", img.Mood)
		}
		if len(img.Subjects) > 0 {
			fmt.Fprintf(b, "  피사체: %s\n", strings.Join(img.Subjects, ", "))
		}
	}
}

func writeContext(b *strings.Builder, ctx *domain.PlacementContext) {
	if len(ctx.Characters) > 0 {
		b.WriteString("\n## 등장인물\n")
		for _, c := range ctx.Characters {
			line := "- " + c.Name
			if c.Description != "" {
				line += ": " + c.Description
			}
			if len(c.Traits) > 0 {
				line += " (특징: " + strings.Join(c.Traits, ", ") + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	if len(ctx.Locations) > 0 {
		b.WriteString("\n## 장소\n")
		for _, l := range ctx.Locations {
			line := "- " + l.Name
			if l.Description != "" {
				line += ": " + l.Description
			}
			if l.Mood != "" {
				line += " (분위기: " + l.Mood + ")"
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n## 인물/장소 매칭\n")
	if len(ctx.Characters) > 0 {
		b.WriteString("- 이미지의 피사체가 등장인물의 특징과 맞으면 그 인물이 나오는 장면에 둡니다.\n")
	}
	if len(ctx.Locations) > 0 {
		b.WriteString("- 이미지의 분위기나 배경이 장소와 맞으면 그 장소가 나오는 장면에 둡니다.\n")
	}
}

type examplePlacement struct {
	ImageIndex       int     `json:"imageIndex"`
	Type             string  `json:"type"`
	SceneIndex       int     `json:"sceneIndex"`
	StatementIndices []int   `json:"statementIndices,omitempty"`
	Confidence       float64 `json:"confidence"`
	Reason           string  `json:"reason"`
}

// workedExamples строит 1-2 примера с реальными индексами первых изображений:
// scene-scope для первого изображения и statement-scope для второго (или того же, если оно одно).
func workedExamples(scenes []domain.Scene, images []domain.ImageDescriptor) []string {
	if len(images) == 0 || len(scenes) == 0 {
		return nil
	}

	examples := []examplePlacement{{
		ImageIndex: 0,
		Type:       string(domain.PlacementSceneScope),
		SceneIndex: 0,
		Confidence: 0.9,
		Reason:     "장면 전체의 분위기와 이미지의 분위기가 일치함",
	}}

	second := 0
	if len(images) > 1 {
		second = 1
	}
	sceneForStatement := 0
	if len(scenes) > 1 {
		sceneForStatement = 1
	}
	if len(scenes[sceneForStatement].Statements) > 0 {
		examples = append(examples, examplePlacement{
			ImageIndex:       second,
			Type:             string(domain.PlacementStatementScope),
			SceneIndex:       sceneForStatement,
			StatementIndices: []int{0},
			Confidence:       0.8,
			Reason:           "대사에 나오는 행동을 이미지가 직접 보여줌",
		})
	}

	out := make([]string, 0, len(examples))
	for _, ex := range examples {
		data, _ := json.MarshalIndent(map[string][]examplePlacement{"placements": {ex}}, "", "  ")
		out = append(out, string(data))
	}
	return out
}
