// Package scenes разбивает сырой текст истории на сцены и реплики.
package scenes

import (
	"regexp"
	"strings"

	"sseol-server/internal/domain"
)

var (
	// [장면 1], [Scene 2], #1, ## 3, 장면 4:, Scene 5:
	sceneHeaderRegex = regexp.MustCompile(`(?i)^(\[\s*(장면|scene)\s*\d+\s*\]|#+\s*\d+|(장면|scene)\s*\d+\s*:?)$`)
	// -, *, •, 1., 2)
	listMarkerRegex = regexp.MustCompile(`^([-*•]|\d+[.)])\s+`)
)

// Parse делит текст на сцены по пустым строкам. Каждая непустая строка сцены
// становится репликой. Заголовок в начале сцены отбрасывается. Сцена без
// реплик после этого не создаётся. Индексы сцен и реплик сплошные, с нуля.
func Parse(text string) []domain.Scene {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	scenes := make([]domain.Scene, 0)
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		scene := domain.Scene{Index: len(scenes), Statements: make([]domain.Statement, 0, len(current))}
		for _, line := range current {
			scene.Statements = append(scene.Statements, domain.Statement{
				Index:       len(scene.Statements),
				DisplayText: line,
			})
		}
		scenes = append(scenes, scene)
		current = nil
	}

	atSceneStart := true
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			atSceneStart = true
			continue
		}
		if atSceneStart {
			atSceneStart = false
			if sceneHeaderRegex.MatchString(line) {
				continue
			}
		}
		line = strings.TrimSpace(listMarkerRegex.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		current = append(current, line)
	}
	flush()

	return scenes
}
