package placement

import "sseol-server/internal/domain"

const (
	gapFillConfidence = 0.5
	gapFillReason     = "자동 보완: 모델이 배치하지 않은 이미지"
)

// Complete дополняет частичный список размещений так, чтобы каждое
// изображение из [0, imageCount) встречалось ровно один раз.
// Недостающие изображения обходятся по возрастанию индекса: сначала занимается
// сцена с наименьшим индексом, которую ещё никто не использует, а когда
// свободных сцен нет - сцена по ProportionalScene.
// Входной срез не изменяется; синтезированные записи идут после исходных.
func Complete(valid []domain.Placement, imageCount, sceneCount int) []domain.Placement {
	result := make([]domain.Placement, 0, imageCount)
	result = append(result, valid...)

	covered := make(map[int]bool, len(valid))
	usedScenes := make(map[int]bool, sceneCount)
	for _, p := range valid {
		covered[p.ImageIndex] = true
		usedScenes[p.SceneIndex] = true
	}

	nextFree := 0
	for i := 0; i < imageCount; i++ {
		if covered[i] {
			continue
		}

		for nextFree < sceneCount && usedScenes[nextFree] {
			nextFree++
		}
		target := nextFree
		if nextFree >= sceneCount {
			target = ProportionalScene(i, imageCount, sceneCount)
		}

		usedScenes[target] = true
		covered[i] = true
		result = append(result, domain.Placement{
			ImageIndex: i,
			Type:       domain.PlacementSceneScope,
			SceneIndex: target,
			Confidence: gapFillConfidence,
			Reason:     gapFillReason,
		})
	}
	return result
}

// IsComplete сообщает, покрывают ли размещения все изображения.
func IsComplete(placements []domain.Placement, imageCount int) bool {
	seen := make(map[int]bool, len(placements))
	for _, p := range placements {
		if p.ImageIndex >= 0 && p.ImageIndex < imageCount {
			seen[p.ImageIndex] = true
		}
	}
	return len(seen) == imageCount
}
