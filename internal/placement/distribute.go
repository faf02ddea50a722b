package placement

import "sseol-server/internal/domain"

const (
	fallbackConfidence = 0.3
	fallbackReason     = "자동 배치: 장면에 고르게 분배됨"
)

// ProportionalScene возвращает сцену для изображения imageIndex при равномерном
// распределении total изображений по sceneCount сценам:
// floor(imageIndex / total * sceneCount), ограниченное последней сценой.
// Используется и при дозаполнении пропусков, и в резервном распределении.
func ProportionalScene(imageIndex, total, sceneCount int) int {
	if sceneCount <= 0 || total <= 0 || imageIndex <= 0 {
		return 0
	}
	// целочисленная форма той же формулы, без ошибок округления float
	scene := imageIndex * sceneCount / total
	if scene > sceneCount-1 {
		scene = sceneCount - 1
	}
	return scene
}

// Fallback распределяет все изображения по сценам без обращения к модели.
// Без сцен все изображения получают sceneIndex 0.
func Fallback(imageCount, sceneCount int) []domain.Placement {
	placements := make([]domain.Placement, 0, imageCount)
	for i := 0; i < imageCount; i++ {
		placements = append(placements, domain.Placement{
			ImageIndex: i,
			Type:       domain.PlacementSceneScope,
			SceneIndex: ProportionalScene(i, imageCount, sceneCount),
			Confidence: fallbackConfidence,
			Reason:     fallbackReason,
		})
	}
	return placements
}
