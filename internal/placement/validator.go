package placement

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"sseol-server/internal/domain"
	"sseol-server/internal/utils"

	"go.uber.org/zap"
)

const (
	defaultConfidence = 0.7
	defaultReason     = "모델이 이유를 제시하지 않음"
)

// DecodeEnvelope разбирает ответ модели и возвращает сырой массив placements.
// Сначала строгий разбор, затем самая длинная подстрока {...}.
// Ошибка (domain.ErrMalformedResponse) означает, что ответ непригоден целиком.
func DecodeEnvelope(rawText string) ([]interface{}, error) {
	objectText, ok := utils.ExtractJSONObject(rawText)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", domain.ErrMalformedResponse)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal([]byte(objectText), &envelope); err != nil {
		return nil, fmt.Errorf("%w: top-level value is not an object: %v", domain.ErrMalformedResponse, err)
	}

	entries, ok := envelope["placements"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing placements array", domain.ErrMalformedResponse)
	}
	return entries, nil
}

// Validator нормализует сырые записи модели. Никогда не возвращает ошибку:
// неподходящие записи отбрасываются и только логируются.
type Validator struct {
	logger *zap.Logger
}

// NewValidator создаёт валидатор; nil логгер допустим.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Parse = DecodeEnvelope + Validate. На неразборчивом ответе возвращает пустой список.
func (v *Validator) Parse(rawText string, scenes []domain.Scene, imageCount int) []domain.Placement {
	entries, err := DecodeEnvelope(rawText)
	if err != nil {
		v.logger.Debug("Oracle response rejected", zap.Error(err))
		return []domain.Placement{}
	}
	return v.Validate(entries, scenes, imageCount)
}

// Validate проходит записи по порядку и принимает первую запись для каждого imageIndex.
// Повторы отбрасываются без сравнения confidence, хотя промпт говорит модели,
// что при конфликте побеждает большая уверенность.
func (v *Validator) Validate(entries []interface{}, scenes []domain.Scene, imageCount int) []domain.Placement {
	accepted := make([]domain.Placement, 0, len(entries))
	seen := make(map[int]bool, len(entries))

	for pos, raw := range entries {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			v.drop(pos, "entry is not an object")
			continue
		}

		imageIndex, ok := imageIndexOf(obj, imageCount)
		if !ok {
			v.drop(pos, "imageIndex missing or out of range")
			continue
		}
		if seen[imageIndex] {
			v.drop(pos, "duplicate imageIndex", zap.Int("image_index", imageIndex))
			continue
		}

		p := domain.Placement{
			ImageIndex: imageIndex,
			Type:       domain.PlacementSceneScope,
			SceneIndex: sceneIndexOf(obj, len(scenes)),
			Confidence: confidenceOf(obj),
			Reason:     reasonOf(obj),
		}

		if t, _ := obj["type"].(string); t == string(domain.PlacementStatementScope) {
			if indices := statementIndicesOf(obj, domain.StatementCount(scenes, p.SceneIndex)); indices != nil {
				p.Type = domain.PlacementStatementScope
				p.StatementIndices = indices
			}
		}

		seen[imageIndex] = true
		accepted = append(accepted, p)
	}

	v.logger.Debug("Oracle placements validated",
		zap.Int("entries", len(entries)),
		zap.Int("accepted", len(accepted)),
	)
	return accepted
}

func (v *Validator) drop(pos int, reason string, fields ...zap.Field) {
	v.logger.Debug("Dropping oracle placement entry",
		append([]zap.Field{zap.Int("entry_position", pos), zap.String("reason", reason)}, fields...)...)
}

func numberOf(obj map[string]interface{}, key string) (float64, bool) {
	n, ok := obj[key].(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// imageIndexOf принимает только целые индексы: дробный индекс не указывает ни на одно изображение.
func imageIndexOf(obj map[string]interface{}, imageCount int) (int, bool) {
	n, ok := numberOf(obj, "imageIndex")
	if !ok || n != math.Trunc(n) || n < 0 || n >= float64(imageCount) {
		return 0, false
	}
	return int(n), true
}

func sceneIndexOf(obj map[string]interface{}, sceneCount int) int {
	n, ok := numberOf(obj, "sceneIndex")
	if !ok || sceneCount <= 0 {
		return 0
	}
	return clampIndex(n, sceneCount-1)
}

func confidenceOf(obj map[string]interface{}) float64 {
	n, ok := numberOf(obj, "confidence")
	if !ok {
		return defaultConfidence
	}
	return math.Min(1, math.Max(0, n))
}

func reasonOf(obj map[string]interface{}) string {
	reason, _ := obj["reason"].(string)
	if strings.TrimSpace(reason) == "" {
		return defaultReason
	}
	return reason
}

// statementIndicesOf оставляет неотрицательные числа, ограничивает их диапазоном
// реплик сцены и убирает повторы. Пустой результат превращается в [0].
// nil означает, что в сцене нет реплик и запись остаётся scene-scope.
func statementIndicesOf(obj map[string]interface{}, statementCount int) []int {
	if statementCount <= 0 {
		return nil
	}

	rawList, _ := obj["statementIndices"].([]interface{})
	indices := make([]int, 0, len(rawList))
	seen := make(map[int]bool, len(rawList))
	for _, raw := range rawList {
		n, ok := raw.(float64)
		if !ok || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			continue
		}
		idx := clampIndex(n, statementCount-1)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}

	if len(indices) == 0 {
		return []int{0}
	}
	return indices
}

// clampIndex ограничивает n отрезком [0, last] до приведения к int,
// чтобы огромные значения не переполняли int.
func clampIndex(n float64, last int) int {
	if n < 0 {
		return 0
	}
	if n >= float64(last) {
		return last
	}
	return int(n)
}
