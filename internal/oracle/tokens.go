package oracle

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// Примерный размер одного объекта placement в токенах ответа.
	tokensPerPlacement = 120
	// Обёртка {"placements": [...]} и запас на пробелы.
	envelopeTokens = 256
)

// OutputTokenCap возвращает лимит токенов ответа, пропорциональный числу изображений.
// Слишком маленький лимит обрезает JSON, поэтому нижняя граница минимум.
func OutputTokenCap(imageCount, minTokens, maxTokens int) int {
	want := imageCount*tokensPerPlacement + envelopeTokens
	if want < minTokens {
		want = minTokens
	}
	if maxTokens > 0 && want > maxTokens {
		want = maxTokens
	}
	return want
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// EstimateTokens оценивает число токенов текста через cl100k_base.
// Используется, когда провайдер не вернул usage. Если словарь недоступен,
// считаем по четыре символа на токен.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	if encoding != nil {
		return len(encoding.Encode(text, nil, nil))
	}
	n := utf8.RuneCountInString(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
