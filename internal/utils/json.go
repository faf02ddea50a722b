package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSONRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}

// ExtractJSONObject достаёт JSON-объект из ответа модели.
// Порядок: строгий разбор всей строки, затем самая длинная подстрока
// от первой '{' до последней '}'. Возвращает false, если ничего не подошло.
func ExtractJSONObject(rawText string) (string, bool) {
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		return "", false
	}
	if isValidJSON(trimmed) {
		return trimmed, true
	}

	first := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")
	if first == -1 || last <= first {
		return "", false
	}
	candidate := trimmed[first : last+1]
	if isValidJSON(candidate) {
		return candidate, true
	}
	return "", false
}

// RepairJSONObject - более терпимый вариант ExtractJSONObject для описаний
// изображений: дополнительно снимает ```-обёртку и дописывает
// незакрытые скобки у обрезанного ответа.
func RepairJSONObject(rawText string) (string, bool) {
	if s, ok := ExtractJSONObject(rawText); ok {
		return s, true
	}

	text := strings.TrimSpace(rawText)
	if m := fencedJSONRegex.FindStringSubmatch(text); len(m) > 1 {
		text = strings.TrimSpace(m[1])
		if s, ok := ExtractJSONObject(text); ok {
			return s, true
		}
	}

	first := strings.Index(text, "{")
	if first == -1 {
		return "", false
	}
	balanced := balanceBrackets(text[first:])
	if isValidJSON(balanced) {
		return balanced, true
	}
	return "", false
}

// balanceBrackets закрывает незакрытые строки, массивы и объекты в конце текста.
// Скобки внутри строковых литералов не учитываются.
func balanceBrackets(text string) string {
	var stack []rune
	inString := false
	escape := false

	for _, r := range text {
		if escape {
			escape = false
			continue
		}
		if inString {
			switch r {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == r {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(text, " \t\r\n,"))
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteRune(stack[i])
	}
	return b.String()
}

// StringShort обрезает строку до maxLen символов, добавляя многоточие.
func StringShort(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
