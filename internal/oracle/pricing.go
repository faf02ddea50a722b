package oracle

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// ModelPrice - цена за миллион токенов в USD.
type ModelPrice struct {
	InputPerMillion  float64 `yaml:"input_per_million" json:"input_per_million"`
	OutputPerMillion float64 `yaml:"output_per_million" json:"output_per_million"`
}

// CostBreakdown - оценочная стоимость вызова.
type CostBreakdown struct {
	InputUSD  float64
	OutputUSD float64
	TotalUSD  float64
}

// Pricing - таблица цен по имени модели.
type Pricing map[string]ModelPrice

// DefaultPricing возвращает встроенные цены. Локальные модели (ollama) стоят 0.
func DefaultPricing() Pricing {
	return Pricing{
		"gemini-2.5-flash":      {InputPerMillion: 0.30, OutputPerMillion: 2.50},
		"gemini-2.5-flash-lite": {InputPerMillion: 0.10, OutputPerMillion: 0.40},
		"gemini-2.5-pro":        {InputPerMillion: 1.25, OutputPerMillion: 10.00},
		"gpt-4o-mini":           {InputPerMillion: 0.15, OutputPerMillion: 0.60},
		"gpt-4o":                {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	}
}

// Cost считает стоимость вызова. Для неизвестной модели возвращается нулевая стоимость.
func (p Pricing) Cost(model string, promptTokens, completionTokens int) CostBreakdown {
	price, ok := p[strings.ToLower(model)]
	if !ok {
		return CostBreakdown{}
	}
	in := float64(promptTokens) * price.InputPerMillion / 1_000_000.0
	out := float64(completionTokens) * price.OutputPerMillion / 1_000_000.0
	return CostBreakdown{InputUSD: in, OutputUSD: out, TotalUSD: in + out}
}

type pricingFile struct {
	Models map[string]ModelPrice `yaml:"models" json:"models"`
}

// LoadPricing читает YAML/JSON файл с ценами и накладывает его поверх встроенной таблицы.
// Пустой путь возвращает встроенную таблицу.
func LoadPricing(path string) (Pricing, error) {
	pricing := DefaultPricing()
	if path == "" {
		return pricing, nil
	}

	var f pricingFile
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("failed to read pricing file %s: %w", path, err)
	}
	for model, price := range f.Models {
		pricing[strings.ToLower(model)] = price
	}
	return pricing, nil
}
