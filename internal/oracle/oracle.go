package oracle

import (
	"context"
	"time"
)

// Request - один вызов модели: системная инструкция, промпт и лимит ответа.
type Request struct {
	SystemInstruction string
	Prompt            string
	MaxOutputTokens   int
}

// Result - сырой ответ модели и сведения о вызове.
type Result struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	CostUSD      CostBreakdown
	FinishReason string
	Latency      time.Duration
}

// PlacementOracle - внешняя генеративная модель, принимающая решение о размещении.
// Реализации работают в режиме "только JSON", не делают повторов и
// оборачивают любые ошибки транспорта в domain.ErrOracleUnavailable.
type PlacementOracle interface {
	Invoke(ctx context.Context, req Request) (*Result, error)
	Model() string
}
