package domain

// TokenUsage - количество токенов одного вызова модели.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// Cost - оценочная стоимость вызова в USD.
type Cost struct {
	InputUSD  float64 `json:"inputUsd"`
	OutputUSD float64 `json:"outputUsd"`
	TotalUSD  float64 `json:"totalUsd"`
}

// Usage сопровождает каждый результат размещения, в том числе резервный.
type Usage struct {
	Model        string     `json:"model"`
	Tokens       TokenUsage `json:"tokens"`
	Cost         Cost       `json:"cost"`
	LatencyMs    int64      `json:"latencyMs"`
	FinishReason string     `json:"finishReason,omitempty"`
}
