package placement

import (
	"context"
	"time"

	"sseol-server/internal/domain"
	"sseol-server/internal/oracle"

	"go.uber.org/zap"
)

// Состояния конвейера для логов.
const (
	stateStart         = "START"
	stateCheckScenes   = "CHECK_SCENES"
	stateInvokeOracle  = "INVOKE_ORACLE"
	stateParse         = "PARSE"
	stateValidate      = "VALIDATE"
	stateCompleteCheck = "COMPLETE_CHECK"
	stateGapFill       = "GAP_FILL"
	stateFallback      = "FALLBACK"
)

// finishReasonError - finishReason результата, если модель не ответила вовсе.
const finishReasonError = "error"

// Options - границы лимита токенов ответа.
type Options struct {
	MinOutputTokens int
	MaxOutputTokens int
}

// Service - конвейер размещения изображений. Без состояния между вызовами,
// безопасен для параллельного использования.
type Service struct {
	oracle    oracle.PlacementOracle
	validator *Validator
	opts      Options
	logger    *zap.Logger
}

// NewService создаёт конвейер поверх переданной модели.
func NewService(o oracle.PlacementOracle, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MinOutputTokens <= 0 {
		opts.MinOutputTokens = 2048
	}
	named := logger.Named("PlacementService")
	return &Service{
		oracle:    o,
		validator: NewValidator(named),
		opts:      opts,
		logger:    named,
	}
}

// PlaceImages возвращает полный список размещений: каждое изображение ровно один раз,
// все индексы в допустимых пределах. Сбои модели и разбора не возвращаются как ошибки,
// а переводят конвейер в резервное распределение с низкой уверенностью.
// Таймаут и отмена - ответственность вызывающего через ctx.
func (s *Service) PlaceImages(ctx context.Context, req domain.PlaceImagesRequest) domain.PlaceImagesResult {
	imageCount := len(req.ImageDescriptors)
	sceneCount := len(req.Scenes)
	log := s.logger.With(zap.Int("images", imageCount), zap.Int("scenes", sceneCount))
	usage := domain.Usage{Model: s.oracle.Model()}

	log.Debug("Placement started", zap.String("state", stateStart))
	if imageCount == 0 {
		return s.finish(log, domain.PlaceImagesResult{Placements: []domain.Placement{}, Usage: usage, Source: domain.SourceEmpty})
	}
	imagesPerRequest.Observe(float64(imageCount))

	log.Debug("Checking scenes", zap.String("state", stateCheckScenes))
	if sceneCount == 0 {
		return s.fallback(log, imageCount, sceneCount, usage, "no scenes")
	}

	prompt := BuildPrompt(req.Scenes, req.ImageDescriptors, req.Context)
	maxOutput := oracle.OutputTokenCap(imageCount, s.opts.MinOutputTokens, s.opts.MaxOutputTokens)

	log.Debug("Invoking oracle", zap.String("state", stateInvokeOracle), zap.Int("max_output_tokens", maxOutput))
	start := time.Now()
	res, err := s.oracle.Invoke(ctx, oracle.Request{
		SystemInstruction: SystemInstruction,
		Prompt:            prompt,
		MaxOutputTokens:   maxOutput,
	})
	if err != nil || res == nil {
		usage.LatencyMs = time.Since(start).Milliseconds()
		usage.FinishReason = finishReasonError
		log.Warn("Oracle invocation failed, using fallback", zap.Error(err))
		return s.fallback(log, imageCount, sceneCount, usage, "oracle unavailable")
	}
	usage = usageFromResult(res, usage.Model)

	log.Debug("Parsing oracle response", zap.String("state", stateParse), zap.Int("response_length", len(res.Text)))
	entries, err := DecodeEnvelope(res.Text)
	if err != nil {
		log.Warn("Malformed oracle response, using fallback",
			zap.Error(err),
			zap.String("finish_reason", res.FinishReason),
		)
		return s.fallback(log, imageCount, sceneCount, usage, "malformed response")
	}

	log.Debug("Validating placements", zap.String("state", stateValidate), zap.Int("entries", len(entries)))
	valid := s.validator.Validate(entries, req.Scenes, imageCount)
	if len(valid) == 0 {
		log.Warn("Oracle returned no valid placements, using fallback", zap.Int("entries", len(entries)))
		return s.fallback(log, imageCount, sceneCount, usage, "no valid entries")
	}

	log.Debug("Checking completeness", zap.String("state", stateCompleteCheck), zap.Int("valid", len(valid)))
	if len(valid) == imageCount {
		return s.finish(log, domain.PlaceImagesResult{Placements: valid, Usage: usage, Source: domain.SourceOracle})
	}

	completed := Complete(valid, imageCount, sceneCount)
	synthesized := len(completed) - len(valid)
	synthesizedTotal.Add(float64(synthesized))
	log.Info("Filled placement gaps", zap.String("state", stateGapFill), zap.Int("synthesized", synthesized))
	return s.finish(log, domain.PlaceImagesResult{Placements: completed, Usage: usage, Source: domain.SourceCompleted})
}

func (s *Service) fallback(log *zap.Logger, imageCount, sceneCount int, usage domain.Usage, reason string) domain.PlaceImagesResult {
	log.Info("Distributing images without oracle", zap.String("state", stateFallback), zap.String("reason", reason))
	return s.finish(log, domain.PlaceImagesResult{
		Placements: Fallback(imageCount, sceneCount),
		Usage:      usage,
		Source:     domain.SourceFallback,
	})
}

func (s *Service) finish(log *zap.Logger, result domain.PlaceImagesResult) domain.PlaceImagesResult {
	resultsTotal.WithLabelValues(string(result.Source)).Inc()
	log.Info("Placement finished",
		zap.String("source", string(result.Source)),
		zap.Int("placements", len(result.Placements)),
		zap.Int64("latency_ms", result.Usage.LatencyMs),
		zap.Int("total_tokens", result.Usage.Tokens.Total),
	)
	return result
}

func usageFromResult(res *oracle.Result, fallbackModel string) domain.Usage {
	model := res.Model
	if model == "" {
		model = fallbackModel
	}
	return domain.Usage{
		Model: model,
		Tokens: domain.TokenUsage{
			Input:  res.InputTokens,
			Output: res.OutputTokens,
			Total:  res.TotalTokens,
		},
		Cost: domain.Cost{
			InputUSD:  res.CostUSD.InputUSD,
			OutputUSD: res.CostUSD.OutputUSD,
			TotalUSD:  res.CostUSD.TotalUSD,
		},
		LatencyMs:    res.Latency.Milliseconds(),
		FinishReason: res.FinishReason,
	}
}
