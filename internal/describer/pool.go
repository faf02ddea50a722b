package describer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"sseol-server/internal/cache"
	"sseol-server/internal/domain"
	"sseol-server/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency - число одновременных запросов описания.
const DefaultConcurrency = 8

// PoolOptions настраивает пул. Нулевые значения дают 8 воркеров, без лимита частоты и без кэша.
type PoolOptions struct {
	Concurrency int
	// RequestsPerSecond ограничивает частоту вызовов модели всеми воркерами вместе; 0 - без ограничения.
	RequestsPerSecond float64
	Cache             cache.DescriptorCache
}

// Pool описывает пачку изображений ограниченным числом воркеров.
type Pool struct {
	describer   ImageDescriber
	cache       cache.DescriptorCache
	limiter     *rate.Limiter
	concurrency int
	logger      *zap.Logger
}

func NewPool(d ImageDescriber, opts PoolOptions, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	c := opts.Cache
	if c == nil {
		c = cache.NoopCache{}
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return &Pool{
		describer:   d,
		cache:       c,
		limiter:     limiter,
		concurrency: concurrency,
		logger:      logger.Named("DescriberPool"),
	}
}

// DescribeAll возвращает ровно одно описание на каждое изображение, в исходном порядке.
// Воркеры забирают следующий индекс из общего курсора и пишут результат в слот с тем же индексом.
// Ошибка одного изображения заменяется заглушкой и не останавливает остальные.
func (p *Pool) DescribeAll(ctx context.Context, images []Image) []domain.ImageDescriptor {
	results := make([]domain.ImageDescriptor, len(images))
	if len(images) == 0 {
		return results
	}

	workers := min(p.concurrency, len(images))
	var cursor atomic.Int64
	var g errgroup.Group

	start := time.Now()
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1) - 1)
				if i >= len(images) {
					return nil
				}
				results[i] = p.describeOne(ctx, i, images[i])
			}
		})
	}
	// воркеры всегда возвращают nil
	_ = g.Wait()

	p.logger.Info("Image batch described",
		zap.Int("images", len(images)),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results
}

func (p *Pool) describeOne(ctx context.Context, index int, img Image) (result domain.ImageDescriptor) {
	log := p.logger.With(zap.Int("image_index", index), zap.String("name", img.Name))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Describer panicked, using fallback descriptor", zap.Any("panic", r))
			describedTotal.WithLabelValues("fallback").Inc()
			result = FallbackDescriptor(index)
		}
	}()

	key := utils.ContentHash(img.Data)
	cached, err := p.cache.Get(ctx, key)
	if err == nil {
		describedTotal.WithLabelValues("cache_hit").Inc()
		cached.Index = index
		return cached
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		log.Warn("Descriptor cache read failed", zap.Error(err))
	}

	d, err := p.describe(ctx, img)
	if err != nil {
		log.Warn("Image description failed, using fallback descriptor", zap.Error(err))
		describedTotal.WithLabelValues("fallback").Inc()
		return FallbackDescriptor(index)
	}

	describedTotal.WithLabelValues("success").Inc()
	if err := p.cache.Set(ctx, key, d); err != nil {
		log.Warn("Descriptor cache write failed", zap.Error(err))
	}
	d.Index = index
	return d
}

func (p *Pool) describe(ctx context.Context, img Image) (domain.ImageDescriptor, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return domain.ImageDescriptor{}, fmt.Errorf("%w: rate limiter: %v", domain.ErrDescribeFailed, err)
		}
	}
	start := time.Now()
	defer func() { describeDuration.Observe(time.Since(start).Seconds()) }()
	return p.describer.Describe(ctx, img)
}
