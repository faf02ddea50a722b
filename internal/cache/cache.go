package cache

import (
	"context"

	"sseol-server/internal/domain"
)

// DescriptorCache хранит описания изображений по хэшу содержимого.
// Get возвращает domain.ErrCacheMiss, если записи нет.
type DescriptorCache interface {
	Get(ctx context.Context, key string) (domain.ImageDescriptor, error)
	Set(ctx context.Context, key string, descriptor domain.ImageDescriptor) error
}

// NoopCache - кэш, который ничего не хранит. Используется, когда Redis не настроен.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (domain.ImageDescriptor, error) {
	return domain.ImageDescriptor{}, domain.ErrCacheMiss
}

func (NoopCache) Set(context.Context, string, domain.ImageDescriptor) error { return nil }

var _ DescriptorCache = NoopCache{}
