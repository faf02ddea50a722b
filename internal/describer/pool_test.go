package describer_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sseol-server/internal/describer"
	"sseol-server/internal/domain"
	"sseol-server/internal/mocks"
	"sseol-server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func makeImages(n int) []describer.Image {
	images := make([]describer.Image, n)
	for i := range images {
		images[i] = describer.Image{Name: fmt.Sprintf("img-%d.jpg", i), MIMEType: "image/jpeg", Data: []byte(fmt.Sprintf("bytes-%d", i))}
	}
	return images
}

// concurrencyProbe считает одновременно выполняющиеся вызовы.
type concurrencyProbe struct {
	mu      sync.Mutex
	current int
	peak    int
}

func (p *concurrencyProbe) enter() {
	p.mu.Lock()
	p.current++
	if p.current > p.peak {
		p.peak = p.current
	}
	p.mu.Unlock()
}

func (p *concurrencyProbe) leave() {
	p.mu.Lock()
	p.current--
	p.mu.Unlock()
}

func TestDescribeAll_OrderAndConcurrencyBound(t *testing.T) {
	d := mocks.NewMockImageDescriber(t)
	probe := &concurrencyProbe{}
	d.On("Describe", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, img describer.Image) domain.ImageDescriptor {
			probe.enter()
			defer probe.leave()
			time.Sleep(5 * time.Millisecond)
			return domain.ImageDescriptor{Index: -1, Description: "desc " + img.Name}
		}, nil).
		Times(20)

	pool := describer.NewPool(d, describer.PoolOptions{Concurrency: 4}, zap.NewNop())
	results := pool.DescribeAll(context.Background(), makeImages(20))

	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, fmt.Sprintf("desc img-%d.jpg", i), r.Description)
	}
	assert.LessOrEqual(t, probe.peak, 4)
	assert.GreaterOrEqual(t, probe.peak, 1)
}

func TestDescribeAll_FailureIsIsolated(t *testing.T) {
	d := mocks.NewMockImageDescriber(t)
	d.On("Describe", mock.Anything, mock.MatchedBy(func(img describer.Image) bool { return img.Name == "img-2.jpg" })).
		Return(domain.ImageDescriptor{}, errors.New("model overloaded")).Once()
	d.On("Describe", mock.Anything, mock.MatchedBy(func(img describer.Image) bool { return img.Name == "img-4.jpg" })).
		Run(func(mock.Arguments) { panic("boom") }).
		Return(domain.ImageDescriptor{}, nil).Once()
	d.On("Describe", mock.Anything, mock.Anything).
		Return(domain.ImageDescriptor{Description: "ok", Mood: "밝음"}, nil).Times(4)

	pool := describer.NewPool(d, describer.PoolOptions{}, zap.NewNop())
	results := pool.DescribeAll(context.Background(), makeImages(6))

	require.Len(t, results, 6)
	assert.Equal(t, describer.FallbackDescriptor(2), results[2])
	assert.Equal(t, describer.FallbackDescriptor(4), results[4])
	for _, i := range []int{0, 1, 3, 5} {
		assert.Equal(t, i, results[i].Index)
		assert.Equal(t, "ok", results[i].Description)
	}
}

func TestDescribeAll_Empty(t *testing.T) {
	d := mocks.NewMockImageDescriber(t)
	pool := describer.NewPool(d, describer.PoolOptions{}, nil)

	assert.Empty(t, pool.DescribeAll(context.Background(), nil))
	d.AssertNotCalled(t, "Describe", mock.Anything, mock.Anything)
}

func TestDescribeAll_UsesCache(t *testing.T) {
	images := makeImages(2)
	hit := utils.ContentHash(images[0].Data)
	miss := utils.ContentHash(images[1].Data)

	c := mocks.NewMockDescriptorCache(t)
	c.On("Get", mock.Anything, hit).Return(domain.ImageDescriptor{Index: 9, Description: "cached"}, nil).Once()
	c.On("Get", mock.Anything, miss).Return(domain.ImageDescriptor{}, domain.ErrCacheMiss).Once()
	c.On("Set", mock.Anything, miss, domain.ImageDescriptor{Description: "fresh"}).Return(errors.New("redis down")).Once()

	d := mocks.NewMockImageDescriber(t)
	d.On("Describe", mock.Anything, images[1]).Return(domain.ImageDescriptor{Description: "fresh"}, nil).Once()

	pool := describer.NewPool(d, describer.PoolOptions{Cache: c}, zap.NewNop())
	results := pool.DescribeAll(context.Background(), images)

	assert.Equal(t, domain.ImageDescriptor{Index: 0, Description: "cached"}, results[0])
	assert.Equal(t, domain.ImageDescriptor{Index: 1, Description: "fresh"}, results[1])
}

func TestDescribeAll_RateLimited(t *testing.T) {
	var calls atomic.Int32
	d := mocks.NewMockImageDescriber(t)
	d.On("Describe", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(domain.ImageDescriptor{Description: "ok"}, nil).Times(3)

	pool := describer.NewPool(d, describer.PoolOptions{RequestsPerSecond: 20}, zap.NewNop())
	start := time.Now()
	results := pool.DescribeAll(context.Background(), makeImages(3))

	assert.Len(t, results, 3)
	assert.EqualValues(t, 3, calls.Load())
	// burst 1: третий вызов ждёт ~2 интервала по 50ms
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestDescribeAll_CancelledContextYieldsFallbacks(t *testing.T) {
	d := mocks.NewMockImageDescriber(t)
	d.On("Describe", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, img describer.Image) domain.ImageDescriptor { return domain.ImageDescriptor{} },
			func(ctx context.Context, img describer.Image) error { return ctx.Err() }).
		Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := describer.NewPool(d, describer.PoolOptions{RequestsPerSecond: 1}, zap.NewNop())
	results := pool.DescribeAll(ctx, makeImages(3))

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, describer.FallbackDescriptor(i), r)
	}
}
