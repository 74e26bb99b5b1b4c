package social

import (
	"context"
	"fmt"

	"github.com/vfg2006/social-metrics-api/internal/cache"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

//go:generate mockgen -source=adapter.go -destination=mocks/adapter_mock.go -package=mocks

// PlatformAdapter é o contrato comum das integrações com redes sociais
type PlatformAdapter interface {
	Platform() domain.Platform
	FetchProfileMetrics(ctx context.Context) (*domain.ProfileMetrics, error)
	FetchEngagementRate(ctx context.Context) (float64, error)
	FetchPlatformSpecificMetrics(ctx context.Context) (*domain.PlatformSpecificMetrics, error)
}

// Cache é o subconjunto do MetricsCache usado pelos adapters
type Cache interface {
	GetOrFetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error)
}

const (
	KindProfile          = "profile"
	KindPosts            = "posts"
	KindEngagement       = "engagement"
	KindPlatformSpecific = "platform_specific"
)

// Cached executa fn através do cache quando ele existe
func Cached[T any](ctx context.Context, c Cache, platform domain.Platform, kind string, fn func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return fn(ctx)
	}

	v, err := c.GetOrFetch(ctx, cache.Key(platform, kind), func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("tipo inesperado no cache para %s_%s: %T", platform, kind, v)
	}
	return typed, nil
}
