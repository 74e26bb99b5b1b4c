package social

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-metrics-api/internal/cache"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		posts     int
		followers int64
		expected  float64
	}{
		{name: "Sem posts retorna 0", total: 100, posts: 0, followers: 1000, expected: 0},
		{name: "Sem seguidores retorna 0", total: 100, posts: 5, followers: 0, expected: 0},
		{name: "Média por post sobre seguidores", total: 500, posts: 10, followers: 1000, expected: 5},
		{name: "Taxa fracionada", total: 30, posts: 3, followers: 400, expected: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, EngagementRate(tt.total, tt.posts, tt.followers), 0.0001)
		})
	}
}

func TestHashtagAccumulator_Top(t *testing.T) {
	acc := NewHashtagAccumulator()
	acc.Add("#Viagem", 100, 1000, 0)
	acc.Add("viagem", 50, 500, 0)
	acc.Add("comida", 300, 200, 0)
	acc.Add("  ", 999, 0, 0)

	top := acc.Top()

	require.Len(t, top, 2)
	assert.Equal(t, "comida", top[0].Tag)
	assert.Equal(t, "viagem", top[1].Tag)
	assert.Equal(t, 2, top[1].Usage)
	assert.InDelta(t, 75, top[1].AvgEngagement, 0.0001)
	assert.Equal(t, int64(1500), top[1].TotalReach)
}

func TestHashtagAccumulator_TopLimit(t *testing.T) {
	acc := NewHashtagAccumulator()
	for i := 0; i < 15; i++ {
		acc.Add(fmt.Sprintf("tag%d", i), int64(i), 0, 0)
	}

	top := acc.Top()

	assert.Len(t, top, maxTopHashtags)
	assert.Equal(t, "tag14", top[0].Tag)
}

func TestTimeSlotAccumulator(t *testing.T) {
	acc := NewTimeSlotAccumulator(time.UTC)
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	acc.Add(base.Add(9*time.Hour), 100, 1000)
	acc.Add(base.Add(9*time.Hour+30*time.Minute), 200, 3000)
	acc.Add(base.Add(18*time.Hour), 400, 500)
	acc.Add(time.Time{}, 1000, 0)

	ranked := acc.Ranked()

	require.Len(t, ranked, 2)
	assert.Equal(t, "18:00", ranked[0].Time)
	assert.Equal(t, "9:00", ranked[1].Time)
	assert.Equal(t, 150.0, ranked[1].EngagementRate)
	assert.Equal(t, int64(2000), ranked[1].AvgImpressions)
	assert.Equal(t, []string{"18:00", "9:00"}, acc.Best())
}

func TestTimeSlotAccumulator_BestLimit(t *testing.T) {
	acc := NewTimeSlotAccumulator(time.UTC)
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 8; h++ {
		acc.Add(base.Add(time.Duration(h)*time.Hour), int64(h), 0)
	}

	assert.Len(t, acc.Best(), maxBestTimes)
}

func TestParseGraphNumbers(t *testing.T) {
	assert.Equal(t, int64(1234), ParseGraphInt(domain.PlatformFacebook, "impressions", "1234"))
	assert.Equal(t, int64(0), ParseGraphInt(domain.PlatformFacebook, "impressions", ""))
	assert.Equal(t, int64(0), ParseGraphInt(domain.PlatformFacebook, "impressions", "n/a"))
	assert.Equal(t, 12.5, ParseGraphFloat(domain.PlatformFacebook, "spend", "12.5"))
	assert.Equal(t, 0.0, ParseGraphFloat(domain.PlatformFacebook, "spend", "abc"))
}

func TestRatioAndAverage(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(1, 0))
	assert.Equal(t, 25.0, Ratio(1, 4))
	assert.Equal(t, 0.0, Average(10, 0))
	assert.Equal(t, 2.5, Average(10, 4))
}

func TestCached(t *testing.T) {
	ctx := context.Background()

	t.Run("Sem cache executa diretamente", func(t *testing.T) {
		v, err := Cached(ctx, nil, domain.PlatformTikTok, KindProfile, func(ctx context.Context) (int, error) {
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("Usa a chave plataforma_tipo", func(t *testing.T) {
		c := cache.New(cache.DefaultTTL, time.Hour)
		t.Cleanup(c.Stop)

		_, err := Cached(ctx, c, domain.PlatformTikTok, KindPosts, func(ctx context.Context) (string, error) {
			return "videos", nil
		})
		require.NoError(t, err)

		v, ok := c.Get("tiktok_posts")
		assert.True(t, ok)
		assert.Equal(t, "videos", v)
	})

	t.Run("Tipo divergente retorna erro", func(t *testing.T) {
		c := cache.New(cache.DefaultTTL, time.Hour)
		t.Cleanup(c.Stop)
		c.Set("tiktok_engagement", "texto")

		_, err := Cached(ctx, c, domain.PlatformTikTok, KindEngagement, func(ctx context.Context) (float64, error) {
			return 1.5, nil
		})
		assert.Error(t, err)
	})

	t.Run("Erro de fn é propagado", func(t *testing.T) {
		c := cache.New(cache.DefaultTTL, time.Hour)
		t.Cleanup(c.Stop)
		expected := errors.New("falhou")

		_, err := Cached(ctx, c, domain.PlatformTwitter, KindProfile, func(ctx context.Context) (int, error) {
			return 0, expected
		})
		assert.ErrorIs(t, err, expected)
	})
}
