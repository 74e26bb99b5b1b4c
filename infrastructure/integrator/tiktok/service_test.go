package tiktok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/internal/cache"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

const userInfoBody = `{
	"open_id": "abc",
	"followers_count": 1000,
	"following_count": 50,
	"likes_count": 9000,
	"video_count": 12,
	"profile_views": 300,
	"audience_demographics": {"gender": {"female": 60, "male": 40}}
}`

const videosBody = `{"data": [
	{
		"id": "v1", "create_time": 1705312800, "duration": 30,
		"hashtags": [{"name": "Dance"}],
		"statistics": {"play_count": 1000, "like_count": 80, "comment_count": 10, "share_count": 10, "avg_watch_time": 15},
		"music_info": {"id": "m1", "title": "Som A", "author": "Autor"}
	},
	{
		"id": "v2", "create_time": 1705316400, "duration": 60,
		"hashtags": [{"name": "dance"}, {"name": "fyp"}],
		"statistics": {"play_count": 3000, "like_count": 150, "comment_count": 30, "share_count": 20, "avg_watch_time": 30},
		"music_info": {"id": "m1", "title": "Som A", "author": "Autor"}
	}
]}`

func newTestIntegrator(t *testing.T, videos string) (*TikTokIntegrator, map[string]*int32) {
	t.Helper()

	calls := map[string]*int32{
		userInfoEndpoint:  new(int32),
		videoListEndpoint: new(int32),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case userInfoEndpoint:
			atomic.AddInt32(calls[userInfoEndpoint], 1)
			_, _ = w.Write([]byte(userInfoBody))
		case videoListEndpoint:
			atomic.AddInt32(calls[videoListEndpoint], 1)
			_, _ = w.Write([]byte(videos))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	requester := social.NewRequester(social.RequesterConfig{
		Platform: domain.PlatformTikTok,
		BaseURL:  server.URL,
	}, social.NewRateLimitMonitor())

	c := cache.New(cache.DefaultTTL, time.Hour)
	t.Cleanup(c.Stop)

	integrator := New(requester, c)
	integrator.location = time.UTC

	return integrator, calls
}

func TestTikTokIntegrator_FetchProfileMetrics(t *testing.T) {
	integrator, _ := newTestIntegrator(t, videosBody)

	profile, err := integrator.FetchProfileMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1000), profile.Followers)
	assert.Equal(t, int64(50), profile.Following)
	assert.Equal(t, int64(9000), profile.Likes)
	assert.Equal(t, int64(300), profile.ProfileViews)
	assert.Equal(t, 60.0, profile.AudienceDemographics.Gender["female"])
}

func TestTikTokIntegrator_FetchEngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		videos   string
		expected float64
	}{
		{
			name:     "Média do engajamento dos vídeos sobre seguidores",
			videos:   videosBody,
			expected: 15,
		},
		{
			name:     "Sem vídeos a taxa é 0",
			videos:   `{"data": []}`,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, _ := newTestIntegrator(t, tt.videos)

			rate, err := integrator.FetchEngagementRate(context.Background())

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, rate, 0.0001)
		})
	}
}

func TestTikTokIntegrator_FetchPlatformSpecificMetrics(t *testing.T) {
	integrator, calls := newTestIntegrator(t, videosBody)
	ctx := context.Background()

	_, err := integrator.FetchEngagementRate(ctx)
	require.NoError(t, err)

	specific, err := integrator.FetchPlatformSpecificMetrics(ctx)
	require.NoError(t, err)

	tiktok := specific.PlatformSpecific.TikTok
	require.NotNil(t, tiktok)
	assert.Nil(t, specific.PlatformSpecific.Facebook)
	assert.Nil(t, specific.PlatformSpecific.Instagram)
	assert.Nil(t, specific.PlatformSpecific.Twitter)

	assert.Equal(t, int64(12), tiktok.VideoCount)
	assert.Equal(t, 2000.0, tiktok.AverageViews)
	assert.Equal(t, 22.5, tiktok.AverageWatchTime)
	assert.Equal(t, 50.0, tiktok.CompletionRate)
	assert.Len(t, tiktok.VideoMetrics, 2)

	require.Len(t, tiktok.SoundUsage, 1)
	assert.Equal(t, 2, tiktok.SoundUsage[0].UsageCount)
	assert.Equal(t, 2000.0, tiktok.SoundUsage[0].AverageViews)

	require.NotEmpty(t, specific.ContentPerformance.TopHashtags)
	assert.Equal(t, "fyp", specific.ContentPerformance.TopHashtags[0].Tag)
	assert.Equal(t, []string{"11:00", "10:00"}, specific.ContentPerformance.BestTimes)
	assert.Equal(t, 2, specific.PostsByType.Videos)

	assert.Equal(t, int32(1), atomic.LoadInt32(calls[userInfoEndpoint]))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls[videoListEndpoint]))
}

func TestTikTokIntegrator_ProfileFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	requester := social.NewRequester(social.RequesterConfig{
		Platform: domain.PlatformTikTok,
		BaseURL:  server.URL,
	}, nil)

	_, err := New(requester, nil).FetchProfileMetrics(context.Background())

	var upstream *social.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.Status)
}
