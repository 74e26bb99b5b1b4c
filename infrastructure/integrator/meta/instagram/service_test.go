package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

const (
	profileBody = `{"id": "ig1", "username": "marca", "followers_count": 2000, "follows_count": 100, "media_count": 30}`

	mediaBody = `{"data": [
		{"id": "m1", "caption": "#Praia hoje", "media_type": "IMAGE", "like_count": 100, "comments_count": 20, "timestamp": "2024-01-15T10:00:00+0000"},
		{"id": "m2", "caption": "#praia #verao", "media_type": "VIDEO", "media_product_type": "REELS", "like_count": 300, "comments_count": 30, "timestamp": "2024-01-15T18:00:00+0000"},
		{"id": "m3", "caption": "álbum", "media_type": "CAROUSEL_ALBUM", "like_count": 50, "comments_count": 10, "timestamp": "2024-01-15T10:30:00+0000"}
	]}`

	storiesBody = `{"data": [{
		"id": "s1", "media_type": "VIDEO", "timestamp": "2024-01-15T12:00:00+0000",
		"insights": {"data": [
			{"name": "impressions", "values": [{"value": 400}]},
			{"name": "reach", "values": [{"value": 300}]},
			{"name": "exits", "values": [{"value": 40}]},
			{"name": "replies", "values": [{"value": 6}]}
		]}
	}]}`

	profileInsightsBody = `{"data": [
		{"name": "impressions", "period": "day", "values": [{"value": 8000}]},
		{"name": "reach", "period": "day", "values": [{"value": 6000}]},
		{"name": "profile_views", "period": "day", "values": [{"value": 150}]}
	]}`

	audienceBody = `{"data": [
		{"name": "audience_gender_age", "period": "lifetime", "values": [{"value": {"F.18-24": 60, "M.18-24": 40}}]},
		{"name": "audience_locale", "period": "lifetime", "values": [{"value": {"pt_BR": 100}}]}
	]}`

	reelInsightsBody = `{"data": [
		{"name": "plays", "values": [{"value": 5000}]},
		{"name": "reach", "values": [{"value": 4000}]},
		{"name": "shares", "values": [{"value": 50}]},
		{"name": "saved", "values": [{"value": 12}]}
	]}`
)

func newTestIntegrator(t *testing.T) *InstagramIntegrator {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			_, _ = w.Write([]byte(profileBody))
		case "/me/media":
			_, _ = w.Write([]byte(mediaBody))
		case "/me/stories":
			_, _ = w.Write([]byte(storiesBody))
		case "/me/insights":
			if r.URL.Query().Get("period") == "lifetime" {
				_, _ = w.Write([]byte(audienceBody))
				return
			}
			_, _ = w.Write([]byte(profileInsightsBody))
		case "/m2/insights":
			_, _ = w.Write([]byte(reelInsightsBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	requester := social.NewRequester(social.RequesterConfig{
		Platform: domain.PlatformInstagram,
		BaseURL:  server.URL,
	}, social.NewRateLimitMonitor())

	integrator := New(requester, nil)
	integrator.location = time.UTC
	return integrator
}

func TestInstagramIntegrator_FetchProfileMetrics(t *testing.T) {
	integrator := newTestIntegrator(t)

	profile, err := integrator.FetchProfileMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2000), profile.Followers)
	assert.Equal(t, int64(100), profile.Following)
	assert.Equal(t, int64(450), profile.Likes)
	assert.Equal(t, int64(60), profile.Comments)
	assert.Equal(t, int64(8000), profile.Impressions)
	assert.Equal(t, int64(6000), profile.Reach)
	assert.Equal(t, int64(150), profile.ProfileViews)
	assert.InDelta(t, 60, profile.AudienceDemographics.Gender["female"], 0.001)
	assert.InDelta(t, 100, profile.AudienceDemographics.Age["18-24"], 0.001)
	assert.InDelta(t, 100, profile.AudienceDemographics.Language["pt_BR"], 0.001)
}

func TestInstagramIntegrator_FetchEngagementRate(t *testing.T) {
	integrator := newTestIntegrator(t)

	rate, err := integrator.FetchEngagementRate(context.Background())

	require.NoError(t, err)
	// (120 + 330 + 60) / 3 mídias / 2000 seguidores x 100
	assert.InDelta(t, 8.5, rate, 0.0001)
}

func TestInstagramIntegrator_FetchPlatformSpecificMetrics(t *testing.T) {
	integrator := newTestIntegrator(t)

	result, err := integrator.FetchPlatformSpecificMetrics(context.Background())
	require.NoError(t, err)

	specific := result.PlatformSpecific.Instagram
	require.NotNil(t, specific)
	assert.Nil(t, result.PlatformSpecific.Facebook)

	assert.Equal(t, int64(30), specific.MediaCount)
	assert.Equal(t, 1, specific.MediaTypes.ImageCount)
	assert.Equal(t, 1, specific.MediaTypes.ReelsCount)
	assert.Equal(t, 1, specific.MediaTypes.CarouselCount)
	assert.Equal(t, 0, specific.MediaTypes.VideoCount)
	assert.Equal(t, 1, specific.MediaTypes.StoryCount)

	require.Len(t, specific.StoryMetrics, 1)
	assert.Equal(t, "video", specific.StoryMetrics[0].Type)
	assert.Equal(t, int64(40), specific.StoryMetrics[0].Exits)

	require.Len(t, specific.ReelMetrics, 1)
	assert.Equal(t, "m2", specific.ReelMetrics[0].ReelID)
	assert.Equal(t, int64(5000), specific.ReelMetrics[0].Plays)
	assert.Equal(t, int64(12), specific.ReelMetrics[0].Saves)

	stats := result.ContentPerformance.MediaStats
	assert.InDelta(t, 10, stats.Stories.ExitRate, 0.0001)
	assert.InDelta(t, 2, stats.Stories.ReplyRate, 0.0001)
	assert.InDelta(t, 1, stats.Reels.ShareRate, 0.0001)
	assert.Equal(t, 330.0, stats.Reels.AvgEngagement)
	assert.Equal(t, 120.0, stats.Photos.AvgEngagement)

	assert.Equal(t, domain.PostsByType{Photos: 1, Stories: 1, Reels: 1, Carousels: 1}, result.PostsByType)

	require.Len(t, result.ContentPerformance.TopHashtags, 2)
	assert.Equal(t, "verao", result.ContentPerformance.TopHashtags[0].Tag)
	assert.Equal(t, 2, result.ContentPerformance.TopHashtags[1].Usage)
}

func TestInstagramIntegrator_MediaFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me" {
			_, _ = w.Write([]byte(profileBody))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	requester := social.NewRequester(social.RequesterConfig{
		Platform: domain.PlatformInstagram,
		BaseURL:  server.URL,
	}, nil)

	_, err := New(requester, nil).FetchPlatformSpecificMetrics(context.Background())

	var upstream *social.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
}
