package facebook

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
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

var fixtures = map[string]string{
	"/me": `{"id": "p1", "name": "Loja", "followers_count": 0, "fan_count": 1500, "posts": {"summary": {"total_count": 80}}}`,
	"/me/posts": `{"data": [
		{
			"id": "p1_1", "message": "Promo #Verao", "created_time": "2024-01-15T10:00:00+0000",
			"reactions": {"summary": {"total_count": 100}}, "comments": {"summary": {"total_count": 20}},
			"shares": {"count": 5}, "attachments": {"data": [{"media_type": "photo"}]}
		},
		{
			"id": "p1_2", "message": "Lançamento #verao #novidade", "created_time": "2024-01-15T15:00:00+0000",
			"reactions": {"summary": {"total_count": 200}}, "comments": {"summary": {"total_count": 40}},
			"attachments": {"data": [{"media_type": "video"}]}
		}
	]}`,
	"/me/insights": `{"data": [
		{"name": "page_impressions", "period": "day", "values": [{"value": 4000}, {"value": 5000}]},
		{"name": "page_impressions_unique", "period": "day", "values": [{"value": 3000}]},
		{"name": "page_engaged_users", "period": "day", "values": [{"value": 400}]},
		{"name": "page_negative_feedback", "period": "day", "values": [{"value": 3}]},
		{"name": "page_views_total", "period": "day", "values": [{"value": 250}]},
		{"name": "page_fans_gender_age", "period": "day", "values": [{"value": {"F.18-24": 30, "M.25-34": 70}}]},
		{"name": "page_fans_country", "period": "day", "values": [{"value": {"BR": 75, "PT": 25}}]}
	]}`,
	"/me/videos": `{"data": [{
		"id": "v1", "title": "Bastidores", "length": 60,
		"video_insights": {"data": [
			{"name": "total_video_views", "values": [{"value": 900}]},
			{"name": "total_video_avg_time_watched", "values": [{"value": 30000}]}
		]}
	}]}`,
	"/me/events": `{"data": [{"id": "e1", "name": "Inauguração", "attending_count": 10, "interested_count": 25, "declined_count": 2}]}`,
	"/act_123/insights": `{"data": [{
		"ad_id": "a1", "ad_name": "Anúncio", "campaign_name": "Verão",
		"impressions": "1000", "clicks": "50", "spend": "12.34",
		"actions": [{"action_type": "link_click", "value": "40"}]
	}]}`,
}

func newTestIntegrator(t *testing.T, adAccountID string) (*FacebookIntegrator, *int32) {
	t.Helper()

	adCalls := new(int32)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/act_123/insights" {
			atomic.AddInt32(adCalls, 1)
		}
		body, ok := fixtures[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	requester := social.NewRequester(social.RequesterConfig{
		Platform:    domain.PlatformFacebook,
		BaseURL:     server.URL,
		AccessToken: "token",
		Auth:        social.AuthQueryParam,
	}, social.NewRateLimitMonitor())

	integrator := New(requester, nil, adAccountID)
	integrator.location = time.UTC
	return integrator, adCalls
}

func TestFacebookIntegrator_FetchProfileMetrics(t *testing.T) {
	integrator, _ := newTestIntegrator(t, "")

	profile, err := integrator.FetchProfileMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1500), profile.Followers)
	assert.Equal(t, int64(5000), profile.Impressions)
	assert.Equal(t, int64(3000), profile.Reach)
	assert.Equal(t, int64(250), profile.ProfileViews)
	assert.InDelta(t, 30, profile.AudienceDemographics.Gender["female"], 0.001)
	assert.InDelta(t, 70, profile.AudienceDemographics.Age["25-34"], 0.001)
	assert.InDelta(t, 75, profile.AudienceDemographics.Location["BR"], 0.001)
}

func TestFacebookIntegrator_FetchEngagementRate(t *testing.T) {
	integrator, _ := newTestIntegrator(t, "")

	rate, err := integrator.FetchEngagementRate(context.Background())

	require.NoError(t, err)
	// (120 + 240) / 2 posts / 1500 seguidores x 100
	assert.InDelta(t, 12, rate, 0.0001)
}

func TestFacebookIntegrator_FetchPlatformSpecificMetrics(t *testing.T) {
	tests := []struct {
		name        string
		adAccountID string
		validate    func(t *testing.T, specific *domain.FacebookSpecific, adCalls int32)
	}{
		{
			name:        "Com conta de anúncios",
			adAccountID: "123",
			validate: func(t *testing.T, specific *domain.FacebookSpecific, adCalls int32) {
				assert.Equal(t, int32(1), adCalls)
				require.Len(t, specific.AdMetrics, 1)
				ad := specific.AdMetrics[0]
				assert.Equal(t, "Verão", ad.CampaignName)
				assert.Equal(t, int64(1000), ad.Impressions)
				assert.Equal(t, int64(50), ad.Clicks)
				assert.Equal(t, 12.34, ad.Spend)
				require.Len(t, ad.Actions, 1)
				assert.Equal(t, 40.0, ad.Actions[0].Value)
			},
		},
		{
			name:        "Sem conta de anúncios a coleta de anúncios é ignorada",
			adAccountID: "",
			validate: func(t *testing.T, specific *domain.FacebookSpecific, adCalls int32) {
				assert.Equal(t, int32(0), adCalls)
				assert.NotNil(t, specific.AdMetrics)
				assert.Empty(t, specific.AdMetrics)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, adCalls := newTestIntegrator(t, tt.adAccountID)

			result, err := integrator.FetchPlatformSpecificMetrics(context.Background())
			require.NoError(t, err)

			specific := result.PlatformSpecific.Facebook
			require.NotNil(t, specific)
			assert.Nil(t, result.PlatformSpecific.Instagram)

			assert.Equal(t, int64(80), specific.PostsCount)
			assert.Equal(t, int64(300), specific.TotalReactions)
			assert.Equal(t, int64(400), specific.PageEngagedUsers)
			assert.Equal(t, int64(3), specific.NegativeFeedback)

			require.Len(t, specific.VideoMetrics, 1)
			assert.Equal(t, int64(900), specific.VideoMetrics[0].Views)
			assert.Equal(t, 30.0, specific.VideoMetrics[0].AvgWatchTime)
			assert.Equal(t, 50.0, specific.VideoMetrics[0].RetentionRate)

			require.Len(t, specific.EventMetrics, 1)
			assert.Equal(t, int64(25), specific.EventMetrics[0].Interested)

			assert.Equal(t, 1, result.PostsByType.Photos)
			assert.Equal(t, 1, result.PostsByType.Videos)
			assert.Equal(t, int64(900), result.ContentPerformance.MediaStats.Videos.TotalViews)
			assert.Equal(t, []string{"15:00", "10:00"}, result.ContentPerformance.BestTimes)

			require.Len(t, result.ContentPerformance.TopHashtags, 2)
			assert.Equal(t, "novidade", result.ContentPerformance.TopHashtags[0].Tag)
			assert.Equal(t, 2, result.ContentPerformance.TopHashtags[1].Usage)

			tt.validate(t, specific, atomic.LoadInt32(adCalls))
		})
	}
}

func TestFacebookIntegrator_InsightsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me" {
			_, _ = w.Write([]byte(fixtures["/me"]))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid OAuth access token.", "type": "OAuthException", "code": 190}}`))
	}))
	t.Cleanup(server.Close)

	requester := social.NewRequester(social.RequesterConfig{
		Platform: domain.PlatformFacebook,
		BaseURL:  server.URL,
	}, nil)

	profile, err := New(requester, nil, "").FetchProfileMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1500), profile.Followers)
	assert.Zero(t, profile.Impressions)
}
