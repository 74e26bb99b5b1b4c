package facebook

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/social-metrics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

const (
	pageFields  = "id,name,followers_count,fan_count,posts.limit(1).summary(true)"
	postFields  = "id,message,created_time,reactions.summary(true),comments.summary(true),shares,attachments{media_type}"
	videoFields = "id,title,length,video_insights.metric(total_video_views,total_video_avg_time_watched)"
	eventFields = "id,name,attending_count,interested_count,declined_count"
	adFields    = "ad_id,ad_name,campaign_name,impressions,clicks,spend,actions"

	pageMetrics = "page_impressions,page_impressions_unique,page_engaged_users,page_negative_feedback,page_views_total,page_fans_gender_age,page_fans_country,page_fans_locale"

	kindInsights = "insights"
)

type FacebookIntegrator struct {
	requester   *social.Requester
	cache       social.Cache
	adAccountID string
	location    *time.Location
}

// New cria o adapter. Com adAccountID vazio a coleta de anúncios é ignorada.
func New(requester *social.Requester, cache social.Cache, adAccountID string) *FacebookIntegrator {
	return &FacebookIntegrator{
		requester:   requester,
		cache:       cache,
		adAccountID: adAccountID,
		location:    time.Local,
	}
}

func (s *FacebookIntegrator) Platform() domain.Platform {
	return domain.PlatformFacebook
}

func (s *FacebookIntegrator) FetchProfileMetrics(ctx context.Context) (*domain.ProfileMetrics, error) {
	page, err := s.page(ctx)
	if err != nil {
		return nil, err
	}

	profile := &domain.ProfileMetrics{
		Followers: page.Followers(),
	}

	insights, err := s.pageInsights(ctx)
	if err != nil {
		logrus.WithError(err).Warn("facebook: page insights unavailable, continuing without them")
		return profile, nil
	}

	byName := insights.ByName()
	profile.Impressions = byName["page_impressions"].Number()
	profile.Reach = byName["page_impressions_unique"].Number()
	profile.ProfileViews = byName["page_views_total"].Number()

	gender, age := meta.SplitGenderAge(byName["page_fans_gender_age"].Breakdown())
	profile.AudienceDemographics = domain.AudienceDemographics{
		Gender:   gender,
		Age:      age,
		Location: meta.Percentages(byName["page_fans_country"].Breakdown()),
		Language: meta.Percentages(byName["page_fans_locale"].Breakdown()),
	}

	return profile, nil
}

func (s *FacebookIntegrator) FetchEngagementRate(ctx context.Context) (float64, error) {
	return social.Cached(ctx, s.cache, domain.PlatformFacebook, social.KindEngagement, func(ctx context.Context) (float64, error) {
		posts, err := s.posts(ctx)
		if err != nil {
			return 0, err
		}

		page, err := s.page(ctx)
		if err != nil {
			return 0, err
		}

		var total int64
		for _, p := range posts {
			total += p.Engagement()
		}

		return social.EngagementRate(total, len(posts), page.Followers()), nil
	})
}

func (s *FacebookIntegrator) FetchPlatformSpecificMetrics(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
	return social.Cached(ctx, s.cache, domain.PlatformFacebook, social.KindPlatformSpecific, func(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
		posts, err := s.posts(ctx)
		if err != nil {
			return nil, err
		}

		specific := &domain.FacebookSpecific{}

		if page, err := s.page(ctx); err == nil {
			specific.PostsCount = page.Posts.Summary.TotalCount
		}

		if insights, err := s.pageInsights(ctx); err == nil {
			byName := insights.ByName()
			specific.PageImpressions = byName["page_impressions"].Number()
			specific.PageEngagedUsers = byName["page_engaged_users"].Number()
			specific.NegativeFeedback = byName["page_negative_feedback"].Number()
			specific.PageViews = byName["page_views_total"].Number()
		}

		specific.VideoMetrics = s.videoMetrics(ctx)
		specific.EventMetrics = s.eventMetrics(ctx)
		specific.AdMetrics = s.adMetrics(ctx)

		return s.calculatePostMetrics(posts, specific), nil
	})
}

func (s *FacebookIntegrator) page(ctx context.Context) (*metadomain.Page, error) {
	return social.Cached(ctx, s.cache, domain.PlatformFacebook, social.KindProfile, func(ctx context.Context) (*metadomain.Page, error) {
		var page metadomain.Page
		if err := s.requester.Get(ctx, "/me", map[string]string{"fields": pageFields}, &page); err != nil {
			meta.LogGraphError(domain.PlatformFacebook, "page", err)
			return nil, err
		}
		return &page, nil
	})
}

func (s *FacebookIntegrator) pageInsights(ctx context.Context) (*metadomain.InsightsResponse, error) {
	return social.Cached(ctx, s.cache, domain.PlatformFacebook, kindInsights, func(ctx context.Context) (*metadomain.InsightsResponse, error) {
		params := map[string]string{
			"metric": pageMetrics,
			"period": "day",
		}

		var resp metadomain.InsightsResponse
		if err := s.requester.Get(ctx, "/me/insights", params, &resp); err != nil {
			meta.LogGraphError(domain.PlatformFacebook, "page_insights", err)
			return nil, err
		}
		return &resp, nil
	})
}

func (s *FacebookIntegrator) posts(ctx context.Context) ([]metadomain.Post, error) {
	return social.Cached(ctx, s.cache, domain.PlatformFacebook, social.KindPosts, func(ctx context.Context) ([]metadomain.Post, error) {
		params := map[string]string{
			"fields": postFields,
			"limit":  strconv.Itoa(social.EngagementSampleN),
		}

		var resp metadomain.PostsResponse
		if err := s.requester.Get(ctx, "/me/posts", params, &resp); err != nil {
			meta.LogGraphError(domain.PlatformFacebook, "posts", err)
			return nil, err
		}

		if len(resp.Data) > social.EngagementSampleN {
			resp.Data = resp.Data[:social.EngagementSampleN]
		}
		return resp.Data, nil
	})
}

func (s *FacebookIntegrator) videoMetrics(ctx context.Context) []domain.FacebookVideoMetric {
	var resp metadomain.VideosResponse
	params := map[string]string{"fields": videoFields, "limit": "25"}
	if err := s.requester.Get(ctx, "/me/videos", params, &resp); err != nil {
		logrus.WithError(err).Warn("facebook: video metrics unavailable, continuing without them")
		return []domain.FacebookVideoMetric{}
	}

	out := make([]domain.FacebookVideoMetric, 0, len(resp.Data))
	for _, v := range resp.Data {
		byName := v.VideoInsights.ByName()
		// total_video_avg_time_watched vem em milissegundos
		avgWatch := float64(byName["total_video_avg_time_watched"].Number()) / 1000
		out = append(out, domain.FacebookVideoMetric{
			VideoID:       v.ID,
			Title:         v.Title,
			Views:         byName["total_video_views"].Number(),
			Duration:      v.Length,
			AvgWatchTime:  avgWatch,
			RetentionRate: social.Ratio(avgWatch, v.Length),
		})
	}
	return out
}

func (s *FacebookIntegrator) eventMetrics(ctx context.Context) []domain.FacebookEventMetric {
	var resp metadomain.EventsResponse
	if err := s.requester.Get(ctx, "/me/events", map[string]string{"fields": eventFields}, &resp); err != nil {
		logrus.WithError(err).Warn("facebook: event metrics unavailable, continuing without them")
		return []domain.FacebookEventMetric{}
	}

	out := make([]domain.FacebookEventMetric, 0, len(resp.Data))
	for _, e := range resp.Data {
		out = append(out, domain.FacebookEventMetric{
			EventID:    e.ID,
			Name:       e.Name,
			Attending:  e.AttendingCount,
			Interested: e.InterestedCount,
			Declined:   e.DeclinedCount,
		})
	}
	return out
}

func (s *FacebookIntegrator) adMetrics(ctx context.Context) []domain.FacebookAdMetric {
	if s.adAccountID == "" {
		return []domain.FacebookAdMetric{}
	}

	params := map[string]string{
		"fields":      adFields,
		"level":       "ad",
		"date_preset": "last_7d",
	}

	var resp metadomain.AdInsightsResponse
	endpoint := fmt.Sprintf("/act_%s/insights", s.adAccountID)
	if err := s.requester.Get(ctx, endpoint, params, &resp); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": s.adAccountID,
			"error":         err.Error(),
		}).Warn("facebook: ad metrics unavailable, continuing without them")
		return []domain.FacebookAdMetric{}
	}

	out := make([]domain.FacebookAdMetric, 0, len(resp.Data))
	for _, insight := range resp.Data {
		out = append(out, meta.ParseAdInsight(domain.PlatformFacebook, insight))
	}
	return out
}

// calculatePostMetrics preenche reações, hashtags, horários e tipos de mídia a partir dos posts
func (s *FacebookIntegrator) calculatePostMetrics(posts []metadomain.Post, specific *domain.FacebookSpecific) *domain.PlatformSpecificMetrics {
	hashtags := social.NewHashtagAccumulator()
	slots := social.NewTimeSlotAccumulator(s.location)

	var byType domain.PostsByType
	var photoEngagement, videoEngagement int64

	for _, p := range posts {
		engagement := p.Engagement()
		specific.TotalReactions += p.Reactions.Summary.TotalCount

		for _, tag := range meta.ExtractHashtags(p.Message) {
			hashtags.Add(tag, engagement+p.ShareTotal(), 0, 0)
		}

		slots.Add(metadomain.ParseGraphTime(p.CreatedTime), engagement, 0)

		switch p.MediaType() {
		case "photo":
			byType.Photos++
			photoEngagement += engagement
		case "video":
			byType.Videos++
			videoEngagement += engagement
		case "album":
			byType.Carousels++
		}
	}

	var totalViews int64
	for _, v := range specific.VideoMetrics {
		totalViews += v.Views
	}

	return &domain.PlatformSpecificMetrics{
		PlatformSpecific: domain.PlatformSpecific{Facebook: specific},
		PostsByType:      byType,
		ContentPerformance: domain.ContentPerformance{
			BestTimes:   slots.Best(),
			TopHashtags: hashtags.Top(),
			MediaStats: domain.MediaStats{
				Photos: domain.PhotoStats{
					Count:         byType.Photos,
					AvgEngagement: social.Average(float64(photoEngagement), byType.Photos),
				},
				Videos: domain.VideoStats{
					Count:         byType.Videos,
					AvgEngagement: social.Average(float64(videoEngagement), byType.Videos),
					TotalViews:    totalViews,
				},
			},
		},
	}
}
