package instagram

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
	profileFields = "id,username,followers_count,follows_count,media_count"
	mediaFields   = "id,caption,media_type,media_product_type,like_count,comments_count,timestamp"
	storyFields   = "id,media_type,timestamp,insights.metric(impressions,reach,exits,replies)"

	profileMetrics  = "impressions,reach,profile_views"
	audienceMetrics = "audience_gender_age,audience_country,audience_locale"
	reelMetrics     = "plays,reach,likes,comments,shares,saved"

	// limite de chamadas de insights por reel em uma coleta
	maxReelInsights = 10

	kindInsights = "insights"
)

type InstagramIntegrator struct {
	requester *social.Requester
	cache     social.Cache
	location  *time.Location
}

func New(requester *social.Requester, cache social.Cache) *InstagramIntegrator {
	return &InstagramIntegrator{
		requester: requester,
		cache:     cache,
		location:  time.Local,
	}
}

func (s *InstagramIntegrator) Platform() domain.Platform {
	return domain.PlatformInstagram
}

func (s *InstagramIntegrator) FetchProfileMetrics(ctx context.Context) (*domain.ProfileMetrics, error) {
	profile, err := s.profile(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &domain.ProfileMetrics{
		Followers: profile.FollowersCount,
		Following: profile.FollowsCount,
	}

	if media, err := s.media(ctx); err == nil {
		for _, m := range media {
			metrics.Likes += m.LikeCount
			metrics.Comments += m.CommentsCount
		}
	}

	if insights, err := s.profileInsights(ctx); err == nil {
		byName := insights.ByName()
		metrics.Impressions = byName["impressions"].Number()
		metrics.Reach = byName["reach"].Number()
		metrics.ProfileViews = byName["profile_views"].Number()
	} else {
		logrus.WithError(err).Warn("instagram: profile insights unavailable, continuing without them")
	}

	metrics.AudienceDemographics = s.audience(ctx)

	return metrics, nil
}

func (s *InstagramIntegrator) FetchEngagementRate(ctx context.Context) (float64, error) {
	return social.Cached(ctx, s.cache, domain.PlatformInstagram, social.KindEngagement, func(ctx context.Context) (float64, error) {
		media, err := s.media(ctx)
		if err != nil {
			return 0, err
		}

		profile, err := s.profile(ctx)
		if err != nil {
			return 0, err
		}

		var total int64
		for _, m := range media {
			total += m.Engagement()
		}

		return social.EngagementRate(total, len(media), profile.FollowersCount), nil
	})
}

func (s *InstagramIntegrator) FetchPlatformSpecificMetrics(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
	return social.Cached(ctx, s.cache, domain.PlatformInstagram, social.KindPlatformSpecific, func(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
		media, err := s.media(ctx)
		if err != nil {
			return nil, err
		}

		specific := &domain.InstagramSpecific{
			MediaCount: int64(len(media)),
		}
		if profile, err := s.profile(ctx); err == nil {
			specific.MediaCount = profile.MediaCount
		}

		specific.StoryMetrics = s.storyMetrics(ctx)
		specific.ReelMetrics = s.reelMetrics(ctx, media)

		return s.calculateMediaMetrics(media, specific), nil
	})
}

func (s *InstagramIntegrator) profile(ctx context.Context) (*metadomain.InstagramProfile, error) {
	return social.Cached(ctx, s.cache, domain.PlatformInstagram, social.KindProfile, func(ctx context.Context) (*metadomain.InstagramProfile, error) {
		var profile metadomain.InstagramProfile
		if err := s.requester.Get(ctx, "/me", map[string]string{"fields": profileFields}, &profile); err != nil {
			meta.LogGraphError(domain.PlatformInstagram, "profile", err)
			return nil, err
		}
		return &profile, nil
	})
}

func (s *InstagramIntegrator) profileInsights(ctx context.Context) (*metadomain.InsightsResponse, error) {
	return social.Cached(ctx, s.cache, domain.PlatformInstagram, kindInsights, func(ctx context.Context) (*metadomain.InsightsResponse, error) {
		var resp metadomain.InsightsResponse
		params := map[string]string{"metric": profileMetrics, "period": "day"}
		if err := s.requester.Get(ctx, "/me/insights", params, &resp); err != nil {
			meta.LogGraphError(domain.PlatformInstagram, "profile_insights", err)
			return nil, err
		}
		return &resp, nil
	})
}

func (s *InstagramIntegrator) audience(ctx context.Context) domain.AudienceDemographics {
	var resp metadomain.InsightsResponse
	params := map[string]string{"metric": audienceMetrics, "period": "lifetime"}
	if err := s.requester.Get(ctx, "/me/insights", params, &resp); err != nil {
		logrus.WithError(err).Warn("instagram: audience insights unavailable, continuing without them")
		return domain.AudienceDemographics{}
	}

	byName := resp.ByName()
	gender, age := meta.SplitGenderAge(byName["audience_gender_age"].Breakdown())
	return domain.AudienceDemographics{
		Gender:   gender,
		Age:      age,
		Location: meta.Percentages(byName["audience_country"].Breakdown()),
		Language: meta.Percentages(byName["audience_locale"].Breakdown()),
	}
}

func (s *InstagramIntegrator) media(ctx context.Context) ([]metadomain.Media, error) {
	return social.Cached(ctx, s.cache, domain.PlatformInstagram, social.KindPosts, func(ctx context.Context) ([]metadomain.Media, error) {
		params := map[string]string{
			"fields": mediaFields,
			"limit":  strconv.Itoa(social.EngagementSampleN),
		}

		var resp metadomain.MediaResponse
		if err := s.requester.Get(ctx, "/me/media", params, &resp); err != nil {
			meta.LogGraphError(domain.PlatformInstagram, "media", err)
			return nil, err
		}

		if len(resp.Data) > social.EngagementSampleN {
			resp.Data = resp.Data[:social.EngagementSampleN]
		}
		return resp.Data, nil
	})
}

func (s *InstagramIntegrator) storyMetrics(ctx context.Context) []domain.InstagramStoryMetric {
	var resp metadomain.MediaResponse
	if err := s.requester.Get(ctx, "/me/stories", map[string]string{"fields": storyFields}, &resp); err != nil {
		logrus.WithError(err).Warn("instagram: story metrics unavailable, continuing without them")
		return []domain.InstagramStoryMetric{}
	}

	out := make([]domain.InstagramStoryMetric, 0, len(resp.Data))
	for _, story := range resp.Data {
		metric := domain.InstagramStoryMetric{
			StoryID:   story.ID,
			Type:      storyType(story.MediaType),
			Timestamp: metadomain.ParseGraphTime(story.Timestamp),
		}
		if story.Insights != nil {
			byName := story.Insights.ByName()
			metric.Impressions = byName["impressions"].Number()
			metric.Reach = byName["reach"].Number()
			metric.Exits = byName["exits"].Number()
			metric.Replies = byName["replies"].Number()
		}
		out = append(out, metric)
	}
	return out
}

// reelMetrics consulta as insights dos reels mais recentes; falhas individuais são ignoradas
func (s *InstagramIntegrator) reelMetrics(ctx context.Context, media []metadomain.Media) []domain.InstagramReelMetric {
	out := []domain.InstagramReelMetric{}

	for _, m := range media {
		if !m.IsReel() {
			continue
		}
		if len(out) >= maxReelInsights {
			break
		}

		var resp metadomain.InsightsResponse
		endpoint := fmt.Sprintf("/%s/insights", m.ID)
		if err := s.requester.Get(ctx, endpoint, map[string]string{"metric": reelMetrics}, &resp); err != nil {
			logrus.WithFields(logrus.Fields{
				"reel_id": m.ID,
				"error":   err.Error(),
			}).Warn("instagram: reel insights unavailable, skipping")
			continue
		}

		byName := resp.ByName()
		out = append(out, domain.InstagramReelMetric{
			ReelID:   m.ID,
			Plays:    byName["plays"].Number(),
			Reach:    byName["reach"].Number(),
			Likes:    byName["likes"].Number(),
			Comments: byName["comments"].Number(),
			Shares:   byName["shares"].Number(),
			Saves:    byName["saved"].Number(),
		})
	}
	return out
}

func (s *InstagramIntegrator) calculateMediaMetrics(media []metadomain.Media, specific *domain.InstagramSpecific) *domain.PlatformSpecificMetrics {
	hashtags := social.NewHashtagAccumulator()
	slots := social.NewTimeSlotAccumulator(s.location)

	var types domain.InstagramMediaTypes
	var photoEngagement, videoEngagement, reelEngagement int64

	for _, m := range media {
		engagement := m.Engagement()

		for _, tag := range meta.ExtractHashtags(m.Caption) {
			hashtags.Add(tag, engagement, 0, 0)
		}
		slots.Add(metadomain.ParseGraphTime(m.Timestamp), engagement, 0)

		switch {
		case m.IsReel():
			types.ReelsCount++
			reelEngagement += engagement
		case m.MediaType == metadomain.MediaTypeCarousel:
			types.CarouselCount++
		case m.MediaType == metadomain.MediaTypeVideo:
			types.VideoCount++
			videoEngagement += engagement
		case m.MediaType == metadomain.MediaTypeImage:
			types.ImageCount++
			photoEngagement += engagement
		}
	}
	types.StoryCount = len(specific.StoryMetrics)
	specific.MediaTypes = types

	return &domain.PlatformSpecificMetrics{
		PlatformSpecific: domain.PlatformSpecific{Instagram: specific},
		PostsByType: domain.PostsByType{
			Photos:    types.ImageCount,
			Videos:    types.VideoCount,
			Stories:   types.StoryCount,
			Reels:     types.ReelsCount,
			Carousels: types.CarouselCount,
		},
		ContentPerformance: domain.ContentPerformance{
			BestTimes:   slots.Best(),
			TopHashtags: hashtags.Top(),
			MediaStats: domain.MediaStats{
				Photos: domain.PhotoStats{
					Count:         types.ImageCount,
					AvgEngagement: social.Average(float64(photoEngagement), types.ImageCount),
				},
				Videos: domain.VideoStats{
					Count:         types.VideoCount,
					AvgEngagement: social.Average(float64(videoEngagement), types.VideoCount),
				},
				Stories: storyStats(specific.StoryMetrics),
				Reels:   reelStats(specific.ReelMetrics, types.ReelsCount, reelEngagement),
			},
		},
	}
}

func storyStats(stories []domain.InstagramStoryMetric) domain.StoryStats {
	var reach, impressions, exits, replies int64
	for _, st := range stories {
		reach += st.Reach
		impressions += st.Impressions
		exits += st.Exits
		replies += st.Replies
	}

	n := len(stories)
	return domain.StoryStats{
		Count:          n,
		AvgReach:       social.Average(float64(reach), n),
		AvgImpressions: social.Average(float64(impressions), n),
		ExitRate:       social.Ratio(float64(exits), float64(impressions)),
		ReplyRate:      social.Ratio(float64(replies), float64(reach)),
	}
}

func reelStats(reels []domain.InstagramReelMetric, count int, engagement int64) domain.ReelStats {
	var plays, shares int64
	for _, r := range reels {
		plays += r.Plays
		shares += r.Shares
	}

	return domain.ReelStats{
		Count:         count,
		AvgPlays:      social.Average(float64(plays), len(reels)),
		AvgEngagement: social.Average(float64(engagement), count),
		ShareRate:     social.Ratio(float64(shares), float64(plays)),
	}
}

func storyType(mediaType string) string {
	if mediaType == metadomain.MediaTypeVideo {
		return "video"
	}
	return "photo"
}
