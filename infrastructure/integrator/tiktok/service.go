package tiktok

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	tiktokdomain "github.com/vfg2006/social-metrics-api/infrastructure/integrator/tiktok/domain"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

const (
	userInfoEndpoint  = "/user/info/"
	videoListEndpoint = "/user/videos"

	maxTopSounds = 5
)

type TikTokIntegrator struct {
	requester *social.Requester
	cache     social.Cache
	location  *time.Location
}

func New(requester *social.Requester, cache social.Cache) *TikTokIntegrator {
	return &TikTokIntegrator{
		requester: requester,
		cache:     cache,
		location:  time.Local,
	}
}

func (s *TikTokIntegrator) Platform() domain.Platform {
	return domain.PlatformTikTok
}

func (s *TikTokIntegrator) FetchProfileMetrics(ctx context.Context) (*domain.ProfileMetrics, error) {
	user, err := s.userInfo(ctx)
	if err != nil {
		return nil, err
	}

	demographics := user.AudienceDemographics
	return &domain.ProfileMetrics{
		Followers:    user.FollowersCount,
		Following:    user.FollowingCount,
		Likes:        user.LikesCount,
		ProfileViews: user.ProfileViews,
		AudienceDemographics: domain.AudienceDemographics{
			Gender:      demographics.Gender,
			Age:         demographics.Age,
			Location:    demographics.Location,
			Language:    demographics.Language,
			Interests:   demographics.Interests,
			ActiveTimes: demographics.ActiveTimes,
		},
	}, nil
}

func (s *TikTokIntegrator) FetchEngagementRate(ctx context.Context) (float64, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTikTok, social.KindEngagement, func(ctx context.Context) (float64, error) {
		videos, err := s.videos(ctx)
		if err != nil {
			return 0, err
		}

		user, err := s.userInfo(ctx)
		if err != nil {
			return 0, err
		}

		var total int64
		for _, v := range videos {
			total += v.Statistics.Engagement()
		}

		return social.EngagementRate(total, len(videos), user.FollowersCount), nil
	})
}

func (s *TikTokIntegrator) FetchPlatformSpecificMetrics(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTikTok, social.KindPlatformSpecific, func(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
		videos, err := s.videos(ctx)
		if err != nil {
			return nil, err
		}

		videoCount := int64(len(videos))
		if user, err := s.userInfo(ctx); err == nil {
			videoCount = user.VideoCount
		}

		return s.calculateVideoMetrics(videos, videoCount), nil
	})
}

func (s *TikTokIntegrator) userInfo(ctx context.Context) (*tiktokdomain.UserInfo, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTikTok, social.KindProfile, func(ctx context.Context) (*tiktokdomain.UserInfo, error) {
		var user tiktokdomain.UserInfo
		if err := s.requester.Get(ctx, userInfoEndpoint, nil, &user); err != nil {
			logrus.WithError(err).Error("tiktok: failed to get user info")
			return nil, err
		}
		return &user, nil
	})
}

func (s *TikTokIntegrator) videos(ctx context.Context) ([]tiktokdomain.Video, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTikTok, social.KindPosts, func(ctx context.Context) ([]tiktokdomain.Video, error) {
		params := map[string]string{
			"max_count": strconv.Itoa(social.EngagementSampleN),
		}

		var resp tiktokdomain.VideoListResponse
		if err := s.requester.Get(ctx, videoListEndpoint, params, &resp); err != nil {
			logrus.WithError(err).Error("tiktok: failed to list videos")
			return nil, err
		}

		if len(resp.Data) > social.EngagementSampleN {
			resp.Data = resp.Data[:social.EngagementSampleN]
		}
		return resp.Data, nil
	})
}

type soundTotals struct {
	title      string
	author     string
	usage      int
	views      int64
	engagement int64
}

// calculateVideoMetrics deriva médias, hashtags, horários e sons a partir da lista de vídeos
func (s *TikTokIntegrator) calculateVideoMetrics(videos []tiktokdomain.Video, videoCount int64) *domain.PlatformSpecificMetrics {
	specific := &domain.TikTokSpecific{
		VideoCount:   videoCount,
		SoundUsage:   []domain.SoundUsage{},
		VideoMetrics: make([]domain.TikTokVideoMetric, 0, len(videos)),
	}

	result := &domain.PlatformSpecificMetrics{
		PlatformSpecific: domain.PlatformSpecific{TikTok: specific},
		PostsByType:      domain.PostsByType{Videos: len(videos)},
	}

	if len(videos) == 0 {
		return result
	}

	hashtags := social.NewHashtagAccumulator()
	slots := social.NewTimeSlotAccumulator(s.location)
	sounds := make(map[string]*soundTotals)
	var soundOrder []string

	var views, engagement int64
	var watchTime, completion float64

	for _, v := range videos {
		st := v.Statistics
		views += st.PlayCount
		engagement += st.Engagement()
		watchTime += st.AvgWatchTime
		completion += v.CompletionRate()

		for _, tag := range v.Hashtags {
			hashtags.Add(tag.Name, st.Engagement(), st.PlayCount, 0)
		}

		slots.Add(time.Unix(v.CreateTime, 0), st.PlayCount, 0)

		if v.MusicInfo != nil && v.MusicInfo.ID != "" {
			t, ok := sounds[v.MusicInfo.ID]
			if !ok {
				t = &soundTotals{title: v.MusicInfo.Title, author: v.MusicInfo.Author}
				sounds[v.MusicInfo.ID] = t
				soundOrder = append(soundOrder, v.MusicInfo.ID)
			}
			t.usage++
			t.views += st.PlayCount
			t.engagement += st.LikeCount + st.CommentCount
		}

		specific.VideoMetrics = append(specific.VideoMetrics, domain.TikTokVideoMetric{
			VideoID:        v.ID,
			Views:          st.PlayCount,
			Likes:          st.LikeCount,
			Comments:       st.CommentCount,
			Shares:         st.ShareCount,
			WatchTime:      st.AvgWatchTime,
			CompletionRate: v.CompletionRate(),
		})
	}

	n := len(videos)
	specific.AverageViews = social.Average(float64(views), n)
	specific.AverageWatchTime = social.Average(watchTime, n)
	specific.CompletionRate = social.Average(completion, n)
	specific.SoundUsage = topSounds(sounds, soundOrder)

	result.ContentPerformance = domain.ContentPerformance{
		BestTimes:   slots.Best(),
		TopHashtags: hashtags.Top(),
		MediaStats: domain.MediaStats{
			Videos: domain.VideoStats{
				Count:          n,
				AvgEngagement:  social.Average(float64(engagement), n),
				AvgWatchTime:   specific.AverageWatchTime,
				CompletionRate: specific.CompletionRate,
				TotalViews:     views,
			},
		},
	}

	return result
}

func topSounds(sounds map[string]*soundTotals, order []string) []domain.SoundUsage {
	ranked := make([]*soundTotals, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, sounds[id])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].engagement > ranked[j].engagement
	})

	if len(ranked) > maxTopSounds {
		ranked = ranked[:maxTopSounds]
	}

	out := make([]domain.SoundUsage, 0, len(ranked))
	for _, t := range ranked {
		out = append(out, domain.SoundUsage{
			Title:             t.title,
			Author:            t.author,
			UsageCount:        t.usage,
			AverageViews:      float64(t.views) / float64(t.usage),
			AverageEngagement: float64(t.engagement) / float64(t.usage),
		})
	}
	return out
}
