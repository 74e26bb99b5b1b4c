package twitter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	twitterdomain "github.com/vfg2006/social-metrics-api/infrastructure/integrator/twitter/domain"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

const (
	userFields  = "public_metrics,verified,profile_views"
	tweetFields = "created_at,public_metrics,referenced_tweets,context_annotations,entities"

	maxTopTopics = 5
)

type TwitterIntegrator struct {
	requester *social.Requester
	cache     social.Cache
	location  *time.Location
}

func New(requester *social.Requester, cache social.Cache) *TwitterIntegrator {
	return &TwitterIntegrator{
		requester: requester,
		cache:     cache,
		location:  time.Local,
	}
}

func (s *TwitterIntegrator) Platform() domain.Platform {
	return domain.PlatformTwitter
}

func (s *TwitterIntegrator) FetchProfileMetrics(ctx context.Context) (*domain.ProfileMetrics, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &domain.ProfileMetrics{
		Followers:    user.PublicMetrics.FollowersCount,
		Following:    user.PublicMetrics.FollowingCount,
		ProfileViews: user.ProfileViews,
	}

	tweets, err := s.tweets(ctx)
	if err != nil {
		logrus.WithError(err).Warn("twitter: tweets unavailable, profile totals left empty")
		return metrics, nil
	}

	for _, t := range tweets {
		m := t.PublicMetrics
		metrics.Likes += m.LikeCount
		metrics.Comments += m.ReplyCount
		metrics.Shares += m.RetweetCount + m.QuoteCount
		metrics.Impressions += m.ImpressionCount
	}

	return metrics, nil
}

func (s *TwitterIntegrator) FetchEngagementRate(ctx context.Context) (float64, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTwitter, social.KindEngagement, func(ctx context.Context) (float64, error) {
		tweets, err := s.tweets(ctx)
		if err != nil {
			return 0, err
		}

		user, err := s.user(ctx)
		if err != nil {
			return 0, err
		}

		var total int64
		for _, t := range tweets {
			total += t.PublicMetrics.EngagementActions()
		}

		return social.EngagementRate(total, len(tweets), user.PublicMetrics.FollowersCount), nil
	})
}

func (s *TwitterIntegrator) FetchPlatformSpecificMetrics(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTwitter, social.KindPlatformSpecific, func(ctx context.Context) (*domain.PlatformSpecificMetrics, error) {
		user, err := s.user(ctx)
		if err != nil {
			return nil, err
		}

		tweets, err := s.tweets(ctx)
		if err != nil {
			return nil, err
		}

		specific := &domain.TwitterSpecific{
			VerifiedStatus: user.Verified,
			TweetCount:     user.PublicMetrics.TweetCount,
			ListedCount:    user.PublicMetrics.ListedCount,
			MentionsCount:  s.mentionsCount(ctx, user.ID),
		}

		return s.analyzeTweets(tweets, specific), nil
	})
}

func (s *TwitterIntegrator) user(ctx context.Context) (*twitterdomain.User, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTwitter, social.KindProfile, func(ctx context.Context) (*twitterdomain.User, error) {
		var resp twitterdomain.UserResponse
		if err := s.requester.Get(ctx, "/users/me", map[string]string{"user.fields": userFields}, &resp); err != nil {
			logrus.WithError(err).Error("twitter: failed to get user")
			return nil, err
		}
		return &resp.Data, nil
	})
}

func (s *TwitterIntegrator) tweets(ctx context.Context) ([]twitterdomain.Tweet, error) {
	return social.Cached(ctx, s.cache, domain.PlatformTwitter, social.KindPosts, func(ctx context.Context) ([]twitterdomain.Tweet, error) {
		user, err := s.user(ctx)
		if err != nil {
			return nil, err
		}

		params := map[string]string{
			"max_results":  strconv.Itoa(social.EngagementSampleN),
			"tweet.fields": tweetFields,
		}

		var resp twitterdomain.TweetsResponse
		if err := s.requester.Get(ctx, fmt.Sprintf("/users/%s/tweets", user.ID), params, &resp); err != nil {
			logrus.WithError(err).Error("twitter: failed to list tweets")
			return nil, err
		}

		if len(resp.Data) > social.EngagementSampleN {
			resp.Data = resp.Data[:social.EngagementSampleN]
		}
		return resp.Data, nil
	})
}

func (s *TwitterIntegrator) mentionsCount(ctx context.Context, userID string) int64 {
	var resp twitterdomain.TweetsResponse
	endpoint := fmt.Sprintf("/users/%s/mentions", userID)
	if err := s.requester.Get(ctx, endpoint, map[string]string{"max_results": "100"}, &resp); err != nil {
		logrus.WithError(err).Warn("twitter: mentions unavailable, continuing without them")
		return 0
	}
	return resp.Meta.ResultCount
}

type topicTotals struct {
	count      int
	engagement int64
}

type mediaTotals struct {
	count      int
	engagement int64
}

func (m mediaTotals) stats() domain.MediaEngagement {
	return domain.MediaEngagement{
		Count:         m.count,
		AvgEngagement: social.Average(float64(m.engagement), m.count),
	}
}

// analyzeTweets calcula tópicos, hashtags, horários, mídia e taxas de resposta e citação
func (s *TwitterIntegrator) analyzeTweets(tweets []twitterdomain.Tweet, specific *domain.TwitterSpecific) *domain.PlatformSpecificMetrics {
	hashtags := social.NewHashtagAccumulator()
	slots := social.NewTimeSlotAccumulator(s.location)
	topics := make(map[string]*topicTotals)
	var topicOrder []string

	var photos, videos, links mediaTotals
	var impressions, engagement int64
	var replies, quotes int

	for _, t := range tweets {
		m := t.PublicMetrics
		e := m.Engagement()
		impressions += m.ImpressionCount
		engagement += e

		for _, c := range t.ContextAnnotations {
			name := c.Domain.Name
			if name == "" {
				continue
			}
			tt, ok := topics[name]
			if !ok {
				tt = &topicTotals{}
				topics[name] = tt
				topicOrder = append(topicOrder, name)
			}
			tt.count++
			tt.engagement += e
		}

		if t.Entities != nil {
			for _, h := range t.Entities.Hashtags {
				hashtags.Add(h.Tag, e, 0, m.ImpressionCount)
			}
		}

		slots.Add(t.CreatedAt, e, m.ImpressionCount)

		if t.HasURLContaining("/photo/") {
			photos.count++
			photos.engagement += e
		}
		if t.HasURLContaining("/video/") {
			videos.count++
			videos.engagement += e
		}
		if t.HasLinks() {
			links.count++
			links.engagement += e
		}

		replies += t.CountReferences("replied_to")
		quotes += t.CountReferences("quoted")
	}

	n := len(tweets)
	ranked := slots.Ranked()
	specific.TweetMetrics = domain.TweetMetrics{
		AverageImpressions: social.Average(float64(impressions), n),
		AverageEngagement:  social.Average(float64(engagement), n),
		ReplyRate:          social.Ratio(float64(replies), float64(n)),
		QuoteRate:          social.Ratio(float64(quotes), float64(n)),
		TopTopics:          topTopics(topics, topicOrder),
		HashtagPerformance: hashtags.Top(),
		BestPostingTimes:   ranked,
		MediaEngagement: domain.TweetMediaStats{
			Photos: photos.stats(),
			Videos: videos.stats(),
			Links:  links.stats(),
		},
	}

	bestTimes := make([]string, 0, len(ranked))
	for _, r := range ranked {
		bestTimes = append(bestTimes, r.Time)
	}

	return &domain.PlatformSpecificMetrics{
		PlatformSpecific: domain.PlatformSpecific{Twitter: specific},
		PostsByType: domain.PostsByType{
			Photos: photos.count,
			Videos: videos.count,
		},
		ContentPerformance: domain.ContentPerformance{
			BestTimes:   bestTimes,
			TopHashtags: specific.TweetMetrics.HashtagPerformance,
			MediaStats: domain.MediaStats{
				Photos: domain.PhotoStats{Count: photos.count, AvgEngagement: photos.stats().AvgEngagement},
				Videos: domain.VideoStats{Count: videos.count, AvgEngagement: videos.stats().AvgEngagement},
			},
		},
	}
}

func topTopics(topics map[string]*topicTotals, order []string) []domain.TopicStat {
	out := make([]domain.TopicStat, 0, len(order))
	for _, name := range order {
		t := topics[name]
		out = append(out, domain.TopicStat{
			Topic:          name,
			Count:          t.count,
			EngagementRate: float64(t.engagement) / float64(t.count),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EngagementRate > out[j].EngagementRate
	})

	if len(out) > maxTopTopics {
		out = out[:maxTopTopics]
	}
	return out
}
