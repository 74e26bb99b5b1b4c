package domain

import "time"

// PlatformSpecific guarda apenas o bloco da plataforma dona do snapshot.
// Os demais ponteiros ficam nil e são omitidos na serialização.
type PlatformSpecific struct {
	TikTok    *TikTokSpecific    `json:"tiktok,omitempty" bson:"tiktok,omitempty"`
	Facebook  *FacebookSpecific  `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram *InstagramSpecific `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Twitter   *TwitterSpecific   `json:"twitter,omitempty" bson:"twitter,omitempty"`
}

// KeepOnly descarta os blocos de outras plataformas
func (ps *PlatformSpecific) KeepOnly(p Platform) {
	if p != PlatformTikTok {
		ps.TikTok = nil
	}
	if p != PlatformFacebook {
		ps.Facebook = nil
	}
	if p != PlatformInstagram {
		ps.Instagram = nil
	}
	if p != PlatformTwitter {
		ps.Twitter = nil
	}
}

// Keys retorna as plataformas presentes no bloco
func (ps PlatformSpecific) Keys() []Platform {
	keys := make([]Platform, 0, 1)
	if ps.TikTok != nil {
		keys = append(keys, PlatformTikTok)
	}
	if ps.Facebook != nil {
		keys = append(keys, PlatformFacebook)
	}
	if ps.Instagram != nil {
		keys = append(keys, PlatformInstagram)
	}
	if ps.Twitter != nil {
		keys = append(keys, PlatformTwitter)
	}
	return keys
}

func (ps *PlatformSpecific) Normalize() {
	if ps.TikTok != nil {
		if ps.TikTok.SoundUsage == nil {
			ps.TikTok.SoundUsage = []SoundUsage{}
		}
		if ps.TikTok.VideoMetrics == nil {
			ps.TikTok.VideoMetrics = []TikTokVideoMetric{}
		}
	}
	if ps.Facebook != nil {
		if ps.Facebook.VideoMetrics == nil {
			ps.Facebook.VideoMetrics = []FacebookVideoMetric{}
		}
		if ps.Facebook.EventMetrics == nil {
			ps.Facebook.EventMetrics = []FacebookEventMetric{}
		}
		if ps.Facebook.AdMetrics == nil {
			ps.Facebook.AdMetrics = []FacebookAdMetric{}
		}
	}
	if ps.Instagram != nil {
		if ps.Instagram.StoryMetrics == nil {
			ps.Instagram.StoryMetrics = []InstagramStoryMetric{}
		}
		if ps.Instagram.ReelMetrics == nil {
			ps.Instagram.ReelMetrics = []InstagramReelMetric{}
		}
	}
	if ps.Twitter != nil {
		tm := &ps.Twitter.TweetMetrics
		if tm.TopTopics == nil {
			tm.TopTopics = []TopicStat{}
		}
		if tm.HashtagPerformance == nil {
			tm.HashtagPerformance = []HashtagStat{}
		}
		if tm.BestPostingTimes == nil {
			tm.BestPostingTimes = []PostingTimeStat{}
		}
	}
}

type TikTokSpecific struct {
	AverageViews     float64             `json:"average_views" bson:"average_views"`
	AverageWatchTime float64             `json:"average_watch_time" bson:"average_watch_time"`
	CompletionRate   float64             `json:"completion_rate" bson:"completion_rate"`
	VideoCount       int64               `json:"video_count" bson:"video_count"`
	SoundUsage       []SoundUsage        `json:"sound_usage" bson:"sound_usage"`
	VideoMetrics     []TikTokVideoMetric `json:"video_metrics" bson:"video_metrics"`
}

type SoundUsage struct {
	Title             string  `json:"title" bson:"title"`
	Author            string  `json:"author" bson:"author"`
	UsageCount        int     `json:"usage_count" bson:"usage_count"`
	AverageViews      float64 `json:"average_views" bson:"average_views"`
	AverageEngagement float64 `json:"average_engagement" bson:"average_engagement"`
}

type TikTokVideoMetric struct {
	VideoID        string  `json:"video_id" bson:"video_id"`
	Views          int64   `json:"views" bson:"views"`
	Likes          int64   `json:"likes" bson:"likes"`
	Comments       int64   `json:"comments" bson:"comments"`
	Shares         int64   `json:"shares" bson:"shares"`
	WatchTime      float64 `json:"watch_time" bson:"watch_time"`
	CompletionRate float64 `json:"completion_rate" bson:"completion_rate"`
}

type FacebookSpecific struct {
	PostsCount       int64                 `json:"posts_count" bson:"posts_count"`
	PageImpressions  int64                 `json:"page_impressions" bson:"page_impressions"`
	PageEngagedUsers int64                 `json:"page_engaged_users" bson:"page_engaged_users"`
	NegativeFeedback int64                 `json:"negative_feedback" bson:"negative_feedback"`
	PageViews        int64                 `json:"page_views" bson:"page_views"`
	TotalReactions   int64                 `json:"total_reactions" bson:"total_reactions"`
	VideoMetrics     []FacebookVideoMetric `json:"video_metrics" bson:"video_metrics"`
	EventMetrics     []FacebookEventMetric `json:"event_metrics" bson:"event_metrics"`
	AdMetrics        []FacebookAdMetric    `json:"ad_metrics" bson:"ad_metrics"`
}

type FacebookVideoMetric struct {
	VideoID       string  `json:"video_id" bson:"video_id"`
	Title         string  `json:"title" bson:"title"`
	Views         int64   `json:"views" bson:"views"`
	Duration      float64 `json:"duration" bson:"duration"`
	AvgWatchTime  float64 `json:"avg_watch_time" bson:"avg_watch_time"`
	RetentionRate float64 `json:"retention_rate" bson:"retention_rate"`
}

type FacebookEventMetric struct {
	EventID    string `json:"event_id" bson:"event_id"`
	Name       string `json:"name" bson:"name"`
	Attending  int64  `json:"attending" bson:"attending"`
	Interested int64  `json:"interested" bson:"interested"`
	Declined   int64  `json:"declined" bson:"declined"`
}

type FacebookAdMetric struct {
	AdID         string     `json:"ad_id" bson:"ad_id"`
	CampaignName string     `json:"campaign_name" bson:"campaign_name"`
	Impressions  int64      `json:"impressions" bson:"impressions"`
	Clicks       int64      `json:"clicks" bson:"clicks"`
	Spend        float64    `json:"spend" bson:"spend"`
	Actions      []AdAction `json:"actions" bson:"actions"`
}

type AdAction struct {
	ActionType string  `json:"action_type" bson:"action_type"`
	Value      float64 `json:"value" bson:"value"`
}

type InstagramSpecific struct {
	MediaCount   int64                  `json:"media_count" bson:"media_count"`
	StoryMetrics []InstagramStoryMetric `json:"story_metrics" bson:"story_metrics"`
	ReelMetrics  []InstagramReelMetric  `json:"reel_metrics" bson:"reel_metrics"`
	MediaTypes   InstagramMediaTypes    `json:"media_types" bson:"media_types"`
}

type InstagramStoryMetric struct {
	StoryID     string    `json:"story_id" bson:"story_id"`
	Type        string    `json:"type" bson:"type"`
	Impressions int64     `json:"impressions" bson:"impressions"`
	Reach       int64     `json:"reach" bson:"reach"`
	Exits       int64     `json:"exits" bson:"exits"`
	Replies     int64     `json:"replies" bson:"replies"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

type InstagramReelMetric struct {
	ReelID   string `json:"reel_id" bson:"reel_id"`
	Plays    int64  `json:"plays" bson:"plays"`
	Reach    int64  `json:"reach" bson:"reach"`
	Likes    int64  `json:"likes" bson:"likes"`
	Comments int64  `json:"comments" bson:"comments"`
	Shares   int64  `json:"shares" bson:"shares"`
	Saves    int64  `json:"saves" bson:"saves"`
}

type InstagramMediaTypes struct {
	ImageCount    int `json:"image_count" bson:"image_count"`
	VideoCount    int `json:"video_count" bson:"video_count"`
	CarouselCount int `json:"carousel_count" bson:"carousel_count"`
	ReelsCount    int `json:"reels_count" bson:"reels_count"`
	StoryCount    int `json:"story_count" bson:"story_count"`
}

type TwitterSpecific struct {
	VerifiedStatus bool         `json:"verified_status" bson:"verified_status"`
	MentionsCount  int64        `json:"mentions_count" bson:"mentions_count"`
	TweetCount     int64        `json:"tweet_count" bson:"tweet_count"`
	ListedCount    int64        `json:"listed_count" bson:"listed_count"`
	TweetMetrics   TweetMetrics `json:"tweet_metrics" bson:"tweet_metrics"`
}

type TweetMetrics struct {
	AverageImpressions float64           `json:"average_impressions" bson:"average_impressions"`
	AverageEngagement  float64           `json:"average_engagement" bson:"average_engagement"`
	ReplyRate          float64           `json:"reply_rate" bson:"reply_rate"`
	QuoteRate          float64           `json:"quote_rate" bson:"quote_rate"`
	TopTopics          []TopicStat       `json:"top_topics" bson:"top_topics"`
	HashtagPerformance []HashtagStat     `json:"hashtag_performance" bson:"hashtag_performance"`
	BestPostingTimes   []PostingTimeStat `json:"best_posting_times" bson:"best_posting_times"`
	MediaEngagement    TweetMediaStats   `json:"media_engagement" bson:"media_engagement"`
}

type TopicStat struct {
	Topic          string  `json:"topic" bson:"topic"`
	Count          int     `json:"count" bson:"count"`
	EngagementRate float64 `json:"engagement_rate" bson:"engagement_rate"`
}

type PostingTimeStat struct {
	Time           string  `json:"time" bson:"time"`
	EngagementRate float64 `json:"engagement_rate" bson:"engagement_rate"`
	AvgImpressions int64   `json:"avg_impressions" bson:"avg_impressions"`
}

type TweetMediaStats struct {
	Photos MediaEngagement `json:"photos" bson:"photos"`
	Videos MediaEngagement `json:"videos" bson:"videos"`
	Links  MediaEngagement `json:"links" bson:"links"`
}

type MediaEngagement struct {
	Count         int     `json:"count" bson:"count"`
	AvgEngagement float64 `json:"avg_engagement" bson:"avg_engagement"`
}
