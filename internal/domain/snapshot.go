package domain

import (
	"time"
)

// MetricsSnapshot representa uma medição normalizada de uma plataforma em um instante
type MetricsSnapshot struct {
	ID            string        `json:"id" bson:"_id"`
	Platform      Platform      `json:"platform" bson:"platform"`
	Timestamp     time.Time     `json:"timestamp" bson:"timestamp"`
	Metrics       Metrics       `json:"metrics" bson:"metrics"`
	PostFrequency PostFrequency `json:"post_frequency" bson:"post_frequency"`
	APIMetrics    APIMetrics    `json:"api_metrics" bson:"api_metrics"`
}

// Metrics contém os campos comuns a todas as plataformas e as estruturas opcionais
type Metrics struct {
	Followers      int64   `json:"followers" bson:"followers"`
	Following      int64   `json:"following" bson:"following"`
	Likes          int64   `json:"likes" bson:"likes"`
	Comments       int64   `json:"comments" bson:"comments"`
	Shares         int64   `json:"shares" bson:"shares"`
	Views          int64   `json:"views" bson:"views"`
	EngagementRate float64 `json:"engagement_rate" bson:"engagement_rate"`
	ProfileViews   int64   `json:"profile_views" bson:"profile_views"`
	Reach          int64   `json:"reach" bson:"reach"`
	Impressions    int64   `json:"impressions" bson:"impressions"`

	AudienceDemographics AudienceDemographics `json:"audience_demographics" bson:"audience_demographics"`
	ContentPerformance   ContentPerformance   `json:"content_performance" bson:"content_performance"`
	PlatformSpecific     PlatformSpecific     `json:"platform_specific" bson:"platform_specific"`
}

// AudienceDemographics mapeia categoria -> percentual
type AudienceDemographics struct {
	Gender      map[string]float64 `json:"gender" bson:"gender"`
	Age         map[string]float64 `json:"age" bson:"age"`
	Location    map[string]float64 `json:"location" bson:"location"`
	Language    map[string]float64 `json:"language" bson:"language"`
	Interests   []string           `json:"interests" bson:"interests"`
	ActiveTimes map[string]float64 `json:"active_times" bson:"active_times"`
}

type ContentPerformance struct {
	BestTimes   []string      `json:"best_times" bson:"best_times"`
	TopHashtags []HashtagStat `json:"top_hashtags" bson:"top_hashtags"`
	MediaStats  MediaStats    `json:"media_stats" bson:"media_stats"`
}

// HashtagStat tem o mesmo formato independente da plataforma de origem
type HashtagStat struct {
	Tag            string  `json:"tag" bson:"tag"`
	Usage          int     `json:"usage" bson:"usage"`
	AvgEngagement  float64 `json:"avg_engagement" bson:"avg_engagement"`
	TotalReach     int64   `json:"total_reach,omitempty" bson:"total_reach,omitempty"`
	AvgImpressions float64 `json:"avg_impressions,omitempty" bson:"avg_impressions,omitempty"`
}

type MediaStats struct {
	Photos  PhotoStats `json:"photos" bson:"photos"`
	Videos  VideoStats `json:"videos" bson:"videos"`
	Stories StoryStats `json:"stories" bson:"stories"`
	Reels   ReelStats  `json:"reels" bson:"reels"`
}

type PhotoStats struct {
	Count            int     `json:"count" bson:"count"`
	AvgEngagement    float64 `json:"avg_engagement" bson:"avg_engagement"`
	TotalReach       int64   `json:"total_reach" bson:"total_reach"`
	TotalImpressions int64   `json:"total_impressions" bson:"total_impressions"`
}

type VideoStats struct {
	Count          int     `json:"count" bson:"count"`
	AvgEngagement  float64 `json:"avg_engagement" bson:"avg_engagement"`
	AvgWatchTime   float64 `json:"avg_watch_time" bson:"avg_watch_time"`
	CompletionRate float64 `json:"completion_rate" bson:"completion_rate"`
	TotalViews     int64   `json:"total_views" bson:"total_views"`
	TotalReach     int64   `json:"total_reach" bson:"total_reach"`
}

type StoryStats struct {
	Count          int     `json:"count" bson:"count"`
	AvgReach       float64 `json:"avg_reach" bson:"avg_reach"`
	AvgImpressions float64 `json:"avg_impressions" bson:"avg_impressions"`
	ExitRate       float64 `json:"exit_rate" bson:"exit_rate"`
	ReplyRate      float64 `json:"reply_rate" bson:"reply_rate"`
}

type ReelStats struct {
	Count          int     `json:"count" bson:"count"`
	AvgPlays       float64 `json:"avg_plays" bson:"avg_plays"`
	AvgEngagement  float64 `json:"avg_engagement" bson:"avg_engagement"`
	CompletionRate float64 `json:"completion_rate" bson:"completion_rate"`
	ShareRate      float64 `json:"share_rate" bson:"share_rate"`
}

// PostFrequency é o único campo que pode ser alterado depois da inserção (rollup diário)
type PostFrequency struct {
	Daily   int         `json:"daily" bson:"daily"`
	Weekly  int         `json:"weekly" bson:"weekly"`
	Monthly int         `json:"monthly" bson:"monthly"`
	ByType  PostsByType `json:"by_type" bson:"by_type"`
}

type PostsByType struct {
	Photos    int `json:"photos" bson:"photos"`
	Videos    int `json:"videos" bson:"videos"`
	Stories   int `json:"stories" bson:"stories"`
	Reels     int `json:"reels" bson:"reels"`
	Carousels int `json:"carousels" bson:"carousels"`
}

// APIMetrics descreve o ato de coleta, não a conta na plataforma
type APIMetrics struct {
	RateLimits   RateLimitInfo `json:"rate_limits" bson:"rate_limits"`
	ResponseTime int64         `json:"response_time" bson:"response_time"`
	ErrorCount   int           `json:"error_count" bson:"error_count"`
	RetryCount   int           `json:"retry_count" bson:"retry_count"`
}

type RateLimitInfo struct {
	Remaining int       `json:"remaining" bson:"remaining"`
	ResetTime time.Time `json:"reset_time" bson:"reset_time"`
}

// Normalize preenche mapas e listas ausentes com valores vazios
func (m *Metrics) Normalize() {
	m.AudienceDemographics.Normalize()
	m.ContentPerformance.Normalize()
	m.PlatformSpecific.Normalize()
}

func (d *AudienceDemographics) Normalize() {
	if d.Gender == nil {
		d.Gender = map[string]float64{}
	}
	if d.Age == nil {
		d.Age = map[string]float64{}
	}
	if d.Location == nil {
		d.Location = map[string]float64{}
	}
	if d.Language == nil {
		d.Language = map[string]float64{}
	}
	if d.Interests == nil {
		d.Interests = []string{}
	}
	if d.ActiveTimes == nil {
		d.ActiveTimes = map[string]float64{}
	}
}

func (c *ContentPerformance) Normalize() {
	if c.BestTimes == nil {
		c.BestTimes = []string{}
	}
	if c.TopHashtags == nil {
		c.TopHashtags = []HashtagStat{}
	}
}
