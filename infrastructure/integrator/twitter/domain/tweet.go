package twitterdomain

import (
	"strings"
	"time"
)

type TweetsResponse struct {
	Data []Tweet `json:"data"`
	Meta Meta    `json:"meta"`
}

type Meta struct {
	ResultCount int64  `json:"result_count"`
	NextToken   string `json:"next_token,omitempty"`
}

type Tweet struct {
	ID                 string              `json:"id"`
	Text               string              `json:"text"`
	CreatedAt          time.Time           `json:"created_at"`
	PublicMetrics      TweetPublicMetrics  `json:"public_metrics"`
	ReferencedTweets   []ReferencedTweet   `json:"referenced_tweets,omitempty"`
	ContextAnnotations []ContextAnnotation `json:"context_annotations,omitempty"`
	Entities           *Entities           `json:"entities,omitempty"`
}

type TweetPublicMetrics struct {
	LikeCount       int64 `json:"like_count"`
	ReplyCount      int64 `json:"reply_count"`
	RetweetCount    int64 `json:"retweet_count"`
	QuoteCount      int64 `json:"quote_count"`
	ImpressionCount int64 `json:"impression_count"`
}

type ReferencedTweet struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type ContextAnnotation struct {
	Domain ContextEntity `json:"domain"`
	Entity ContextEntity `json:"entity"`
}

type ContextEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Entities struct {
	Hashtags []HashtagEntity `json:"hashtags,omitempty"`
	URLs     []URLEntity     `json:"urls,omitempty"`
}

type HashtagEntity struct {
	Tag string `json:"tag"`
}

type URLEntity struct {
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url"`
}

// Engagement considera curtidas, respostas, retweets e citações
func (m TweetPublicMetrics) Engagement() int64 {
	return m.LikeCount + m.ReplyCount + m.RetweetCount + m.QuoteCount
}

// EngagementActions é a base da taxa de engajamento: curtidas, respostas e retweets
func (m TweetPublicMetrics) EngagementActions() int64 {
	return m.LikeCount + m.ReplyCount + m.RetweetCount
}

func (t Tweet) HasURLContaining(fragment string) bool {
	if t.Entities == nil {
		return false
	}
	for _, u := range t.Entities.URLs {
		if strings.Contains(u.ExpandedURL, fragment) {
			return true
		}
	}
	return false
}

func (t Tweet) HasLinks() bool {
	return t.Entities != nil && len(t.Entities.URLs) > 0
}

func (t Tweet) CountReferences(refType string) int {
	n := 0
	for _, ref := range t.ReferencedTweets {
		if ref.Type == refType {
			n++
		}
	}
	return n
}
