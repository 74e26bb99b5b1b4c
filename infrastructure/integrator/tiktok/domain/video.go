package tiktokdomain

type VideoListResponse struct {
	Data []Video `json:"data"`
}

type Video struct {
	ID         string          `json:"id"`
	CreateTime int64           `json:"create_time"`
	Duration   float64         `json:"duration"`
	Hashtags   []Hashtag       `json:"hashtags"`
	Statistics VideoStatistics `json:"statistics"`
	MusicInfo  *MusicInfo      `json:"music_info"`
}

type Hashtag struct {
	Name string `json:"name"`
}

type VideoStatistics struct {
	PlayCount    int64   `json:"play_count"`
	LikeCount    int64   `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
	ShareCount   int64   `json:"share_count"`
	AvgWatchTime float64 `json:"avg_watch_time"`
}

type MusicInfo struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Engagement soma curtidas, comentários e compartilhamentos
func (s VideoStatistics) Engagement() int64 {
	return s.LikeCount + s.CommentCount + s.ShareCount
}

// CompletionRate é avg_watch_time / duração x 100
func (v Video) CompletionRate() float64 {
	if v.Duration <= 0 {
		return 0
	}
	return v.Statistics.AvgWatchTime / v.Duration * 100
}
