package tiktokdomain

// UserInfo é o payload de /user/info/
type UserInfo struct {
	OpenID               string               `json:"open_id"`
	DisplayName          string               `json:"display_name"`
	FollowersCount       int64                `json:"followers_count"`
	FollowingCount       int64                `json:"following_count"`
	LikesCount           int64                `json:"likes_count"`
	VideoCount           int64                `json:"video_count"`
	ProfileViews         int64                `json:"profile_views"`
	AudienceDemographics AudienceDemographics `json:"audience_demographics"`
}

type AudienceDemographics struct {
	Gender      map[string]float64 `json:"gender"`
	Age         map[string]float64 `json:"age"`
	Location    map[string]float64 `json:"location"`
	Language    map[string]float64 `json:"language"`
	Interests   []string           `json:"interests"`
	ActiveTimes map[string]float64 `json:"active_times"`
}
