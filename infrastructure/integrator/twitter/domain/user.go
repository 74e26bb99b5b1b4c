package twitterdomain

type UserResponse struct {
	Data User `json:"data"`
}

type User struct {
	ID            string            `json:"id"`
	Username      string            `json:"username"`
	Name          string            `json:"name"`
	Verified      bool              `json:"verified"`
	ProfileViews  int64             `json:"profile_views"`
	PublicMetrics UserPublicMetrics `json:"public_metrics"`
}

type UserPublicMetrics struct {
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	TweetCount     int64 `json:"tweet_count"`
	ListedCount    int64 `json:"listed_count"`
	LikeCount      int64 `json:"like_count"`
}
