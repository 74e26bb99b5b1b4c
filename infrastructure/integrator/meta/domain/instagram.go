package metadomain

const (
	MediaTypeImage    = "IMAGE"
	MediaTypeVideo    = "VIDEO"
	MediaTypeCarousel = "CAROUSEL_ALBUM"

	ProductTypeReels = "REELS"
	ProductTypeStory = "STORY"
)

type InstagramProfile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FollowersCount int64  `json:"followers_count"`
	FollowsCount   int64  `json:"follows_count"`
	MediaCount     int64  `json:"media_count"`
}

type MediaResponse struct {
	Data   []Media `json:"data"`
	Paging Paging  `json:"paging"`
}

type Media struct {
	ID               string            `json:"id"`
	Caption          string            `json:"caption"`
	MediaType        string            `json:"media_type"`
	MediaProductType string            `json:"media_product_type"`
	LikeCount        int64             `json:"like_count"`
	CommentsCount    int64             `json:"comments_count"`
	Timestamp        string            `json:"timestamp"`
	Insights         *InsightsResponse `json:"insights,omitempty"`
}

// Engagement soma curtidas e comentários
func (m Media) Engagement() int64 {
	return m.LikeCount + m.CommentsCount
}

func (m Media) IsReel() bool {
	return m.MediaProductType == ProductTypeReels
}
