package metadomain

type Page struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	FollowersCount int64       `json:"followers_count"`
	FanCount       int64       `json:"fan_count"`
	Posts          SummaryEdge `json:"posts"`
}

// Followers usa fan_count quando followers_count não vem preenchido
func (p Page) Followers() int64 {
	if p.FollowersCount > 0 {
		return p.FollowersCount
	}
	return p.FanCount
}

type PostsResponse struct {
	Data   []Post `json:"data"`
	Paging Paging `json:"paging"`
}

type Post struct {
	ID          string       `json:"id"`
	Message     string       `json:"message"`
	CreatedTime string       `json:"created_time"`
	Reactions   SummaryEdge  `json:"reactions"`
	Comments    SummaryEdge  `json:"comments"`
	Shares      *ShareCount  `json:"shares,omitempty"`
	Attachments *Attachments `json:"attachments,omitempty"`
}

type ShareCount struct {
	Count int64 `json:"count"`
}

type Attachments struct {
	Data []Attachment `json:"data"`
}

type Attachment struct {
	MediaType string `json:"media_type"`
}

// Engagement soma reações e comentários
func (p Post) Engagement() int64 {
	return p.Reactions.Summary.TotalCount + p.Comments.Summary.TotalCount
}

func (p Post) ShareTotal() int64 {
	if p.Shares == nil {
		return 0
	}
	return p.Shares.Count
}

// MediaType retorna photo, video, album ou vazio
func (p Post) MediaType() string {
	if p.Attachments == nil || len(p.Attachments.Data) == 0 {
		return ""
	}
	return p.Attachments.Data[0].MediaType
}

type VideosResponse struct {
	Data []Video `json:"data"`
}

type Video struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Length        float64          `json:"length"`
	VideoInsights InsightsResponse `json:"video_insights"`
}

type EventsResponse struct {
	Data []Event `json:"data"`
}

type Event struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AttendingCount  int64  `json:"attending_count"`
	InterestedCount int64  `json:"interested_count"`
	DeclinedCount   int64  `json:"declined_count"`
}
