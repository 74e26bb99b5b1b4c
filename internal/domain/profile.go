package domain

// ProfileMetrics é o resultado normalizado da consulta de perfil de uma plataforma
type ProfileMetrics struct {
	Followers    int64 `json:"followers"`
	Following    int64 `json:"following"`
	Likes        int64 `json:"likes"`
	Comments     int64 `json:"comments"`
	Shares       int64 `json:"shares"`
	Views        int64 `json:"views"`
	ProfileViews int64 `json:"profile_views"`
	Reach        int64 `json:"reach"`
	Impressions  int64 `json:"impressions"`

	AudienceDemographics AudienceDemographics `json:"audience_demographics"`
}

// PlatformSpecificMetrics agrupa o que cada adapter calcula a partir da lista de posts
type PlatformSpecificMetrics struct {
	ContentPerformance ContentPerformance `json:"content_performance"`
	PlatformSpecific   PlatformSpecific   `json:"platform_specific"`
	PostsByType        PostsByType        `json:"posts_by_type"`
}
