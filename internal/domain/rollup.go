package domain

import "math"

// DailyStats é o resumo calculado pelo rollup diário para uma plataforma
type DailyStats struct {
	FollowerGrowth    int64   `json:"follower_growth"`
	AverageEngagement float64 `json:"average_engagement"`
	SnapshotCount     int     `json:"snapshot_count"`
}

// CalculateDailyStats espera os snapshots em ordem cronológica
func CalculateDailyStats(snapshots []MetricsSnapshot) DailyStats {
	if len(snapshots) == 0 {
		return DailyStats{}
	}

	first := snapshots[0]
	last := snapshots[len(snapshots)-1]

	var sum float64
	for _, s := range snapshots {
		sum += s.Metrics.EngagementRate
	}

	return DailyStats{
		FollowerGrowth:    last.Metrics.Followers - first.Metrics.Followers,
		AverageEngagement: sum / float64(len(snapshots)),
		SnapshotCount:     len(snapshots),
	}
}

// AveragePerDay arredonda count/days para o inteiro mais próximo
func AveragePerDay(count int64, days int) int {
	if days <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(days)))
}
