package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

const (
	weeklyWindowDays  = 7
	monthlyWindowDays = 30
)

// RollupResult é o resultado do rollup diário de uma plataforma
type RollupResult struct {
	Platform      domain.Platform      `json:"platform"`
	SnapshotID    string               `json:"snapshot_id"`
	Stats         domain.DailyStats    `json:"stats"`
	PostFrequency domain.PostFrequency `json:"post_frequency"`
}

// DailyRollup agrega os snapshots de ontem [00:00, 00:00) de cada plataforma e grava o
// post_frequency no último snapshot do dia. Plataformas sem snapshots são puladas.
// Uma plataforma com erro não impede as demais.
func (s *MetricsScheduler) DailyRollup(ctx context.Context) ([]RollupResult, error) {
	now := s.now()
	today := utils.StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	results := make([]RollupResult, 0, len(domain.AllPlatforms))
	var errs []error

	for _, platform := range domain.AllPlatforms {
		result, ok, err := s.rollupPlatform(ctx, platform, yesterday, today, now)
		if err != nil {
			logrus.WithError(err).WithField("platform", platform).Error("Erro ao calcular rollup diário da plataforma")
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		results = append(results, result)
	}

	logrus.WithFields(logrus.Fields{
		"date":      yesterday.Format(time.DateOnly),
		"platforms": len(results),
		"errors":    len(errs),
	}).Info("Rollup diário finalizado")

	return results, errors.Join(errs...)
}

func (s *MetricsScheduler) rollupPlatform(ctx context.Context, platform domain.Platform, from, to, now time.Time) (RollupResult, bool, error) {
	snapshots, err := s.repo.FindRange(ctx, platform, from, to)
	if err != nil {
		return RollupResult{}, false, fmt.Errorf("erro ao buscar snapshots de %s: %w", platform, err)
	}
	if len(snapshots) == 0 {
		return RollupResult{}, false, nil
	}

	stats := domain.CalculateDailyStats(snapshots)

	weekly, err := s.repo.CountInRange(ctx, platform, now.AddDate(0, 0, -weeklyWindowDays), now)
	if err != nil {
		return RollupResult{}, false, fmt.Errorf("erro ao contar snapshots semanais de %s: %w", platform, err)
	}

	monthly, err := s.repo.CountInRange(ctx, platform, now.AddDate(0, 0, -monthlyWindowDays), now)
	if err != nil {
		return RollupResult{}, false, fmt.Errorf("erro ao contar snapshots mensais de %s: %w", platform, err)
	}

	last := snapshots[len(snapshots)-1]
	pf := domain.PostFrequency{
		Daily:   stats.SnapshotCount,
		Weekly:  domain.AveragePerDay(weekly, weeklyWindowDays),
		Monthly: domain.AveragePerDay(monthly, monthlyWindowDays),
		ByType:  last.PostFrequency.ByType,
	}

	if err := s.repo.UpdatePostFrequency(ctx, last.ID, pf); err != nil {
		return RollupResult{}, false, fmt.Errorf("erro ao atualizar post_frequency de %s: %w", platform, err)
	}

	logrus.WithFields(logrus.Fields{
		"platform":           platform,
		"snapshot_id":        last.ID,
		"follower_growth":    stats.FollowerGrowth,
		"average_engagement": utils.RoundWithTwoDecimalPlace(stats.AverageEngagement),
		"daily":              pf.Daily,
		"weekly":             pf.Weekly,
		"monthly":            pf.Monthly,
	}).Info("Rollup diário da plataforma calculado")

	return RollupResult{
		Platform:      platform,
		SnapshotID:    last.ID,
		Stats:         stats,
		PostFrequency: pf,
	}, true, nil
}
