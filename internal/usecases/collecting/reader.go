package collecting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

const (
	DefaultRecentLimit   = 10
	DefaultPlatformLimit = 5
	MaxListLimit         = 100
)

func (s *Service) Latest(ctx context.Context, platform domain.Platform) (*domain.MetricsSnapshot, error) {
	snapshot, err := s.repo.FindLatest(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar último snapshot de %s: %w", platform, err)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, platform)
	}
	return snapshot, nil
}

// History retorna os snapshots de [from, to) em ordem cronológica
func (s *Service) History(ctx context.Context, platform domain.Platform, from, to time.Time) ([]domain.MetricsSnapshot, error) {
	if !from.Before(to) {
		return nil, ErrInvalidRange
	}

	snapshots, err := s.repo.FindRange(ctx, platform, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico de %s: %w", platform, err)
	}
	return snapshots, nil
}

// Recent lista os snapshots mais novos primeiro. Platform vazia lista todas as plataformas.
func (s *Service) Recent(ctx context.Context, platform domain.Platform, limit int) ([]domain.MetricsSnapshot, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	snapshots, err := s.repo.ListRecent(ctx, platform, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar snapshots: %w", err)
	}
	return snapshots, nil
}

// Import grava um snapshot recebido de fora (carga histórica). Id e timestamp são preenchidos quando ausentes.
func (s *Service) Import(ctx context.Context, snapshot *domain.MetricsSnapshot) (*domain.MetricsSnapshot, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: corpo vazio", ErrInvalidSnapshot)
	}
	if !snapshot.Platform.IsValid() {
		return nil, fmt.Errorf("%w: plataforma %q", ErrInvalidSnapshot, snapshot.Platform)
	}
	if err := validateCounters(snapshot.Metrics); err != nil {
		return nil, err
	}

	if snapshot.ID == "" {
		snapshot.ID = utils.NewSnapshotID()
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = s.now()
	}
	snapshot.Metrics.PlatformSpecific.KeepOnly(snapshot.Platform)
	snapshot.Metrics.Normalize()

	if err := s.repo.Insert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("erro ao importar snapshot: %w", err)
	}
	return snapshot, nil
}

func validateCounters(m domain.Metrics) error {
	counters := map[string]int64{
		"followers":     m.Followers,
		"following":     m.Following,
		"likes":         m.Likes,
		"comments":      m.Comments,
		"shares":        m.Shares,
		"views":         m.Views,
		"profile_views": m.ProfileViews,
		"reach":         m.Reach,
		"impressions":   m.Impressions,
	}
	for name, v := range counters {
		if v < 0 {
			return fmt.Errorf("%w: %s negativo", ErrInvalidSnapshot, name)
		}
	}
	if m.EngagementRate < 0 {
		return fmt.Errorf("%w: engagement_rate negativo", ErrInvalidSnapshot)
	}
	return nil
}
