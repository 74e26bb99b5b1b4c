package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/social-metrics-api/internal/domain"
)

//go:generate mockgen -source=snapshot.go -destination=mocks/snapshot_mock.go -package=mocks

var ErrSnapshotNotFound = errors.New("snapshot não encontrado")

// SnapshotRepository persiste os snapshots de métricas.
// Os intervalos são sempre [from, to).
type SnapshotRepository interface {
	Insert(ctx context.Context, snapshot *domain.MetricsSnapshot) error
	// FindLatest retorna nil, nil quando a plataforma não tem snapshots
	FindLatest(ctx context.Context, platform domain.Platform) (*domain.MetricsSnapshot, error)
	// FindRange retorna os snapshots em ordem cronológica
	FindRange(ctx context.Context, platform domain.Platform, from, to time.Time) ([]domain.MetricsSnapshot, error)
	UpdatePostFrequency(ctx context.Context, id string, pf domain.PostFrequency) error
	CountInRange(ctx context.Context, platform domain.Platform, from, to time.Time) (int64, error)
	// ListRecent ordena do mais novo para o mais antigo; platform vazia lista todas
	ListRecent(ctx context.Context, platform domain.Platform, limit int) ([]domain.MetricsSnapshot, error)
}
