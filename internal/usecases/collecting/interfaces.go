package collecting

import (
	"context"
	"time"

	"github.com/vfg2006/social-metrics-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/collector_mock.go -package=mocks

// Collector executa as coletas. Usado pelo scheduler e pelas rotas de disparo manual.
type Collector interface {
	// CollectAll coleta todas as plataformas configuradas. Falhas ficam no relatório, nunca no retorno.
	CollectAll(ctx context.Context) *domain.CollectionReport
	// CollectOne coleta uma plataforma e devolve o erro ao chamador
	CollectOne(ctx context.Context, platform domain.Platform) (*domain.MetricsSnapshot, error)
	Platforms() []domain.Platform
}

// Reader expõe os snapshots persistidos para a camada HTTP
type Reader interface {
	Latest(ctx context.Context, platform domain.Platform) (*domain.MetricsSnapshot, error)
	History(ctx context.Context, platform domain.Platform, from, to time.Time) ([]domain.MetricsSnapshot, error)
	Recent(ctx context.Context, platform domain.Platform, limit int) ([]domain.MetricsSnapshot, error)
	Import(ctx context.Context, snapshot *domain.MetricsSnapshot) (*domain.MetricsSnapshot, error)
}
