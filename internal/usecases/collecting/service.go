package collecting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/infrastructure/repository"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

// Service orquestra a coleta das plataformas e a leitura dos snapshots persistidos
type Service struct {
	adapters  map[domain.Platform]social.PlatformAdapter
	order     []domain.Platform
	repo      repository.SnapshotRepository
	monitor   *social.RateLimitMonitor
	telemetry *metrics.CollectionMetrics
	parallel  bool
	now       func() time.Time
}

// NewService registra os adapters na ordem recebida. Adapters repetidos para a mesma plataforma são ignorados.
func NewService(repo repository.SnapshotRepository, monitor *social.RateLimitMonitor, adapters ...social.PlatformAdapter) *Service {
	if monitor == nil {
		monitor = social.NewRateLimitMonitor()
	}

	s := &Service{
		adapters: make(map[domain.Platform]social.PlatformAdapter, len(adapters)),
		repo:     repo,
		monitor:  monitor,
		now:      time.Now,
	}

	for _, adapter := range adapters {
		p := adapter.Platform()
		if _, exists := s.adapters[p]; exists {
			logrus.WithField("platform", p).Warn("Adapter duplicado ignorado")
			continue
		}
		s.adapters[p] = adapter
		s.order = append(s.order, p)
	}

	return s
}

// WithParallel coleta as plataformas em paralelo. A ordem das chamadas de cada plataforma é mantida.
func (s *Service) WithParallel(parallel bool) *Service {
	s.parallel = parallel
	return s
}

// WithMetrics habilita a telemetria Prometheus das coletas
func (s *Service) WithMetrics(m *metrics.CollectionMetrics) *Service {
	s.telemetry = m
	return s
}

func (s *Service) Platforms() []domain.Platform {
	out := make([]domain.Platform, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Service) CollectAll(ctx context.Context) *domain.CollectionReport {
	report := &domain.CollectionReport{
		RunID:     s.runID(),
		StartedAt: s.now(),
		Results:   make([]domain.PlatformResult, len(s.order)),
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":    report.RunID,
		"platforms": len(s.order),
		"parallel":  s.parallel,
	})
	logger.Info("Iniciando coleta de métricas das plataformas")

	if s.parallel {
		var g errgroup.Group
		for i, p := range s.order {
			g.Go(func() error {
				report.Results[i] = s.collectIsolated(ctx, p)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, p := range s.order {
			report.Results[i] = s.collectIsolated(ctx, p)
		}
	}

	report.FinishedAt = s.now()

	logger.WithFields(logrus.Fields{
		"succeeded": report.Succeeded(),
		"failed":    report.Failed(),
		"duration":  report.FinishedAt.Sub(report.StartedAt).String(),
	}).Info("Coleta de métricas finalizada")

	return report
}

func (s *Service) CollectOne(ctx context.Context, platform domain.Platform) (*domain.MetricsSnapshot, error) {
	adapter, ok := s.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlatformNotConfigured, platform)
	}

	return s.collect(ctx, adapter)
}

// collectIsolated nunca propaga erro nem pânico de uma plataforma
func (s *Service) collectIsolated(ctx context.Context, platform domain.Platform) (result domain.PlatformResult) {
	started := s.now()
	result = domain.PlatformResult{Platform: platform, Status: domain.CollectionStatusFailed}

	defer func() {
		if r := recover(); r != nil {
			result.Status = domain.CollectionStatusFailed
			result.Error = fmt.Sprintf("panic: %v", r)
			logrus.WithFields(logrus.Fields{
				"platform": platform,
				"panic":    r,
			}).Error("Pânico durante a coleta da plataforma")
		}
		result.DurationMs = s.now().Sub(started).Milliseconds()
	}()

	snapshot, err := s.collect(ctx, s.adapters[platform])
	if err != nil {
		result.Error = err.Error()
		logrus.WithError(err).WithField("platform", platform).Error("Erro ao coletar métricas da plataforma")
		return result
	}

	result.Status = domain.CollectionStatusSuccess
	result.SnapshotID = snapshot.ID
	logrus.WithFields(logrus.Fields{
		"platform":    platform,
		"snapshot_id": snapshot.ID,
		"followers":   snapshot.Metrics.Followers,
	}).Info("Métricas coletadas com sucesso")

	return result
}

// collect executa perfil, engajamento e métricas específicas, nessa ordem, e persiste o snapshot
func (s *Service) collect(ctx context.Context, adapter social.PlatformAdapter) (*domain.MetricsSnapshot, error) {
	platform := adapter.Platform()
	ctx, stats := social.WithRequestStats(ctx)
	started := s.now()

	snapshot, err := s.fetch(ctx, adapter)
	elapsed := s.now().Sub(started)

	api := s.apiMetrics(platform, stats, elapsed)
	if err != nil {
		s.telemetry.ObserveSnapshot(platform, domain.CollectionStatusFailed, elapsed, api)
		return nil, err
	}

	snapshot.ID = utils.NewSnapshotID()
	snapshot.Timestamp = started
	snapshot.APIMetrics = api

	if err := s.repo.Insert(ctx, snapshot); err != nil {
		s.telemetry.ObserveSnapshot(platform, domain.CollectionStatusFailed, elapsed, api)
		return nil, fmt.Errorf("erro ao salvar snapshot de %s: %w", platform, err)
	}

	s.telemetry.ObserveSnapshot(platform, domain.CollectionStatusSuccess, elapsed, api)
	return snapshot, nil
}

// fetch interrompe a plataforma em falhas de transporte ou cota. Payloads que não
// puderam ser normalizados viram seções zeradas e o snapshot segue parcial.
func (s *Service) fetch(ctx context.Context, adapter social.PlatformAdapter) (*domain.MetricsSnapshot, error) {
	platform := adapter.Platform()

	profile, err := adapter.FetchProfileMetrics(ctx)
	if err != nil {
		if !isNormalizationError(err) {
			return nil, fmt.Errorf("erro ao buscar perfil de %s: %w", platform, err)
		}
		warnPartial(platform, "profile", err)
		profile = &domain.ProfileMetrics{}
	}

	engagement, err := adapter.FetchEngagementRate(ctx)
	if err != nil {
		if !isNormalizationError(err) {
			return nil, fmt.Errorf("erro ao calcular engajamento de %s: %w", platform, err)
		}
		warnPartial(platform, "engagement", err)
		engagement = 0
	}

	specific, err := adapter.FetchPlatformSpecificMetrics(ctx)
	if err != nil {
		if !isNormalizationError(err) {
			return nil, fmt.Errorf("erro ao buscar métricas específicas de %s: %w", platform, err)
		}
		warnPartial(platform, "platform_specific", err)
		specific = &domain.PlatformSpecificMetrics{}
	}

	return assemble(platform, profile, engagement, specific), nil
}

func isNormalizationError(err error) bool {
	var normErr *social.NormalizationError
	return errors.As(err, &normErr)
}

func warnPartial(platform domain.Platform, section string, err error) {
	logrus.WithFields(logrus.Fields{
		"platform": platform,
		"section":  section,
		"error":    err.Error(),
	}).Warn("Resposta da plataforma fora do formato esperado, seção zerada no snapshot")
}

// assemble monta o formato canônico. Estruturas ausentes viram vazias e
// platform_specific mantém apenas a chave da própria plataforma.
func assemble(platform domain.Platform, profile *domain.ProfileMetrics, engagement float64, specific *domain.PlatformSpecificMetrics) *domain.MetricsSnapshot {
	if profile == nil {
		profile = &domain.ProfileMetrics{}
	}
	if specific == nil {
		specific = &domain.PlatformSpecificMetrics{}
	}

	snapshot := &domain.MetricsSnapshot{
		Platform: platform,
		Metrics: domain.Metrics{
			Followers:            profile.Followers,
			Following:            profile.Following,
			Likes:                profile.Likes,
			Comments:             profile.Comments,
			Shares:               profile.Shares,
			Views:                profile.Views,
			EngagementRate:       utils.RoundWithTwoDecimalPlace(engagement),
			ProfileViews:         profile.ProfileViews,
			Reach:                profile.Reach,
			Impressions:          profile.Impressions,
			AudienceDemographics: profile.AudienceDemographics,
			ContentPerformance:   specific.ContentPerformance,
			PlatformSpecific:     specific.PlatformSpecific,
		},
		PostFrequency: domain.PostFrequency{
			ByType: specific.PostsByType,
		},
	}

	snapshot.Metrics.PlatformSpecific.KeepOnly(platform)
	snapshot.Metrics.Normalize()

	return snapshot
}

func (s *Service) apiMetrics(platform domain.Platform, stats *social.RequestStats, elapsed time.Duration) domain.APIMetrics {
	api := domain.APIMetrics{
		ResponseTime: elapsed.Milliseconds(),
		ErrorCount:   stats.Errors(),
		RetryCount:   stats.Retries(),
	}

	if state, ok := s.monitor.State(platform); ok {
		api.RateLimits = domain.RateLimitInfo{
			Remaining: state.Remaining,
			ResetTime: state.ResetAt,
		}
	}

	return api
}

func (s *Service) runID() string {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar id da coleta, usando timestamp")
		return fmt.Sprintf("run-%d", s.now().UnixNano())
	}
	return id
}

// IsRateLimited informa se a falha foi causada pela cota da plataforma
func IsRateLimited(err error) bool {
	var rateErr *social.RateLimitExceededError
	return errors.As(err, &rateErr)
}
