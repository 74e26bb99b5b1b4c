package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/infrastructure/repository"
	"github.com/vfg2006/social-metrics-api/internal/config"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/usecases/collecting"
)

const (
	JobHourlyCollection = "hourly_collection"
	JobDailyRollup      = "daily_rollup"

	DefaultHourlyCron = "0 * * * *"
	DefaultDailyCron  = "0 0 * * *"
)

// MetricsSchedulerConfig representa a configuração dos jobs de coleta e rollup
type MetricsSchedulerConfig struct {
	HourlyCron string
	DailyCron  string
	Enabled    bool
	Location   *time.Location
}

func NewMetricsSchedulerConfig(cfg config.Collection) MetricsSchedulerConfig {
	c := MetricsSchedulerConfig{
		HourlyCron: cfg.HourlyCron,
		DailyCron:  cfg.DailyCron,
		Enabled:    cfg.SchedulerEnabled,
		Location:   time.Local,
	}
	if c.HourlyCron == "" {
		c.HourlyCron = DefaultHourlyCron
	}
	if c.DailyCron == "" {
		c.DailyCron = DefaultDailyCron
	}
	return c
}

type jobState struct {
	cron            string
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastError       string
	runs            int
}

// MetricsScheduler dispara a coleta a cada hora e o rollup diário dos snapshots
type MetricsScheduler struct {
	config    MetricsSchedulerConfig
	collector collecting.Collector
	repo      repository.SnapshotRepository
	telemetry *metrics.CollectionMetrics
	now       func() time.Time

	mu        sync.Mutex
	scheduler *gocron.Scheduler
	baseCtx   context.Context
	cancel    context.CancelFunc
	jobs      map[string]*jobState
}

func NewMetricsScheduler(
	collector collecting.Collector,
	repo repository.SnapshotRepository,
	cfg MetricsSchedulerConfig,
) *MetricsScheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	logrus.WithFields(logrus.Fields{
		"hourly_cron": cfg.HourlyCron,
		"daily_cron":  cfg.DailyCron,
		"enabled":     cfg.Enabled,
	}).Info("Configuração do agendador de métricas carregada")

	return &MetricsScheduler{
		config:    cfg,
		collector: collector,
		repo:      repo,
		now:       time.Now,
		baseCtx:   context.Background(),
		jobs: map[string]*jobState{
			JobHourlyCollection: {cron: cfg.HourlyCron},
			JobDailyRollup:      {cron: cfg.DailyCron},
		},
	}
}

// WithMetrics habilita a contagem de execuções dos jobs
func (s *MetricsScheduler) WithMetrics(m *metrics.CollectionMetrics) *MetricsScheduler {
	s.telemetry = m
	return s
}

// Start registra os dois jobs e inicia o agendador. Chamadas repetidas não registram jobs de novo.
func (s *MetricsScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Agendador de métricas desabilitado por configuração")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		logrus.Debug("Agendador de métricas já iniciado, ignorando")
		return nil
	}

	scheduler := gocron.NewScheduler(s.config.Location)

	if _, err := scheduler.Cron(s.config.HourlyCron).Tag(JobHourlyCollection).Do(func() {
		_ = s.runHourlyCollection()
	}); err != nil {
		return fmt.Errorf("erro ao agendar coleta horária: %w", err)
	}

	if _, err := scheduler.Cron(s.config.DailyCron).Tag(JobDailyRollup).Do(func() {
		_ = s.runDailyRollup()
	}); err != nil {
		scheduler.Clear()
		return fmt.Errorf("erro ao agendar rollup diário: %w", err)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	s.baseCtx = jobCtx
	s.cancel = cancel
	s.scheduler = scheduler

	logrus.WithFields(logrus.Fields{
		"hourly_cron": s.config.HourlyCron,
		"daily_cron":  s.config.DailyCron,
	}).Info("Iniciando agendador de métricas")

	scheduler.StartAsync()

	go func() {
		<-jobCtx.Done()
		s.stop(scheduler)
	}()

	return nil
}

// Stop para o agendador. Pode ser chamado mais de uma vez.
func (s *MetricsScheduler) Stop() {
	s.stop(nil)
}

// stop só para target quando ele ainda é o agendador atual (nil para qualquer um)
func (s *MetricsScheduler) stop(target *gocron.Scheduler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil || (target != nil && s.scheduler != target) {
		return
	}

	logrus.Info("Parando agendador de métricas")
	s.scheduler.Stop()
	s.scheduler = nil

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.baseCtx = context.Background()
}

// JobCount retorna a quantidade de jobs registrados no agendador em execução
func (s *MetricsScheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return 0
	}
	return s.scheduler.Len()
}

// TriggerManual executa o job em segundo plano. Retorna ErrJobRunning quando ele já está em execução.
func (s *MetricsScheduler) TriggerManual(job string) error {
	var run func() error
	switch job {
	case JobHourlyCollection:
		run = s.runHourlyCollection
	case JobDailyRollup:
		run = s.runDailyRollup
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJob, job)
	}

	if s.isRunning(job) {
		logrus.WithField("job", job).Info("Job já em andamento, ignorando solicitação manual")
		return ErrJobRunning
	}

	logrus.WithField("job", job).Info("Iniciando execução manual do job")
	go func() {
		_ = run()
	}()

	return nil
}

// GetStatus retorna o status atual do agendador
func (s *MetricsScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make(map[string]any, len(s.jobs))
	for name, state := range s.jobs {
		job := map[string]any{
			"cron":              state.cron,
			"running":           state.running,
			"runs":              state.runs,
			"last_started_at":   state.lastStartedAt,
			"last_completed_at": state.lastCompletedAt,
		}
		if state.lastError != "" {
			job["last_error"] = state.lastError
		}
		jobs[name] = job
	}

	return map[string]any{
		"enabled":  s.config.Enabled,
		"started":  s.scheduler != nil,
		"timezone": s.config.Location.String(),
		"jobs":     jobs,
	}
}

func (s *MetricsScheduler) runHourlyCollection() error {
	return s.runJob(JobHourlyCollection, func(ctx context.Context) error {
		report := s.collector.CollectAll(ctx)
		if report != nil && len(report.Results) > 0 && report.Succeeded() == 0 {
			return fmt.Errorf("nenhuma plataforma coletada com sucesso (%d falhas)", report.Failed())
		}
		return nil
	})
}

func (s *MetricsScheduler) runDailyRollup() error {
	return s.runJob(JobDailyRollup, func(ctx context.Context) error {
		_, err := s.DailyRollup(ctx)
		return err
	})
}

func (s *MetricsScheduler) isRunning(job string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[job].running
}

// runJob aplica a transição idle -> running -> idle. Um disparo com o job em execução é descartado.
func (s *MetricsScheduler) runJob(job string, fn func(ctx context.Context) error) (err error) {
	s.mu.Lock()
	state := s.jobs[job]
	if state.running {
		s.mu.Unlock()
		logrus.WithField("job", job).Info("Job já em andamento, ignorando")
		s.telemetry.ObserveJob(job, "skipped")
		return ErrJobRunning
	}
	state.running = true
	state.lastStartedAt = s.now()
	ctx := s.baseCtx
	s.mu.Unlock()

	startTime := state.lastStartedAt
	logger := logrus.WithField("job", job)
	logger.Info("Iniciando job do agendador")

	defer func() {
		if r := recover(); r != nil {
			err = &SchedulerJobError{Job: job, Cause: r}
		}

		outcome := "success"
		s.mu.Lock()
		state.running = false
		state.runs++
		state.lastCompletedAt = s.now()
		state.lastError = ""
		if err != nil {
			outcome = "failed"
			state.lastError = err.Error()
		}
		s.mu.Unlock()

		s.telemetry.ObserveJob(job, outcome)

		if err != nil {
			logger.WithError(err).Error("SchedulerJobError: job do agendador falhou")
			return
		}
		logger.WithField("duration", s.now().Sub(startTime).String()).Info("Job do agendador concluído")
	}()

	if fnErr := fn(ctx); fnErr != nil {
		return &SchedulerJobError{Job: job, Cause: fnErr}
	}
	return nil
}
