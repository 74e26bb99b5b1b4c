package main

import (
	"context"
	"io"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/infrastructure/database/mongodb"
	"github.com/vfg2006/social-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/meta/facebook"
	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/meta/instagram"
	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/tiktok"
	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/twitter"
	"github.com/vfg2006/social-metrics-api/infrastructure/repository"
	"github.com/vfg2006/social-metrics-api/internal/api"
	"github.com/vfg2006/social-metrics-api/internal/cache"
	"github.com/vfg2006/social-metrics-api/internal/config"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/scheduler"
	"github.com/vfg2006/social-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/social-metrics-api/internal/usecases/collecting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshotRepo, closer := snapshotRepository(ctx, cfg)
	defer closer.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	telemetry := metrics.NewCollectionMetrics(registry)

	monitor := social.NewRateLimitMonitor()
	metricsCache := cache.New(cfg.Collection.CacheTTL, cfg.Collection.CacheSweep)
	defer metricsCache.Stop()

	adapters, err := platformAdapters(cfg, monitor, metricsCache)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar as plataformas")
	}

	collector := collecting.NewService(snapshotRepo, monitor, adapters...).
		WithParallel(cfg.Collection.Parallel).
		WithMetrics(telemetry)

	authenticator := authenticating.NewService(cfg.Auth)

	metricsScheduler := scheduler.NewMetricsScheduler(
		collector,
		snapshotRepo,
		scheduler.NewMetricsSchedulerConfig(cfg.Collection),
	).WithMetrics(telemetry)

	// Inicia o agendador em background
	if err := metricsScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de coleta de métricas")
	} else {
		logrus.Info("Agendador de coleta de métricas iniciado com sucesso")
	}
	defer metricsScheduler.Stop()

	server, err := api.New(cfg, api.Services{
		Collector:     collector,
		Reader:        collector,
		Authenticator: authenticator,
		Scheduler:     metricsScheduler,
		RateLimits:    monitor,
		Gatherer:      registry,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	_ = os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// snapshotRepository escolhe o armazenamento pelo STORAGE_DRIVER
func snapshotRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, io.Closer) {
	switch cfg.App.StorageDriver {
	case "mongo", "mongodb":
		conn, err := mongodb.NewConnection(ctx, cfg.Mongo)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao MongoDB")
		}
		return repository.NewMongoSnapshotRepository(conn.Database), conn
	default:
		conn := pgconn(ctx, cfg.Database)
		if err := postgres.EnsureSchema(ctx, conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao criar o schema do PostgreSQL")
		}
		return repository.NewPostgresSnapshotRepository(conn), conn
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// platformAdapters monta um adapter por plataforma listada em COLLECTION_PLATFORMS
func platformAdapters(cfg *config.Config, monitor *social.RateLimitMonitor, c social.Cache) ([]social.PlatformAdapter, error) {
	platforms, err := domain.ParsePlatforms(cfg.Collection.Platforms)
	if err != nil {
		return nil, err
	}

	adapters := make([]social.PlatformAdapter, 0, len(platforms))
	for _, p := range platforms {
		switch p {
		case domain.PlatformTikTok:
			adapters = append(adapters, tiktok.New(newRequester(p, cfg.TikTok.Platform(), social.AuthBearer, cfg.Collection, monitor), c))
		case domain.PlatformFacebook:
			adapters = append(adapters, facebook.New(newRequester(p, cfg.Facebook.Platform(), social.AuthQueryParam, cfg.Collection, monitor), c, cfg.Facebook.AdAccountID))
		case domain.PlatformInstagram:
			adapters = append(adapters, instagram.New(newRequester(p, cfg.Instagram.Platform(), social.AuthQueryParam, cfg.Collection, monitor), c))
		case domain.PlatformTwitter:
			adapters = append(adapters, twitter.New(newRequester(p, cfg.Twitter.Platform(), social.AuthBearer, cfg.Collection, monitor), c))
		}

		logrus.WithField("platform", p).Info("Plataforma habilitada para coleta")
	}

	return adapters, nil
}

func newRequester(p domain.Platform, pc config.Platform, auth social.AuthStyle, cc config.Collection, monitor *social.RateLimitMonitor) *social.Requester {
	if pc.AccessToken == "" {
		logrus.WithField("platform", p).Warn("Token de acesso vazio, as chamadas devem falhar com 401")
	}

	return social.NewRequester(social.RequesterConfig{
		Platform:             p,
		BaseURL:              pc.BaseURL,
		AccessToken:          pc.AccessToken,
		Auth:                 auth,
		Timeout:              cc.RequestTimeout,
		MaxRetries:           cc.MaxRetries,
		RetryDelay:           cc.RetryDelay,
		RateLimitWindow:      pc.RateLimitWindow,
		RateLimitMaxRequests: pc.RateLimitMaxRequests,
	}, monitor)
}
