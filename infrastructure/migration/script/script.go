package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/infrastructure/database/mongodb"
	"github.com/vfg2006/social-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/social-metrics-api/infrastructure/repository"
	"github.com/vfg2006/social-metrics-api/internal/config"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

// Valores iniciais de seguidores por plataforma na carga de exemplo
var baseFollowers = map[domain.Platform]int64{
	domain.PlatformTikTok:    52000,
	domain.PlatformFacebook:  18000,
	domain.PlatformInstagram: 34000,
	domain.PlatformTwitter:   9000,
}

type seedOptions struct {
	Days     int
	Interval time.Duration
	Seed     uint64
	DryRun   bool
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})

	opts := seedOptions{}
	flag.IntVar(&opts.Days, "days", 7, "quantidade de dias de histórico")
	flag.DurationVar(&opts.Interval, "interval", time.Hour, "intervalo entre snapshots")
	flag.Uint64Var(&opts.Seed, "seed", uint64(time.Now().UnixNano()), "semente do gerador")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "apenas imprime um snapshot de exemplo")
	flag.Parse()

	batchID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar id da carga")
	}
	logger := logrus.WithFields(logrus.Fields{"batch": batchID, "days": opts.Days, "interval": opts.Interval})
	logger.Info("Iniciando carga de dados de exemplo...")

	snapshots := generateSnapshots(time.Now(), opts)
	preview, ok := previewSnapshot(snapshots)
	if !ok {
		logger.Warn("Nenhum snapshot gerado: intervalo maior que o período informado")
		return
	}
	if opts.DryRun {
		fmt.Println(preview)
		logger.Infof("Dry run: %d snapshots seriam inseridos", len(snapshots))
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()
	repo, closeFn := openRepository(ctx, cfg)
	defer closeFn()

	startTime := time.Now()
	successCount, errorCount := 0, 0
	for i := range snapshots {
		if err := repo.Insert(ctx, &snapshots[i]); err != nil {
			logger.WithError(err).Errorf("ERRO ao inserir snapshot [%d/%d]", i+1, len(snapshots))
			errorCount++
			continue
		}
		successCount++
		if i > 0 && i%100 == 0 {
			logger.Infof("Progresso: %d/%d snapshots processados", i+1, len(snapshots))
		}
	}

	logger.Infof("Carga concluída em %v. Sucesso: %d, Erros: %d", time.Since(startTime), successCount, errorCount)
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, func()) {
	switch cfg.App.StorageDriver {
	case "mongo", "mongodb":
		conn, err := mongodb.NewConnection(ctx, cfg.Mongo)
		if err != nil {
			logrus.WithError(err).Fatal("ERRO ao conectar ao MongoDB")
		}
		return repository.NewMongoSnapshotRepository(conn.Database), func() { _ = conn.Close() }
	default:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("ERRO ao conectar ao PostgreSQL")
		}
		if err := postgres.EnsureSchema(ctx, conn); err != nil {
			logrus.WithError(err).Fatal("ERRO ao criar schema")
		}
		return repository.NewPostgresSnapshotRepository(conn), func() { _ = conn.Close() }
	}
}

// generateSnapshots cria a série de cada plataforma terminando em now, do mais antigo para o mais novo
// previewSnapshot formata o último snapshot gerado. Retorna false para a lista vazia.
func previewSnapshot(snapshots []domain.MetricsSnapshot) (string, bool) {
	if len(snapshots) == 0 {
		return "", false
	}
	return utils.PrettyJson(snapshots[len(snapshots)-1]), true
}

func generateSnapshots(now time.Time, opts seedOptions) []domain.MetricsSnapshot {
	if opts.Days <= 0 {
		opts.Days = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Hour
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	steps := int(time.Duration(opts.Days) * 24 * time.Hour / opts.Interval)
	start := now.Add(-time.Duration(steps-1) * opts.Interval)

	snapshots := make([]domain.MetricsSnapshot, 0, steps*len(domain.AllPlatforms))
	for _, p := range domain.AllPlatforms {
		followers := baseFollowers[p]
		for i := 0; i < steps; i++ {
			followers += int64(rng.IntN(40)) - 5
			if followers < 0 {
				followers = 0
			}
			snapshots = append(snapshots, sampleSnapshot(rng, p, start.Add(time.Duration(i)*opts.Interval), followers))
		}
	}

	return snapshots
}

func sampleSnapshot(rng *rand.Rand, p domain.Platform, ts time.Time, followers int64) domain.MetricsSnapshot {
	likes := int64(rng.IntN(5000))
	comments := int64(rng.IntN(800))
	shares := int64(rng.IntN(400))

	snapshot := domain.MetricsSnapshot{
		ID:        utils.NewSnapshotID(),
		Platform:  p,
		Timestamp: ts,
		Metrics: domain.Metrics{
			Followers:      followers,
			Following:      int64(100 + rng.IntN(400)),
			Likes:          likes,
			Comments:       comments,
			Shares:         shares,
			Views:          int64(rng.IntN(200000)),
			EngagementRate: utils.RoundWithTwoDecimalPlace(rng.Float64() * 8),
			ProfileViews:   int64(rng.IntN(3000)),
			Reach:          int64(rng.IntN(60000)),
			Impressions:    int64(rng.IntN(90000)),
			AudienceDemographics: domain.AudienceDemographics{
				Gender:    map[string]float64{"Male": 45, "Female": 48, "Other": 7},
				Age:       map[string]float64{"13-17": 15, "18-24": 35, "25-34": 25, "35-44": 15, "45+": 10},
				Location:  map[string]float64{"Brazil": 55, "Portugal": 15, "United States": 10, "Other": 20},
				Language:  map[string]float64{"Portuguese": 70, "English": 20, "Spanish": 10},
				Interests: []string{"Travel", "Food", "Fashion", "Technology", "Sports", "Music"},
				ActiveTimes: map[string]float64{
					"00-04": 10, "04-08": 15, "08-12": 25, "12-16": 30, "16-20": 35, "20-24": 20,
				},
			},
			ContentPerformance: domain.ContentPerformance{
				BestTimes:   []string{"9:00", "12:00", "15:00", "18:00", "20:00"},
				TopHashtags: sampleHashtags(rng),
			},
		},
		PostFrequency: domain.PostFrequency{
			ByType: domain.PostsByType{
				Photos: rng.IntN(5),
				Videos: rng.IntN(5),
			},
		},
		APIMetrics: domain.APIMetrics{
			ResponseTime: int64(100 + rng.IntN(900)),
		},
	}

	switch p {
	case domain.PlatformTikTok:
		snapshot.Metrics.PlatformSpecific.TikTok = &domain.TikTokSpecific{
			AverageViews:     float64(rng.IntN(100000)),
			AverageWatchTime: utils.RoundWithTwoDecimalPlace(rng.Float64() * 60),
			CompletionRate:   utils.RoundWithTwoDecimalPlace(rng.Float64() * 100),
			VideoCount:       int64(50 + rng.IntN(200)),
		}
	case domain.PlatformFacebook:
		snapshot.Metrics.PlatformSpecific.Facebook = &domain.FacebookSpecific{
			PostsCount:       int64(rng.IntN(50)),
			PageImpressions:  int64(rng.IntN(500000)),
			PageEngagedUsers: int64(rng.IntN(100000)),
			NegativeFeedback: int64(rng.IntN(1000)),
			PageViews:        int64(rng.IntN(200000)),
			TotalReactions:   likes,
		}
	case domain.PlatformInstagram:
		snapshot.Metrics.PlatformSpecific.Instagram = &domain.InstagramSpecific{
			MediaCount: int64(100 + rng.IntN(500)),
			MediaTypes: domain.InstagramMediaTypes{
				ImageCount:    rng.IntN(30),
				VideoCount:    rng.IntN(10),
				CarouselCount: rng.IntN(10),
				ReelsCount:    rng.IntN(10),
			},
		}
		snapshot.PostFrequency.ByType.Reels = rng.IntN(4)
		snapshot.PostFrequency.ByType.Carousels = rng.IntN(3)
	case domain.PlatformTwitter:
		snapshot.Metrics.PlatformSpecific.Twitter = &domain.TwitterSpecific{
			VerifiedStatus: true,
			MentionsCount:  int64(rng.IntN(300)),
			TweetCount:     int64(1000 + rng.IntN(5000)),
			ListedCount:    int64(rng.IntN(100)),
			TweetMetrics: domain.TweetMetrics{
				AverageImpressions: float64(rng.IntN(10000)),
				AverageEngagement:  utils.RoundWithTwoDecimalPlace(rng.Float64() * 5),
			},
		}
	}

	snapshot.Metrics.Normalize()
	return snapshot
}

func sampleHashtags(rng *rand.Rand) []domain.HashtagStat {
	tags := make([]domain.HashtagStat, 10)
	for i := range tags {
		tags[i] = domain.HashtagStat{
			Tag:           fmt.Sprintf("#trending%d", i+1),
			Usage:         rng.IntN(1000),
			AvgEngagement: utils.RoundWithTwoDecimalPlace(float64(10-i) * 10 * rng.Float64()),
			TotalReach:    int64(rng.IntN(10000)),
		}
	}
	return tags
}
