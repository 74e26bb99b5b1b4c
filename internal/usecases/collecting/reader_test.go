package collecting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/social-metrics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

func TestService_Latest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSnapshotRepository(ctrl)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	t.Run("Retorna o último snapshot", func(t *testing.T) {
		expected := &domain.MetricsSnapshot{ID: "abc", Platform: domain.PlatformTikTok}
		mockRepo.EXPECT().FindLatest(ctx, domain.PlatformTikTok).Return(expected, nil)

		snapshot, err := service.Latest(ctx, domain.PlatformTikTok)

		require.NoError(t, err)
		assert.Equal(t, "abc", snapshot.ID)
	})

	t.Run("Sem snapshots retorna ErrSnapshotNotFound", func(t *testing.T) {
		mockRepo.EXPECT().FindLatest(ctx, domain.PlatformTwitter).Return(nil, nil)

		_, err := service.Latest(ctx, domain.PlatformTwitter)

		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})
}

func TestService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSnapshotRepository(ctrl)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	t.Run("Intervalo invertido é rejeitado", func(t *testing.T) {
		_, err := service.History(ctx, domain.PlatformFacebook, to, from)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("Repassa o intervalo ao repositório", func(t *testing.T) {
		mockRepo.EXPECT().FindRange(ctx, domain.PlatformFacebook, from, to).
			Return([]domain.MetricsSnapshot{{ID: "1"}, {ID: "2"}}, nil)

		snapshots, err := service.History(ctx, domain.PlatformFacebook, from, to)

		require.NoError(t, err)
		assert.Len(t, snapshots, 2)
	})
}

func TestService_Recent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "Limite padrão", limit: 0, expectedLimit: DefaultRecentLimit},
		{name: "Limite informado", limit: 5, expectedLimit: 5},
		{name: "Limite acima do máximo", limit: 1000, expectedLimit: MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockSnapshotRepository(ctrl)
			mockRepo.EXPECT().ListRecent(gomock.Any(), domain.Platform(""), tt.expectedLimit).
				Return([]domain.MetricsSnapshot{}, nil)

			_, err := NewService(mockRepo, nil).Recent(context.Background(), "", tt.limit)

			assert.NoError(t, err)
		})
	}
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		snapshot *domain.MetricsSnapshot
		setup    func(repo *mocks.MockSnapshotRepository)
		validate func(t *testing.T, snapshot *domain.MetricsSnapshot, err error)
	}{
		{
			name: "Preenche id e timestamp ausentes",
			snapshot: &domain.MetricsSnapshot{
				Platform: domain.PlatformFacebook,
				Metrics:  domain.Metrics{Followers: 10},
			},
			setup: func(repo *mocks.MockSnapshotRepository) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, snapshot *domain.MetricsSnapshot, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, snapshot.ID)
				assert.False(t, snapshot.Timestamp.IsZero())
				assert.NotNil(t, snapshot.Metrics.AudienceDemographics.Age)
			},
		},
		{
			name: "Mantém timestamp histórico",
			snapshot: &domain.MetricsSnapshot{
				ID:        "historico-1",
				Platform:  domain.PlatformTwitter,
				Timestamp: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
			},
			setup: func(repo *mocks.MockSnapshotRepository) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, snapshot *domain.MetricsSnapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, "historico-1", snapshot.ID)
				assert.Equal(t, 2023, snapshot.Timestamp.Year())
			},
		},
		{
			name:     "Plataforma inválida",
			snapshot: &domain.MetricsSnapshot{Platform: "myspace"},
			setup:    func(repo *mocks.MockSnapshotRepository) {},
			validate: func(t *testing.T, snapshot *domain.MetricsSnapshot, err error) {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
			},
		},
		{
			name: "Contador negativo",
			snapshot: &domain.MetricsSnapshot{
				Platform: domain.PlatformTikTok,
				Metrics:  domain.Metrics{Followers: -1},
			},
			setup: func(repo *mocks.MockSnapshotRepository) {},
			validate: func(t *testing.T, snapshot *domain.MetricsSnapshot, err error) {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
				assert.Contains(t, err.Error(), "followers")
			},
		},
		{
			name:     "Corpo vazio",
			snapshot: nil,
			setup:    func(repo *mocks.MockSnapshotRepository) {},
			validate: func(t *testing.T, snapshot *domain.MetricsSnapshot, err error) {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
			},
		},
		{
			name:     "Erro ao inserir",
			snapshot: &domain.MetricsSnapshot{Platform: domain.PlatformTikTok},
			setup: func(repo *mocks.MockSnapshotRepository) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("duplicado"))
			},
			validate: func(t *testing.T, snapshot *domain.MetricsSnapshot, err error) {
				assert.Error(t, err)
				assert.Nil(t, snapshot)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockSnapshotRepository(ctrl)
			tt.setup(mockRepo)

			snapshot, err := NewService(mockRepo, nil).Import(context.Background(), tt.snapshot)

			tt.validate(t, snapshot, err)
		})
	}
}
