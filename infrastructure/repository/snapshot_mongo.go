package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vfg2006/social-metrics-api/infrastructure/database/mongodb"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

type mongoSnapshotRepository struct {
	col *mongo.Collection
}

func NewMongoSnapshotRepository(db *mongo.Database) SnapshotRepository {
	return &mongoSnapshotRepository{
		col: db.Collection(mongodb.SnapshotsCollection),
	}
}

func (r *mongoSnapshotRepository) Insert(ctx context.Context, snapshot *domain.MetricsSnapshot) error {
	if _, err := r.col.InsertOne(ctx, snapshot); err != nil {
		return errors.Wrap(err, "erro ao inserir snapshot")
	}
	return nil
}

func (r *mongoSnapshotRepository) FindLatest(ctx context.Context, platform domain.Platform) (*domain.MetricsSnapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var snapshot domain.MetricsSnapshot
	err := r.col.FindOne(ctx, bson.M{"platform": platform}, opts).Decode(&snapshot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar último snapshot")
	}

	snapshot.Metrics.Normalize()
	return &snapshot, nil
}

func (r *mongoSnapshotRepository) FindRange(ctx context.Context, platform domain.Platform, from, to time.Time) ([]domain.MetricsSnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	return r.find(ctx, rangeFilter(platform, from, to), opts)
}

func (r *mongoSnapshotRepository) ListRecent(ctx context.Context, platform domain.Platform, limit int) ([]domain.MetricsSnapshot, error) {
	filter := bson.M{}
	if platform != "" {
		filter["platform"] = platform
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	return r.find(ctx, filter, opts)
}

func (r *mongoSnapshotRepository) UpdatePostFrequency(ctx context.Context, id string, pf domain.PostFrequency) error {
	update := bson.M{"$set": bson.M{"post_frequency": pf}}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar post_frequency")
	}
	if result.MatchedCount == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

func (r *mongoSnapshotRepository) CountInRange(ctx context.Context, platform domain.Platform, from, to time.Time) (int64, error) {
	count, err := r.col.CountDocuments(ctx, rangeFilter(platform, from, to))
	if err != nil {
		return 0, errors.Wrap(err, "erro ao contar snapshots")
	}
	return count, nil
}

func (r *mongoSnapshotRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.MetricsSnapshot, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a consulta")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	snapshots := make([]domain.MetricsSnapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar snapshots")
	}

	for i := range snapshots {
		snapshots[i].Metrics.Normalize()
	}
	return snapshots, nil
}

func rangeFilter(platform domain.Platform, from, to time.Time) bson.M {
	return bson.M{
		"platform": platform,
		"timestamp": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}
}
