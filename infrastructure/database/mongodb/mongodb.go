package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vfg2006/social-metrics-api/internal/config"
)

const (
	connectTimeout = 10 * time.Second

	SnapshotsCollection = "social_metrics"
)

type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewConnection conecta, testa a conexão e garante os índices da coleção de snapshots
func NewConnection(ctx context.Context, cfg config.Mongo) (*Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("erro ao testar conexão com MongoDB: %w", err)
	}

	conn := &Connection{
		Client:   client,
		Database: client.Database(cfg.Database),
	}

	if err := conn.ensureIndexes(ctx); err != nil {
		logrus.WithError(err).Warn("Não foi possível criar os índices do MongoDB")
	}

	logrus.WithField("database", cfg.Database).Info("Conexão com MongoDB estabelecida com sucesso")
	return conn, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, nil)
}

func (c *Connection) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return c.Client.Disconnect(ctx)
}

func (c *Connection) ensureIndexes(ctx context.Context) error {
	_, err := c.Database.Collection(SnapshotsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "platform", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "platform", Value: 1}, {Key: "metrics.engagement_rate", Value: -1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}
