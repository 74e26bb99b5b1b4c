package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS social_metrics (
		id              TEXT PRIMARY KEY,
		platform        TEXT NOT NULL CHECK (platform IN ('tiktok', 'facebook', 'instagram', 'twitter')),
		timestamp       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		metrics         JSONB NOT NULL DEFAULT '{}'::jsonb,
		post_frequency  JSONB NOT NULL DEFAULT '{}'::jsonb,
		api_metrics     JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_social_metrics_platform_timestamp ON social_metrics (platform, timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_social_metrics_timestamp ON social_metrics (timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_social_metrics_engagement ON social_metrics (platform, ((metrics->>'engagement_rate')::numeric) DESC)`,
}

// EnsureSchema cria a tabela de snapshots e os índices das consultas por plataforma e período
func EnsureSchema(ctx context.Context, q Queryer) error {
	for _, stmt := range schema {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao aplicar schema: %w", err)
		}
	}
	return nil
}
