package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/vfg2006/social-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	snapshotsTable   = "social_metrics"
	snapshotsColumns = "id, platform, timestamp, metrics, post_frequency, api_metrics"
)

type postgresSnapshotRepository struct {
	conn postgres.Queryer
}

func NewPostgresSnapshotRepository(conn postgres.Queryer) SnapshotRepository {
	return &postgresSnapshotRepository{
		conn: conn,
	}
}

func (r *postgresSnapshotRepository) Insert(ctx context.Context, snapshot *domain.MetricsSnapshot) error {
	query, args, err := buildInsertQuery(snapshot)
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return errors.Wrapf(pqErr, "erro no banco de dados ao inserir snapshot (código: %s)", pqErr.Code)
		}
		return errors.Wrap(err, "erro ao inserir snapshot")
	}

	return nil
}

func (r *postgresSnapshotRepository) FindLatest(ctx context.Context, platform domain.Platform) (*domain.MetricsSnapshot, error) {
	query, args, err := buildListQuery(platform, 1)
	if err != nil {
		return nil, err
	}

	snapshot, err := scanSnapshot(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar último snapshot")
	}

	return snapshot, nil
}

func (r *postgresSnapshotRepository) FindRange(ctx context.Context, platform domain.Platform, from, to time.Time) ([]domain.MetricsSnapshot, error) {
	query, args, err := buildRangeQuery(platform, from, to)
	if err != nil {
		return nil, err
	}

	return r.queryMany(ctx, query, args)
}

func (r *postgresSnapshotRepository) ListRecent(ctx context.Context, platform domain.Platform, limit int) ([]domain.MetricsSnapshot, error) {
	query, args, err := buildListQuery(platform, limit)
	if err != nil {
		return nil, err
	}

	return r.queryMany(ctx, query, args)
}

func (r *postgresSnapshotRepository) UpdatePostFrequency(ctx context.Context, id string, pf domain.PostFrequency) error {
	query, args, err := buildUpdatePostFrequencyQuery(id, pf)
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar post_frequency")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}
	if rowsAffected == 0 {
		return ErrSnapshotNotFound
	}

	return nil
}

func (r *postgresSnapshotRepository) CountInRange(ctx context.Context, platform domain.Platform, from, to time.Time) (int64, error) {
	query, args, err := buildCountQuery(platform, from, to)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar snapshots")
	}

	return count, nil
}

func (r *postgresSnapshotRepository) queryMany(ctx context.Context, query string, args []any) ([]domain.MetricsSnapshot, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	snapshots := make([]domain.MetricsSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear snapshot")
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return snapshots, nil
}

func buildInsertQuery(snapshot *domain.MetricsSnapshot) (string, []any, error) {
	metricsJSON, err := json.Marshal(snapshot.Metrics)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar metrics para JSON")
	}

	postFrequencyJSON, err := json.Marshal(snapshot.PostFrequency)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar post_frequency para JSON")
	}

	apiMetricsJSON, err := json.Marshal(snapshot.APIMetrics)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar api_metrics para JSON")
	}

	query, args, err := squirrel.
		Insert(snapshotsTable).
		Columns("id", "platform", "timestamp", "metrics", "post_frequency", "api_metrics").
		Values(
			snapshot.ID,
			string(snapshot.Platform),
			snapshot.Timestamp.UTC(),
			metricsJSON,
			postFrequencyJSON,
			apiMetricsJSON,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}

	return query, args, nil
}

func buildListQuery(platform domain.Platform, limit int) (string, []any, error) {
	builder := squirrel.
		Select(snapshotsColumns).
		From(snapshotsTable).
		OrderBy("timestamp DESC")

	if platform != "" {
		builder = builder.Where(squirrel.Eq{"platform": string(platform)})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}

	return query, args, nil
}

func buildRangeQuery(platform domain.Platform, from, to time.Time) (string, []any, error) {
	query, args, err := squirrel.
		Select(snapshotsColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"platform": string(platform)}).
		Where(squirrel.GtOrEq{"timestamp": from.UTC()}).
		Where(squirrel.Lt{"timestamp": to.UTC()}).
		OrderBy("timestamp ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}

	return query, args, nil
}

func buildCountQuery(platform domain.Platform, from, to time.Time) (string, []any, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(snapshotsTable).
		Where(squirrel.Eq{"platform": string(platform)}).
		Where(squirrel.GtOrEq{"timestamp": from.UTC()}).
		Where(squirrel.Lt{"timestamp": to.UTC()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}

	return query, args, nil
}

func buildUpdatePostFrequencyQuery(id string, pf domain.PostFrequency) (string, []any, error) {
	postFrequencyJSON, err := json.Marshal(pf)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar post_frequency para JSON")
	}

	query, args, err := squirrel.
		Update(snapshotsTable).
		Set("post_frequency", postFrequencyJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}

	return query, args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.MetricsSnapshot, error) {
	snapshot := &domain.MetricsSnapshot{}
	var platform string
	var metricsJSON, postFrequencyJSON, apiMetricsJSON []byte

	err := row.Scan(
		&snapshot.ID,
		&platform,
		&snapshot.Timestamp,
		&metricsJSON,
		&postFrequencyJSON,
		&apiMetricsJSON,
	)
	if err != nil {
		return nil, err
	}

	snapshot.Platform = domain.Platform(platform)

	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &snapshot.Metrics); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar JSON de metrics")
		}
	}
	if len(postFrequencyJSON) > 0 {
		if err := json.Unmarshal(postFrequencyJSON, &snapshot.PostFrequency); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar JSON de post_frequency")
		}
	}
	if len(apiMetricsJSON) > 0 {
		if err := json.Unmarshal(apiMetricsJSON, &snapshot.APIMetrics); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar JSON de api_metrics")
		}
	}

	snapshot.Metrics.Normalize()
	return snapshot, nil
}
