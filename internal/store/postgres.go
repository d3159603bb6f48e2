package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const jobColumns = `job_id, blend_group, coordinate, method,
	raw_weights, expected_values, expected_unit, actual_values, coord_unit,
	expected_count, presence_mask, final_weights,
	status, error,
	created_at, completed_at, updated_at`

func (s *PostgresStore) CreateJob(ctx context.Context, job *WeightJob) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO blend_weight_jobs (blend_group, coordinate, method,
			raw_weights, expected_values, expected_unit, actual_values, coord_unit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING job_id, created_at, updated_at`,
		job.Group, job.Coordinate, job.Method,
		job.RawWeights, job.ExpectedValues, job.ExpectedUnit, job.ActualValues,
		job.CoordUnit, job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func scanJob(row pgx.Row) (*WeightJob, error) {
	j := &WeightJob{}
	var expectedUnit, coordUnit, jobError sql.NullString
	var expectedCount sql.NullInt64
	err := row.Scan(
		&j.ID, &j.Group, &j.Coordinate, &j.Method,
		&j.RawWeights, &j.ExpectedValues, &expectedUnit, &j.ActualValues, &coordUnit,
		&expectedCount, &j.PresenceMask, &j.FinalWeights,
		&j.Status, &jobError,
		&j.CreatedAt, &j.CompletedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expectedUnit.Valid {
		j.ExpectedUnit = expectedUnit.String
	}
	if coordUnit.Valid {
		j.CoordUnit = coordUnit.String
	}
	if jobError.Valid {
		j.Error = jobError.String
	}
	if expectedCount.Valid {
		j.ExpectedCount = int(expectedCount.Int64)
	}
	return j, nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id uuid.UUID) (*WeightJob, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM blend_weight_jobs WHERE job_id = $1`, id)
	j, err := scanJob(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context, filter JobFilter) ([]*WeightJob, error) {
	query := `SELECT ` + jobColumns + ` FROM blend_weight_jobs WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Status != nil {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, string(*filter.Status))
	}
	if filter.Group != "" {
		n++
		query += fmt.Sprintf(" AND blend_group = $%d", n)
		args = append(args, filter.Group)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*WeightJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) GetPendingJobs(ctx context.Context, limit int) ([]*WeightJob, error) {
	pending := StatusPending
	return s.ListJobs(ctx, JobFilter{Status: &pending, Limit: limit})
}

func (s *PostgresStore) UpdateJob(ctx context.Context, job *WeightJob) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE blend_weight_jobs
		SET expected_count = $2, presence_mask = $3, final_weights = $4,
			status = $5, error = $6, completed_at = $7, updated_at = now()
		WHERE job_id = $1`,
		job.ID, job.ExpectedCount, job.PresenceMask, job.FinalWeights,
		job.Status, job.Error, job.CompletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s not found", job.ID)
	}
	return nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*JobStats, error) {
	stats := &JobStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'completed'),
			count(*) FILTER (WHERE status = 'failed')
		FROM blend_weight_jobs`,
	).Scan(&stats.TotalPending, &stats.TotalCompleted, &stats.TotalFailed)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
