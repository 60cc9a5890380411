package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"contract_intel/pkg/models"
)

// ListOptions control pagination and filtering of job listings.
type ListOptions struct {
	Skip   int
	Limit  int
	Status models.JobStatus // empty means all
	SortBy string           // "uploaded_at", "updated_at", "score", "filename"
	Desc   bool
}

// ContractRepository persists contract processing jobs. Implementations:
// PostgresRepo for deployments, MemoryRepo for tests and single-process
// runs.
type ContractRepository interface {
	Save(ctx context.Context, job *models.JobRecord) error
	Get(ctx context.Context, id string) (*models.JobRecord, error)
	List(ctx context.Context, opts ListOptions) ([]*models.JobRecord, error)
	Delete(ctx context.Context, id string) error
}

// ErrNotFound reports a missing job ID.
var ErrNotFound = fmt.Errorf("job not found")

// PostgresRepo stores jobs in the contract_jobs table, one JSONB blob per
// job with indexed columns for the fields listings filter and sort on.
type PostgresRepo struct{}

var _ ContractRepository = (*PostgresRepo)(nil)

func NewPostgresRepo() *PostgresRepo {
	return &PostgresRepo{}
}

func (r *PostgresRepo) Save(ctx context.Context, job *models.JobRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	job.UpdatedAt = time.Now().UTC()
	jsonData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	query := `
		INSERT INTO contract_jobs (id, filename, status, progress, score, job_json, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET
			status = EXCLUDED.status,
			progress = EXCLUDED.progress,
			score = EXCLUDED.score,
			job_json = EXCLUDED.job_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query,
		job.ID, job.Filename, string(job.Status), job.Progress, job.Score,
		jsonData, job.UploadedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (*models.JobRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT job_json FROM contract_jobs WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	var job models.JobRecord
	if err := json.Unmarshal(jsonData, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

func (r *PostgresRepo) List(ctx context.Context, opts ListOptions) ([]*models.JobRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	sortCol := sortColumn(opts.SortBy)
	dir := "ASC"
	if opts.Desc {
		dir = "DESC"
	}
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := fmt.Sprintf(
		`SELECT job_json FROM contract_jobs
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY %s %s
		 OFFSET $2 LIMIT $3`, sortCol, dir)

	rows, err := pool.Query(ctx, query, string(opts.Status), opts.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.JobRecord
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		var job models.JobRecord
		if err := json.Unmarshal(jsonData, &job); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job row: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	tag, err := pool.Exec(ctx, `DELETE FROM contract_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// sortColumn whitelists sortable columns. Anything unrecognized sorts by
// upload time.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "updated_at":
		return "updated_at"
	case "score":
		return "score"
	case "filename":
		return "filename"
	default:
		return "uploaded_at"
	}
}
