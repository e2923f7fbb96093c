package repository

import (
	"context"
	"strconv"
	"strings"

	"greenleaf/internal/database"
	"greenleaf/internal/domain/job"

	"github.com/google/uuid"
)

const jobColumns = `id, created_at, updated_at, expired_at, title, description, location, link, business_name, status, green_score, impact_score, emission_estimate`

const (
	defaultJobLimit = 20
	maxJobLimit     = 100
)

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) CreateJob(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, expired_at, title, description, location, link, business_name, status, green_score, impact_score, emission_estimate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+jobColumns,
		j.ID, j.ExpiredAt, j.Title, j.Description, j.Location, j.Link, j.BusinessName, string(j.Status),
		j.GreenScore, j.ImpactScore, j.EmissionEstimate,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) UpdateJob(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs
		 SET expired_at = $2, title = $3, description = $4, location = $5, link = $6, status = $7,
		     green_score = $8, impact_score = $9, emission_estimate = $10, updated_at = now()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		j.ID, j.ExpiredAt, j.Title, j.Description, j.Location, j.Link, string(j.Status),
		j.GreenScore, j.ImpactScore, j.EmissionEstimate,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) UpdateGreenScore(ctx context.Context, id uuid.UUID, score int) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET green_score = $2, updated_at = now() WHERE id = $1`, id, score)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

// SearchJobs returns one page of jobs matching f, newest first, plus the total match count.
func (r *PostgresJobRepository) SearchJobs(ctx context.Context, f job.SearchFilter) ([]job.Job, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultJobLimit
	}
	if limit > maxJobLimit {
		limit = maxJobLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := searchWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	q := `SELECT ` + jobColumns + ` FROM jobs` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	out, err := r.queryJobs(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresJobRepository) ListActiveByCompany(ctx context.Context, businessName string) ([]job.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE business_name = $1 AND status = 'active'
		 ORDER BY created_at DESC`,
		businessName,
	)
}

// ListByTitleMatch returns active jobs whose title contains title, case-insensitively.
func (r *PostgresJobRepository) ListByTitleMatch(ctx context.Context, title string, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = defaultJobLimit
	}
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE status = 'active' AND title ILIKE $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		"%"+escapeLike(title)+"%", limit,
	)
}

// ListJobs returns every job of any status, optionally restricted to one company.
func (r *PostgresJobRepository) ListJobs(ctx context.Context, businessName string) ([]job.Job, error) {
	if strings.TrimSpace(businessName) == "" {
		return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY business_name ASC, created_at DESC`)
	}
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE business_name = $1 ORDER BY created_at DESC`,
		businessName,
	)
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func searchWhere(f job.SearchFilter) (string, []any) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		add(`(title ILIKE ? OR description ILIKE ?)`, "%"+escapeLike(q)+"%")
	}
	if c := strings.TrimSpace(f.Company); c != "" {
		add(`business_name = ?`, c)
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		add(`location = ?`, l)
	}
	if f.Status != "" {
		add(`status = ?`, string(f.Status))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var status string
	err := row.Scan(
		&j.ID, &j.CreatedAt, &j.UpdatedAt, &j.ExpiredAt, &j.Title, &j.Description, &j.Location, &j.Link,
		&j.BusinessName, &status, &j.GreenScore, &j.ImpactScore, &j.EmissionEstimate,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}
