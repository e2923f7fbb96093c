package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"greenleaf/internal/domain/company"
	"greenleaf/internal/domain/job"
	"greenleaf/internal/greenscore"
	"greenleaf/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type GreenScorer interface {
	Evaluate(ctx context.Context, in greenscore.Input) (greenscore.Result, error)
}

type CompanyReader interface {
	GetCompanyByID(ctx context.Context, id uuid.UUID) (company.Company, error)
}

type JobNotifier interface {
	JobChanged(eventType string, j job.Job)
}

const (
	JobCreated = "job_created"
	JobUpdated = "job_updated"
	JobDeleted = "job_deleted"
)

type CreateJobInput struct {
	Title            string
	Description      string
	Location         string
	Link             *string
	Status           job.Status
	ExpiredAt        *time.Time
	ImpactScore      *int
	EmissionEstimate *float64
}

type JobSearchParams struct {
	Query    string
	Company  string
	Location string
	Limit    int
	Offset   int
}

type JobPage struct {
	Items  []job.Job `json:"items"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type Jobs struct {
	jobs      job.Repository
	companies CompanyReader
	scorer    GreenScorer
	cache     SearchCache
	cacheTTL  time.Duration
	notifier  JobNotifier
	logger    *zap.Logger
}

func NewJobsUsecase(jobs job.Repository, companies CompanyReader, scorer GreenScorer, cache SearchCache, cacheTTL time.Duration, notifier JobNotifier, log *zap.Logger) *Jobs {
	return &Jobs{
		jobs:      jobs,
		companies: companies,
		scorer:    scorer,
		cache:     cache,
		cacheTTL:  cacheTTL,
		notifier:  notifier,
		logger:    logger.Named(log, "jobs"),
	}
}

// Create scores the posting against the caller's company and stores it with that score.
// Nothing is stored when scoring fails; greenscore errors are returned as-is.
func (u *Jobs) Create(ctx context.Context, companyID uuid.UUID, in CreateJobInput) (job.Job, error) {
	if in.Status == "" {
		in.Status = job.StatusActive
	}
	if !in.Status.Valid() || !validImpact(in.ImpactScore) {
		return job.Job{}, ErrInvalidInput
	}

	c, err := u.companies.GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	res, err := u.scorer.Evaluate(ctx, greenscore.Input{
		BusinessName: c.Name,
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
	})
	if err != nil {
		return job.Job{}, err
	}

	created, err := u.jobs.CreateJob(ctx, job.Job{
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Location:         in.Location,
		Link:             in.Link,
		BusinessName:     c.Name,
		Status:           in.Status,
		ExpiredAt:        in.ExpiredAt,
		GreenScore:       res.Score,
		ImpactScore:      in.ImpactScore,
		EmissionEstimate: in.EmissionEstimate,
	})
	if err != nil {
		return job.Job{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u.logger.Info("job created",
		zap.String("job_id", created.ID.String()),
		zap.String("company", c.Name),
		zap.Int("green_score", created.GreenScore),
	)
	u.changed(ctx, JobCreated, created)
	return created, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return j, nil
}

func (u *Jobs) Search(ctx context.Context, params JobSearchParams) (JobPage, error) {
	if params.Limit == 0 {
		params.Limit = defaultSearchLimit
	}
	if params.Limit < 0 || params.Limit > maxSearchLimit || params.Offset < 0 {
		return JobPage{}, ErrInvalidInput
	}

	key := JobsSearchCacheKey(params)
	if u.cache != nil {
		var cached JobPage
		found, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Debug("search cache read failed", zap.Error(err))
		}
		if found {
			return cached, nil
		}
	}

	items, total, err := u.jobs.SearchJobs(ctx, job.SearchFilter{
		Query:    params.Query,
		Company:  params.Company,
		Location: params.Location,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return JobPage{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	page := JobPage{Items: items, Total: total, Limit: params.Limit, Offset: params.Offset}
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, page, u.cacheTTL); err != nil {
			u.logger.Debug("search cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

// Update applies patch to a job owned by the caller's company. A change to the title,
// description or location rescores the job before it is stored.
func (u *Jobs) Update(ctx context.Context, companyID, jobID uuid.UUID, patch job.Patch) (job.Job, error) {
	if patch.IsEmpty() {
		return job.Job{}, ErrInvalidInput
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return job.Job{}, ErrInvalidInput
	}
	if !validImpact(patch.ImpactScore) {
		return job.Job{}, ErrInvalidInput
	}

	_, current, err := u.owned(ctx, companyID, jobID)
	if err != nil {
		return job.Job{}, err
	}

	next := patch.Apply(current)
	if patch.TouchesScoredText() {
		res, err := u.scorer.Evaluate(ctx, greenscore.Input{
			BusinessName: next.BusinessName,
			Title:        next.Title,
			Description:  next.Description,
			Location:     next.Location,
		})
		if err != nil {
			return job.Job{}, err
		}
		next.GreenScore = res.Score
	}

	updated, err := u.jobs.UpdateJob(ctx, next)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u.changed(ctx, JobUpdated, updated)
	return updated, nil
}

func (u *Jobs) Delete(ctx context.Context, companyID, jobID uuid.UUID) error {
	_, current, err := u.owned(ctx, companyID, jobID)
	if err != nil {
		return err
	}
	if err := u.jobs.DeleteJob(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	u.changed(ctx, JobDeleted, current)
	return nil
}

// Export lists every job for a workbook, optionally limited to one company.
func (u *Jobs) Export(ctx context.Context, businessName string) ([]job.Job, error) {
	items, err := u.jobs.ListJobs(ctx, strings.TrimSpace(businessName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return items, nil
}

// Rescored publishes a job whose score was recomputed outside the write path.
func (u *Jobs) Rescored(j job.Job) {
	u.changed(context.Background(), JobUpdated, j)
}

// owned loads the caller's company and the job concurrently and checks ownership.
func (u *Jobs) owned(ctx context.Context, companyID, jobID uuid.UUID) (company.Company, job.Job, error) {
	var (
		c company.Company
		j job.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c, err = u.companies.GetCompanyByID(gctx, companyID)
		if errors.Is(err, company.ErrNotFound) {
			return ErrForbidden
		}
		return err
	})
	g.Go(func() error {
		var err error
		j, err = u.jobs.GetJobByID(gctx, jobID)
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotFound) {
			return company.Company{}, job.Job{}, err
		}
		return company.Company{}, job.Job{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if j.BusinessName != c.Name {
		return company.Company{}, job.Job{}, ErrForbidden
	}
	return c, j, nil
}

func (u *Jobs) changed(ctx context.Context, eventType string, j job.Job) {
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, jobsSearchPrefix+"*"); err != nil {
			u.logger.Warn("search cache invalidation failed", zap.Error(err))
		}
	}
	if u.notifier != nil {
		u.notifier.JobChanged(eventType, j)
	}
}

func validImpact(v *int) bool {
	return v == nil || (*v >= 0 && *v <= 10)
}
