package rescore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"greenleaf/internal/domain/job"
	"greenleaf/internal/greenscore"
	"greenleaf/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCompany = errors.New("company name is required")

type JobStore interface {
	ListActiveByCompany(ctx context.Context, businessName string) ([]job.Job, error)
	UpdateGreenScore(ctx context.Context, id uuid.UUID, score int) error
}

type Scorer interface {
	Evaluate(ctx context.Context, in greenscore.Input) (greenscore.Result, error)
}

type Failure struct {
	JobID uuid.UUID
	Err   error
}

type Report struct {
	Company  string
	Total    int
	Updated  int
	Changed  int
	Failures []Failure
}

type Options struct {
	Workers int
	RPS     float64
}

// Service recomputes stored green scores for the active jobs of one company.
type Service struct {
	jobs   JobStore
	scorer Scorer
	opts   Options
	logger *zap.Logger
}

func NewService(jobs JobStore, scorer Scorer, opts Options, log *zap.Logger) *Service {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Service{jobs: jobs, scorer: scorer, opts: opts, logger: logger.Named(log, "rescore")}
}

// OnScored is called after each job is stored with its new score.
type OnScored func(j job.Job)

func (s *Service) RescoreCompany(ctx context.Context, businessName string, onScored OnScored) (Report, error) {
	businessName = strings.TrimSpace(businessName)
	if businessName == "" {
		return Report{}, ErrInvalidCompany
	}

	jobs, err := s.jobs.ListActiveByCompany(ctx, businessName)
	if err != nil {
		return Report{}, fmt.Errorf("list jobs: %w", err)
	}
	rep := Report{Company: businessName, Total: len(jobs)}
	if len(jobs) == 0 {
		return rep, nil
	}

	pool := NewWorkerPool(s.opts.Workers, len(jobs))
	pool.SetRateLimit(s.opts.RPS)
	results := pool.Run(ctx)

	var mu sync.Mutex
	for _, j := range jobs {
		pool.Submit(func(ctx context.Context) error {
			res, err := s.scorer.Evaluate(ctx, greenscore.Input{
				BusinessName: j.BusinessName,
				Title:        j.Title,
				Description:  j.Description,
				Location:     j.Location,
			})
			if err == nil {
				err = s.jobs.UpdateGreenScore(ctx, j.ID, res.Score)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failures = append(rep.Failures, Failure{JobID: j.ID, Err: err})
				s.logger.Warn("rescore failed", zap.String("job_id", j.ID.String()), zap.Error(err))
				return err
			}
			rep.Updated++
			if res.Score != j.GreenScore {
				rep.Changed++
			}
			if onScored != nil {
				j.GreenScore = res.Score
				onScored(j)
			}
			return nil
		})
	}
	pool.Close()

	for range results {
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}

	s.logger.Info("company rescored",
		zap.String("company", businessName),
		zap.Int("total", rep.Total),
		zap.Int("updated", rep.Updated),
		zap.Int("changed", rep.Changed),
		zap.Int("failed", len(rep.Failures)),
	)
	return rep, nil
}
