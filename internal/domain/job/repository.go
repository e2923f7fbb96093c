package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	CreateJob(ctx context.Context, j Job) (Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (Job, error)
	UpdateJob(ctx context.Context, j Job) (Job, error)
	UpdateGreenScore(ctx context.Context, id uuid.UUID, score int) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
	SearchJobs(ctx context.Context, f SearchFilter) ([]Job, int, error)
	ListActiveByCompany(ctx context.Context, businessName string) ([]Job, error)
	ListByTitleMatch(ctx context.Context, title string, limit int) ([]Job, error)
	ListJobs(ctx context.Context, businessName string) ([]Job, error)
}
