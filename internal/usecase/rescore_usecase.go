package usecase

import (
	"context"
	"fmt"
	"time"

	"greenleaf/internal/logger"
	"greenleaf/internal/rescore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	rescoreLockPrefix = "rescore:lock:"
	rescoreLockTTL    = 10 * time.Minute
)

// RunLock is a best-effort, expiring mutual exclusion keyed by string.
type RunLock interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Rescore struct {
	companies *Companies
	jobs      *Jobs
	svc       *rescore.Service
	locks     RunLock
	logger    *zap.Logger
}

func NewRescoreUsecase(companies *Companies, jobs *Jobs, svc *rescore.Service, locks RunLock, log *zap.Logger) *Rescore {
	return &Rescore{companies: companies, jobs: jobs, svc: svc, locks: locks, logger: logger.Named(log, "rescore")}
}

// RescoreOwned recomputes the scores of a company the caller owns.
func (u *Rescore) RescoreOwned(ctx context.Context, ownerID uuid.UUID, key CompanyKey) (rescore.Report, error) {
	c, err := u.companies.Get(ctx, key)
	if err != nil {
		return rescore.Report{}, err
	}
	if c.ID != ownerID {
		return rescore.Report{}, ErrForbidden
	}
	return u.run(ctx, c.ID, c.Name)
}

// RescoreCompany recomputes the scores of any company. Used by operator tooling.
func (u *Rescore) RescoreCompany(ctx context.Context, key CompanyKey) (rescore.Report, error) {
	c, err := u.companies.Get(ctx, key)
	if err != nil {
		return rescore.Report{}, err
	}
	return u.run(ctx, c.ID, c.Name)
}

// run holds a per-company lock for the duration of the rescore; a concurrent run for
// the same company gets ErrConflict. Without a working lock store it runs unlocked.
func (u *Rescore) run(ctx context.Context, companyID uuid.UUID, name string) (rescore.Report, error) {
	release, err := u.lock(ctx, companyID)
	if err != nil {
		return rescore.Report{}, err
	}
	defer release()

	var onScored rescore.OnScored
	if u.jobs != nil {
		onScored = u.jobs.Rescored
	}
	rep, err := u.svc.RescoreCompany(ctx, name, onScored)
	if err != nil {
		return rep, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return rep, nil
}

func (u *Rescore) lock(ctx context.Context, companyID uuid.UUID) (func(), error) {
	if u.locks == nil {
		return func() {}, nil
	}
	key := rescoreLockPrefix + companyID.String()

	ok, err := u.locks.SetIfNotExists(ctx, key, uuid.NewString(), rescoreLockTTL)
	if err != nil {
		u.logger.Warn("rescore lock unavailable, running unlocked", zap.String("company_id", companyID.String()), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, fmt.Errorf("%w: rescore already running", ErrConflict)
	}

	return func() {
		if err := u.locks.Delete(context.WithoutCancel(ctx), key); err != nil {
			u.logger.Warn("rescore lock release failed", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
