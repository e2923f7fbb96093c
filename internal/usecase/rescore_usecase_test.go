package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"greenleaf/internal/domain/company"
	"greenleaf/internal/domain/job"
	"greenleaf/internal/rescore"

	"github.com/google/uuid"
)

type memLock struct {
	mu      sync.Mutex
	held    map[string]bool
	err     error
	deleted []string
}

func (l *memLock) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *memLock) Delete(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	l.deleted = append(l.deleted, key)
	return nil
}

func newRescoreFixture(locks RunLock) (*Rescore, *fakeJobRepo, company.Company) {
	co := company.Company{ID: uuid.New(), Name: "Acme"}
	jobs := newFakeJobRepo(job.Job{ID: uuid.New(), BusinessName: "Acme", Title: "Ranger", Status: job.StatusActive, GreenScore: 5})
	svc := rescore.NewService(jobs, &fakeScorer{score: 8}, rescore.Options{Workers: 1}, nil)
	return NewRescoreUsecase(NewCompaniesUsecase(newFakeCompanyRepo(co), nil), nil, svc, locks, nil), jobs, co
}

func TestRescore_LockReleasedAfterRun(t *testing.T) {
	locks := &memLock{}
	uc, _, co := newRescoreFixture(locks)

	rep, err := uc.RescoreOwned(context.Background(), co.ID, CompanyKey{ID: co.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Updated != 1 || rep.Changed != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if len(locks.deleted) != 1 || locks.deleted[0] != rescoreLockPrefix+co.ID.String() {
		t.Fatalf("lock not released: %v", locks.deleted)
	}
	if _, err := uc.RescoreCompany(context.Background(), CompanyKey{Name: "Acme"}); err != nil {
		t.Fatalf("second run after release: %v", err)
	}
}

func TestRescore_ConcurrentRunConflicts(t *testing.T) {
	locks := &memLock{}
	uc, jobs, co := newRescoreFixture(locks)
	locks.held = map[string]bool{rescoreLockPrefix + co.ID.String(): true}

	_, err := uc.RescoreCompany(context.Background(), CompanyKey{ID: co.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	for _, j := range jobs.jobs {
		if j.GreenScore != 5 {
			t.Fatalf("job rescored while another run holds the lock: %+v", j)
		}
	}
	if len(locks.deleted) != 0 {
		t.Fatalf("a rejected run must not release the other run's lock")
	}
}

func TestRescore_LockStoreDownRunsUnlocked(t *testing.T) {
	uc, _, co := newRescoreFixture(&memLock{err: errors.New("redis down")})

	rep, err := uc.RescoreCompany(context.Background(), CompanyKey{ID: co.ID})
	if err != nil || rep.Updated != 1 {
		t.Fatalf("expected unlocked run, got %+v %v", rep, err)
	}
}

func TestRescore_OwnedRejectsOtherCompany(t *testing.T) {
	locks := &memLock{}
	uc, _, co := newRescoreFixture(locks)

	if _, err := uc.RescoreOwned(context.Background(), uuid.New(), CompanyKey{ID: co.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(locks.held) != 0 {
		t.Fatalf("lock taken for a forbidden caller")
	}
}
