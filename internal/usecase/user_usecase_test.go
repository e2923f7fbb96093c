package usecase

import (
	"context"
	"errors"
	"testing"

	"greenleaf/internal/domain/job"
	"greenleaf/internal/domain/user"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users map[uuid.UUID]user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range r.users {
		if u.Email != nil && existing.Email != nil && *existing.Email == *u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	if r.users == nil {
		r.users = map[uuid.UUID]user.User{}
	}
	u.ID = uuid.New()
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	r.users[u.ID] = u
	return u, nil
}

func TestUsersCreate_NormalizesEmail(t *testing.T) {
	uc := NewUsersUsecase(&fakeUserRepo{}, newFakeJobRepo())

	got, err := uc.Create(context.Background(), user.User{Email: ptr("  Ann@Example.COM ")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if *got.Email != "ann@example.com" {
		t.Fatalf("email = %q", *got.Email)
	}
	if _, err := uc.Create(context.Background(), user.User{Email: ptr("ann@example.com")}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := uc.Create(context.Background(), user.User{Email: ptr("not an email")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUsersUpdate_OnlySelf(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := NewUsersUsecase(repo, newFakeJobRepo())
	u, _ := uc.Create(context.Background(), user.User{})

	if _, err := uc.Update(context.Background(), uuid.New(), u.ID, user.Patch{Name: ptr("x")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, err := uc.Update(context.Background(), u.ID, u.ID, user.Patch{TargetPosition: ptr("Solar Engineer")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if *got.TargetPosition != "Solar Engineer" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUsersRecommendations(t *testing.T) {
	jobs := newFakeJobRepo(
		job.Job{ID: uuid.New(), Title: "Senior Solar Engineer", Status: job.StatusActive},
		job.Job{ID: uuid.New(), Title: "Accountant", Status: job.StatusActive},
	)
	repo := &fakeUserRepo{}
	uc := NewUsersUsecase(repo, jobs)

	withTarget, _ := uc.Create(context.Background(), user.User{TargetPosition: ptr(" solar engineer ")})
	got, err := uc.Recommendations(context.Background(), withTarget.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Senior Solar Engineer" {
		t.Fatalf("unexpected recommendations: %+v", got)
	}

	noTarget, _ := uc.Create(context.Background(), user.User{})
	got, err = uc.Recommendations(context.Background(), noTarget.ID)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v, %v", got, err)
	}

	if _, err := uc.Recommendations(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
