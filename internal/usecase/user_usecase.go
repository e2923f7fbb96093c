package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"greenleaf/internal/domain/job"
	"greenleaf/internal/domain/user"

	"github.com/google/uuid"
)

const recommendationLimit = 20

type TitleMatcher interface {
	ListByTitleMatch(ctx context.Context, title string, limit int) ([]job.Job, error)
}

type Users struct {
	users user.Repository
	jobs  TitleMatcher
}

func NewUsersUsecase(users user.Repository, jobs TitleMatcher) *Users {
	return &Users{users: users, jobs: jobs}
}

func (u *Users) Create(ctx context.Context, in user.User) (user.User, error) {
	email, err := normalizeOptionalEmail(in.Email)
	if err != nil {
		return user.User{}, err
	}
	in.Email = email

	created, err := u.users.Create(ctx, in)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrConflict
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return created, nil
}

func (u *Users) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return usr, nil
}

// Update merges patch onto the caller's own record.
func (u *Users) Update(ctx context.Context, actorID, id uuid.UUID, patch user.Patch) (user.User, error) {
	if actorID != id {
		return user.User{}, ErrForbidden
	}
	if patch.IsEmpty() {
		return user.User{}, ErrInvalidInput
	}
	if patch.Email != nil {
		email, err := normalizeOptionalEmail(patch.Email)
		if err != nil {
			return user.User{}, err
		}
		patch.Email = email
	}

	current, err := u.Get(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	updated, err := u.users.Update(ctx, patch.Apply(current))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			return user.User{}, ErrConflict
		case errors.Is(err, user.ErrNotFound):
			return user.User{}, ErrNotFound
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return updated, nil
}

// Recommendations lists active jobs whose title contains the user's target position,
// newest first.
func (u *Users) Recommendations(ctx context.Context, id uuid.UUID) ([]job.Job, error) {
	usr, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr.TargetPosition == nil || strings.TrimSpace(*usr.TargetPosition) == "" {
		return []job.Job{}, nil
	}

	items, err := u.jobs.ListByTitleMatch(ctx, strings.TrimSpace(*usr.TargetPosition), recommendationLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return items, nil
}

func normalizeOptionalEmail(email *string) (*string, error) {
	if email == nil {
		return nil, nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil, nil
	}
	if _, err := mail.ParseAddress(v); err != nil {
		return nil, ErrInvalidInput
	}
	return &v, nil
}
