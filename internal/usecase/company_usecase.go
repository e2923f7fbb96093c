package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greenleaf/internal/domain/company"
	"greenleaf/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyKey addresses a company either by id or by its unique name.
type CompanyKey struct {
	ID   uuid.UUID
	Name string
}

func (k CompanyKey) String() string {
	if k.ID != uuid.Nil {
		return "id:" + k.ID.String()
	}
	return "name:" + k.Name
}

// ParseCompanyKey accepts "id:<uuid>", "name:<name>" or a bare name.
func ParseCompanyKey(s string) (CompanyKey, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "id:"):
		id, err := uuid.Parse(strings.TrimSpace(strings.TrimPrefix(s, "id:")))
		if err != nil {
			return CompanyKey{}, ErrInvalidInput
		}
		return CompanyKey{ID: id}, nil
	case strings.HasPrefix(s, "name:"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "name:"))
	}
	if s == "" {
		return CompanyKey{}, ErrInvalidInput
	}
	return CompanyKey{Name: s}, nil
}

type Companies struct {
	repo   company.Repository
	logger *zap.Logger
}

func NewCompaniesUsecase(repo company.Repository, log *zap.Logger) *Companies {
	return &Companies{repo: repo, logger: logger.Named(log, "companies")}
}

func (u *Companies) Create(ctx context.Context, c company.Company) (company.Company, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Industry = normalizeIndustry(c.Industry)
	if err := c.Validate(); err != nil {
		return company.Company{}, ErrInvalidInput
	}

	created, err := u.repo.CreateCompany(ctx, c)
	if err != nil {
		if errors.Is(err, company.ErrNameTaken) {
			return company.Company{}, ErrConflict
		}
		return company.Company{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return created, nil
}

func (u *Companies) Get(ctx context.Context, key CompanyKey) (company.Company, error) {
	var (
		c   company.Company
		err error
	)
	if key.ID != uuid.Nil {
		c, err = u.repo.GetCompanyByID(ctx, key.ID)
	} else {
		c, err = u.repo.GetCompanyByName(ctx, key.Name)
	}
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return c, nil
}

// Update merges patch onto the company the caller owns. Stored job scores are left as
// they are; use a rescore to refresh them.
func (u *Companies) Update(ctx context.Context, ownerID uuid.UUID, key CompanyKey, patch company.Patch) (company.Company, error) {
	if patch.IsEmpty() {
		return company.Company{}, ErrInvalidInput
	}

	current, err := u.Get(ctx, key)
	if err != nil {
		return company.Company{}, err
	}
	if current.ID != ownerID {
		return company.Company{}, ErrForbidden
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	patch.Industry = normalizeIndustry(patch.Industry)

	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		return company.Company{}, ErrInvalidInput
	}

	updated, err := u.repo.UpdateCompany(ctx, next)
	if err != nil {
		switch {
		case errors.Is(err, company.ErrNameTaken):
			return company.Company{}, ErrConflict
		case errors.Is(err, company.ErrNotFound):
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if patch.TouchesSustainability() {
		u.logger.Info("company sustainability data changed, stored green scores may be stale",
			zap.String("company_id", updated.ID.String()),
			zap.String("company", updated.Name),
		)
	}
	return updated, nil
}

func normalizeIndustry(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	return &v
}
