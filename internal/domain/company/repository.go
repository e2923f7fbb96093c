package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("company not found")
	ErrNameTaken = errors.New("company name already taken")
	ErrInvalid   = errors.New("invalid company")
)

type Repository interface {
	CreateCompany(ctx context.Context, c Company) (Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetCompanyByName(ctx context.Context, name string) (Company, error)
	UpdateCompany(ctx context.Context, c Company) (Company, error)
}
