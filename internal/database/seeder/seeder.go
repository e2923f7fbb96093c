package seeder

import (
	"context"

	"greenleaf/internal/database"
)

// Seeder inserts reference data. Run must be safe to repeat on a seeded database.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
