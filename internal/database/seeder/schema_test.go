package seeder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"greenleaf/internal/database"
)

type columnRows struct {
	names []string
	i     int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Err() error { return nil }
func (r *columnRows) Next() bool {
	r.i++
	return r.i <= len(r.names)
}
func (r *columnRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.names[r.i-1]
	return nil
}

// columnsDB answers only the information_schema query.
type columnsDB struct {
	database.DB
	columns []string
	err     error
}

func (d columnsDB) Query(context.Context, string, ...any) (database.Rows, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &columnRows{names: d.columns}, nil
}

func TestRequireColumns(t *testing.T) {
	ctx := context.Background()
	db := columnsDB{columns: []string{"id", "name", "esg_score"}}

	if err := RequireColumns(ctx, db, "companies", "id", "name"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	err := RequireColumns(ctx, db, "companies", "id", "b_corp", "industry")
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "b_corp, industry") {
		t.Fatalf("missing columns not listed: %v", err)
	}

	boom := errors.New("connection reset")
	if err := RequireColumns(ctx, columnsDB{err: boom}, "jobs", "id"); !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
	if err := RequireColumns(ctx, db, "", "id"); err == nil {
		t.Fatalf("expected error for empty table")
	}
}
