package seeder

import (
	"context"
	"fmt"

	"greenleaf/internal/database"
)

type CompaniesSeeder struct{}

func (CompaniesSeeder) Name() string { return "companies" }

type demoCompany struct {
	Name     string
	ESG      *float64
	BCorp    *bool
	Industry *string
	Location string
	Size     string
}

func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }
func str(v string) *string   { return &v }

var demoCompanies = []demoCompany{
	{Name: "Verdant Solar", ESG: f64(82), BCorp: boolp(true), Industry: str("technology"), Location: "Berlin, DE", Size: "medium"},
	{Name: "Northwind Energy", ESG: f64(41), BCorp: boolp(false), Industry: str("energy"), Location: "Houston, US", Size: "large"},
	{Name: "Canopy Learning", Location: "Lisbon, PT", Size: "small"},
	{Name: "Harvest Cooperative", ESG: f64(63), Industry: str("agriculture"), Location: "Nairobi, KE", Size: "medium"},
	{Name: "Tidewater Health", ESG: f64(74), BCorp: boolp(true), Industry: str("healthcare"), Location: "Remote", Size: "small"},
}

func (CompaniesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "companies", "id", "name", "esg_score", "b_corp", "industry", "location", "company_size"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range demoCompanies {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO companies (name, esg_score, b_corp, industry, location, company_size)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (name) DO NOTHING`,
			it.Name, it.ESG, it.BCorp, it.Industry, it.Location, it.Size,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
