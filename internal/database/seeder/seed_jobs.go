package seeder

import (
	"context"
	"fmt"

	"greenleaf/internal/database"
	"greenleaf/internal/greenscore"
)

type Scorer interface {
	Evaluate(ctx context.Context, in greenscore.Input) (greenscore.Result, error)
}

// JobsSeeder inserts demo postings scored by Scorer. A posting whose title already
// exists for its company is skipped.
type JobsSeeder struct {
	Scorer Scorer
}

func (JobsSeeder) Name() string { return "jobs" }

var demoJobs = []greenscore.Input{
	{BusinessName: "Verdant Solar", Title: "Backend Engineer (Go)", Description: "Fully remote role building PV monitoring services.", Location: "remote"},
	{BusinessName: "Verdant Solar", Title: "Installer Team Lead", Description: "Lead rooftop installation crews.", Location: "Berlin, DE"},
	{BusinessName: "Northwind Energy", Title: "Drilling Supervisor", Description: "On-site only", Location: "Houston, US"},
	{BusinessName: "Canopy Learning", Title: "Curriculum Designer", Description: "hybrid schedule, two office days a week.", Location: "Lisbon, PT"},
	{BusinessName: "Harvest Cooperative", Title: "Agronomist", Description: "Field work with member farms; hybrid reporting.", Location: "Nairobi, KE"},
	{BusinessName: "Tidewater Health", Title: "Data Analyst", Description: "Analyse care outcomes. This is a remote position.", Location: "Remote"},
}

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Scorer == nil {
		return fmt.Errorf("jobs seeder: nil scorer")
	}
	if err := RequireColumns(ctx, db, "jobs", "id", "title", "description", "location", "business_name", "status", "green_score"); err != nil {
		return err
	}

	for _, in := range demoJobs {
		var exists bool
		err := db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM jobs WHERE business_name = $1 AND title = $2)`,
			in.BusinessName, in.Title,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		res, err := s.Scorer.Evaluate(ctx, in)
		if err != nil {
			return fmt.Errorf("score %q: %w", in.Title, err)
		}

		_, err = db.Exec(ctx,
			`INSERT INTO jobs (title, description, location, business_name, status, green_score)
			 VALUES ($1, $2, $3, $4, 'active', $5)`,
			in.Title, in.Description, in.Location, in.BusinessName, res.Score,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
