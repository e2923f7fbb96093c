package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusFilled  Status = "filled"
	StatusDraft   Status = "draft"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusFilled, StatusDraft:
		return true
	}
	return false
}

type Job struct {
	ID               uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ExpiredAt        *time.Time
	Title            string
	Description      string
	Location         string
	Link             *string
	BusinessName     string
	Status           Status
	GreenScore       int
	ImpactScore      *int
	EmissionEstimate *float64
}

// Patch holds the fields of a partial job update. Nil fields are left untouched.
type Patch struct {
	Title            *string
	Description      *string
	Location         *string
	Link             *string
	Status           *Status
	ExpiredAt        *time.Time
	ImpactScore      *int
	EmissionEstimate *float64
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil && p.Link == nil &&
		p.Status == nil && p.ExpiredAt == nil && p.ImpactScore == nil && p.EmissionEstimate == nil
}

// TouchesScoredText reports whether the patch changes a field the green score reads.
func (p Patch) TouchesScoredText() bool {
	return p.Title != nil || p.Description != nil || p.Location != nil
}

func (p Patch) Apply(j Job) Job {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Link != nil {
		j.Link = p.Link
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.ExpiredAt != nil {
		j.ExpiredAt = p.ExpiredAt
	}
	if p.ImpactScore != nil {
		j.ImpactScore = p.ImpactScore
	}
	if p.EmissionEstimate != nil {
		j.EmissionEstimate = p.EmissionEstimate
	}
	return j
}

type SearchFilter struct {
	Query    string
	Company  string
	Location string
	Status   Status
	Limit    int
	Offset   int
}
