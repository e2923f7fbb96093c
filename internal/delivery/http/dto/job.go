package dto

import (
	"strings"
	"time"

	"greenleaf/internal/domain/job"
	"greenleaf/internal/usecase"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	Link             *string    `json:"link"`
	BusinessName     string     `json:"business_name"`
	Status           job.Status `json:"status"`
	GreenScore       int        `json:"green_score"`
	ImpactScore      *int       `json:"impact_score"`
	EmissionEstimate *float64   `json:"emission_estimate"`
	ExpiredAt        *time.Time `json:"expired_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Location:         j.Location,
		Link:             j.Link,
		BusinessName:     j.BusinessName,
		Status:           j.Status,
		GreenScore:       j.GreenScore,
		ImpactScore:      j.ImpactScore,
		EmissionEstimate: j.EmissionEstimate,
		ExpiredAt:        j.ExpiredAt,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type JobPageResponse struct {
	Items  []JobResponse `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func NewJobPageResponse(p usecase.JobPage) JobPageResponse {
	return JobPageResponse{Items: NewJobResponses(p.Items), Total: p.Total, Limit: p.Limit, Offset: p.Offset}
}

type CreateJobRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	Link             *string    `json:"link"`
	Status           string     `json:"status"`
	ExpiredAt        *time.Time `json:"expired_at"`
	ImpactScore      *int       `json:"impact_score"`
	EmissionEstimate *float64   `json:"emission_estimate"`
}

func (r CreateJobRequest) Input() usecase.CreateJobInput {
	return usecase.CreateJobInput{
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		Link:             r.Link,
		Status:           job.Status(strings.ToLower(strings.TrimSpace(r.Status))),
		ExpiredAt:        r.ExpiredAt,
		ImpactScore:      r.ImpactScore,
		EmissionEstimate: r.EmissionEstimate,
	}
}

type UpdateJobRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Location         *string    `json:"location"`
	Link             *string    `json:"link"`
	Status           *string    `json:"status"`
	ExpiredAt        *time.Time `json:"expired_at"`
	ImpactScore      *int       `json:"impact_score"`
	EmissionEstimate *float64   `json:"emission_estimate"`
}

func (r UpdateJobRequest) Patch() job.Patch {
	p := job.Patch{
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		Link:             r.Link,
		ExpiredAt:        r.ExpiredAt,
		ImpactScore:      r.ImpactScore,
		EmissionEstimate: r.EmissionEstimate,
	}
	if r.Status != nil {
		s := job.Status(strings.ToLower(strings.TrimSpace(*r.Status)))
		p.Status = &s
	}
	return p
}
