package dto

import (
	"greenleaf/internal/rescore"

	"github.com/google/uuid"
)

type RescoreFailure struct {
	JobID uuid.UUID `json:"job_id"`
	Error string    `json:"error"`
}

type RescoreResponse struct {
	Company  string           `json:"company"`
	Total    int              `json:"total"`
	Updated  int              `json:"updated"`
	Changed  int              `json:"changed"`
	Failed   int              `json:"failed"`
	Failures []RescoreFailure `json:"failures,omitempty"`
}

func NewRescoreResponse(r rescore.Report) RescoreResponse {
	out := RescoreResponse{
		Company: r.Company,
		Total:   r.Total,
		Updated: r.Updated,
		Changed: r.Changed,
		Failed:  len(r.Failures),
	}
	for _, f := range r.Failures {
		out.Failures = append(out.Failures, RescoreFailure{JobID: f.JobID, Error: f.Err.Error()})
	}
	return out
}
