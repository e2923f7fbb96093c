package dto

import "greenleaf/internal/greenscore"

type EvaluateRequest struct {
	BusinessName      string `json:"businessName"`
	BusinessNameSnake string `json:"business_name"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Location          string `json:"location"`
}

func (r EvaluateRequest) Input() greenscore.Input {
	name := r.BusinessName
	if name == "" {
		name = r.BusinessNameSnake
	}
	return greenscore.Input{
		BusinessName: name,
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
	}
}

type EvaluateResponse struct {
	Score     int                   `json:"score"`
	Breakdown *greenscore.Breakdown `json:"breakdown,omitempty"`
}
