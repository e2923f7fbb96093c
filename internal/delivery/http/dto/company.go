package dto

import (
	"time"

	"greenleaf/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ESGScore     *float64  `json:"esg_score"`
	BCorp        *bool     `json:"b_corp"`
	Industry     *string   `json:"industry"`
	Location     *string   `json:"location"`
	Website      *string   `json:"website"`
	ContactEmail *string   `json:"contact_email"`
	CompanySize  *string   `json:"company_size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ESGScore:     c.ESGScore,
		BCorp:        c.BCorp,
		Industry:     c.Industry,
		Location:     c.Location,
		Website:      c.Website,
		ContactEmail: c.ContactEmail,
		CompanySize:  c.CompanySize,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CompanyRequest is used for both create and update; nil fields are left unset.
type CompanyRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	ESGScore     *float64 `json:"esg_score"`
	BCorp        *bool    `json:"b_corp"`
	Industry     *string  `json:"industry"`
	Location     *string  `json:"location"`
	Website      *string  `json:"website"`
	ContactEmail *string  `json:"contact_email"`
	CompanySize  *string  `json:"company_size"`
}

func (r CompanyRequest) Patch() company.Patch {
	return company.Patch{
		Name:         r.Name,
		Description:  r.Description,
		ESGScore:     r.ESGScore,
		BCorp:        r.BCorp,
		Industry:     r.Industry,
		Location:     r.Location,
		Website:      r.Website,
		ContactEmail: r.ContactEmail,
		CompanySize:  r.CompanySize,
	}
}

func (r CompanyRequest) Company() company.Company {
	return r.Patch().Apply(company.Company{})
}
