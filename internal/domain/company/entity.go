package company

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	IndustryAgriculture    = "agriculture"
	IndustryManufacturing  = "manufacturing"
	IndustryEnergy         = "energy"
	IndustryTransportation = "transportation"
	IndustryTechnology     = "technology"
	IndustryHealthcare     = "healthcare"
	IndustryRetail         = "retail"
	IndustryFinancial      = "financial"
	IndustryOther          = "other"
)

const (
	SizeMicro  = "micro"
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

type Company struct {
	ID           uuid.UUID
	Name         string
	Description  *string
	ESGScore     *float64
	BCorp        *bool
	Industry     *string
	Location     *string
	Website      *string
	ContactEmail *string
	CompanySize  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Patch holds the fields of a partial company update. Nil fields are left untouched.
type Patch struct {
	Name         *string
	Description  *string
	ESGScore     *float64
	BCorp        *bool
	Industry     *string
	Location     *string
	Website      *string
	ContactEmail *string
	CompanySize  *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ESGScore == nil && p.BCorp == nil &&
		p.Industry == nil && p.Location == nil && p.Website == nil && p.ContactEmail == nil &&
		p.CompanySize == nil
}

// TouchesSustainability reports whether the patch changes an attribute the green score reads.
func (p Patch) TouchesSustainability() bool {
	return p.ESGScore != nil || p.BCorp != nil || p.Industry != nil
}

func (p Patch) Apply(c Company) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.ESGScore != nil {
		c.ESGScore = p.ESGScore
	}
	if p.BCorp != nil {
		c.BCorp = p.BCorp
	}
	if p.Industry != nil {
		c.Industry = p.Industry
	}
	if p.Location != nil {
		c.Location = p.Location
	}
	if p.Website != nil {
		c.Website = p.Website
	}
	if p.ContactEmail != nil {
		c.ContactEmail = p.ContactEmail
	}
	if p.CompanySize != nil {
		c.CompanySize = p.CompanySize
	}
	return c
}

func ValidIndustry(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case IndustryAgriculture, IndustryManufacturing, IndustryEnergy, IndustryTransportation,
		IndustryTechnology, IndustryHealthcare, IndustryRetail, IndustryFinancial, IndustryOther:
		return true
	}
	return false
}

func ValidSize(s string) bool {
	switch s {
	case SizeMicro, SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Validate checks the attribute ranges the store enforces.
func (c Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalid
	}
	if c.ESGScore != nil && (*c.ESGScore < 0 || *c.ESGScore > 100) {
		return ErrInvalid
	}
	if c.Industry != nil && *c.Industry != "" && !ValidIndustry(*c.Industry) {
		return ErrInvalid
	}
	if c.CompanySize != nil && *c.CompanySize != "" && !ValidSize(*c.CompanySize) {
		return ErrInvalid
	}
	return nil
}
