package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID
	Email           *string
	Name            *string
	CurrentPosition *string
	TargetPosition  *string
	Location        *string
	Summary         *string
	LinkedIn        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Patch struct {
	Email           *string
	Name            *string
	CurrentPosition *string
	TargetPosition  *string
	Location        *string
	Summary         *string
	LinkedIn        *string
}

func (p Patch) IsEmpty() bool {
	return p.Email == nil && p.Name == nil && p.CurrentPosition == nil && p.TargetPosition == nil &&
		p.Location == nil && p.Summary == nil && p.LinkedIn == nil
}

func (p Patch) Apply(u User) User {
	if p.Email != nil {
		u.Email = p.Email
	}
	if p.Name != nil {
		u.Name = p.Name
	}
	if p.CurrentPosition != nil {
		u.CurrentPosition = p.CurrentPosition
	}
	if p.TargetPosition != nil {
		u.TargetPosition = p.TargetPosition
	}
	if p.Location != nil {
		u.Location = p.Location
	}
	if p.Summary != nil {
		u.Summary = p.Summary
	}
	if p.LinkedIn != nil {
		u.LinkedIn = p.LinkedIn
	}
	return u
}
