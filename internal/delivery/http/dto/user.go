package dto

import (
	"time"

	"greenleaf/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           *string   `json:"email"`
	Name            *string   `json:"name"`
	CurrentPosition *string   `json:"current_position"`
	TargetPosition  *string   `json:"target_position"`
	Location        *string   `json:"location"`
	Summary         *string   `json:"summary"`
	LinkedIn        *string   `json:"linkedin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		CurrentPosition: u.CurrentPosition,
		TargetPosition:  u.TargetPosition,
		Location:        u.Location,
		Summary:         u.Summary,
		LinkedIn:        u.LinkedIn,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type UserRequest struct {
	Email           *string `json:"email"`
	Name            *string `json:"name"`
	CurrentPosition *string `json:"current_position"`
	TargetPosition  *string `json:"target_position"`
	Location        *string `json:"location"`
	Summary         *string `json:"summary"`
	LinkedIn        *string `json:"linkedin"`
}

func (r UserRequest) Patch() user.Patch {
	return user.Patch{
		Email:           r.Email,
		Name:            r.Name,
		CurrentPosition: r.CurrentPosition,
		TargetPosition:  r.TargetPosition,
		Location:        r.Location,
		Summary:         r.Summary,
		LinkedIn:        r.LinkedIn,
	}
}

func (r UserRequest) User() user.User {
	return r.Patch().Apply(user.User{})
}
