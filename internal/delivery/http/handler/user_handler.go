package handler

import (
	"context"

	"greenleaf/internal/delivery/http/dto"
	"greenleaf/internal/domain/job"
	"greenleaf/internal/domain/user"
	"greenleaf/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UsersUsecase interface {
	Create(ctx context.Context, in user.User) (user.User, error)
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
	Update(ctx context.Context, actorID, id uuid.UUID, patch user.Patch) (user.User, error)
	Recommendations(ctx context.Context, id uuid.UUID) ([]job.Job, error)
}

type UserHandler struct {
	uc UsersUsecase
}

func NewUserHandler(uc UsersUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, auth, kind fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Get("/:id/recommendations", h.Recommendations)

	r.Put("/:id", auth, kind, h.Update)
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req dto.UserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.Create(c.Context(), req.User())
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return response.Created(c, dto.NewUserResponse(created))
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	usr, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return response.OK(c, dto.NewUserResponse(usr))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	actorID, err := currentAccount(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.Update(c.Context(), actorID, id, req.Patch())
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return response.OK(c, dto.NewUserResponse(updated))
}

func (h *UserHandler) Recommendations(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.Recommendations(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return response.OK(c, dto.NewJobResponses(items))
}
