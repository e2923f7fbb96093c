package handler

import (
	"context"

	"greenleaf/internal/delivery/http/dto"
	"greenleaf/internal/domain/job"
	"greenleaf/internal/pkg/response"
	"greenleaf/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsUsecase interface {
	Create(ctx context.Context, companyID uuid.UUID, in usecase.CreateJobInput) (job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	Search(ctx context.Context, params usecase.JobSearchParams) (usecase.JobPage, error)
	Update(ctx context.Context, companyID, jobID uuid.UUID, patch job.Patch) (job.Job, error)
	Delete(ctx context.Context, companyID, jobID uuid.UUID) error
}

type JobsHandler struct {
	uc JobsUsecase
}

func NewJobsHandler(uc JobsUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes mounts the job routes; auth and kind guard the write routes.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth, kind fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.Search)
	r.Get("/:id", h.Get)

	r.Post("/", auth, kind, h.Create)
	r.Put("/:id", auth, kind, h.Update)
	r.Delete("/:id", auth, kind, h.Delete)
}

func (h *JobsHandler) Search(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	page, err := h.uc.Search(c.Context(), usecase.JobSearchParams{
		Query:    c.Query("query"),
		Company:  c.Query("company"),
		Location: c.Query("location"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.OK(c, dto.NewJobPageResponse(page))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.OK(c, dto.NewJobResponse(j))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	companyID, err := currentAccount(c)
	if err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Create(c.Context(), companyID, req.Input())
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Created(c, dto.NewJobResponse(j))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	companyID, err := currentAccount(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Update(c.Context(), companyID, id, req.Patch())
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.OK(c, dto.NewJobResponse(j))
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	companyID, err := currentAccount(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), companyID, id); err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.OK(c, fiber.Map{"message": "Job deleted"})
}
