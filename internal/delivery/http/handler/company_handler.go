package handler

import (
	"context"
	"net/url"

	"greenleaf/internal/delivery/http/dto"
	"greenleaf/internal/delivery/http/middleware"
	"greenleaf/internal/domain/company"
	"greenleaf/internal/pkg/response"
	"greenleaf/internal/rescore"
	"greenleaf/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompaniesUsecase interface {
	Create(ctx context.Context, c company.Company) (company.Company, error)
	Get(ctx context.Context, key usecase.CompanyKey) (company.Company, error)
	Update(ctx context.Context, ownerID uuid.UUID, key usecase.CompanyKey, patch company.Patch) (company.Company, error)
}

type RescoreUsecase interface {
	RescoreOwned(ctx context.Context, ownerID uuid.UUID, key usecase.CompanyKey) (rescore.Report, error)
}

type CompanyHandler struct {
	uc      CompaniesUsecase
	rescore RescoreUsecase
}

func NewCompanyHandler(uc CompaniesUsecase, rescore RescoreUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc, rescore: rescore}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router, auth, kind fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/:details", h.Get)

	r.Put("/:details", auth, kind, h.Update)
	if h.rescore != nil {
		r.Post("/:details/rescore", auth, kind, h.Rescore)
	}
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.Create(c.Context(), req.Company())
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Created(c, dto.NewCompanyResponse(created))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	key, err := companyKey(c)
	if err != nil {
		return err
	}

	found, err := h.uc.Get(c.Context(), key)
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.OK(c, dto.NewCompanyResponse(found))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	ownerID, err := currentAccount(c)
	if err != nil {
		return err
	}
	key, err := companyKey(c)
	if err != nil {
		return err
	}

	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.Update(c.Context(), ownerID, key, req.Patch())
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.OK(c, dto.NewCompanyResponse(updated))
}

func (h *CompanyHandler) Rescore(c fiber.Ctx) error {
	ownerID, err := currentAccount(c)
	if err != nil {
		return err
	}
	key, err := companyKey(c)
	if err != nil {
		return err
	}

	rep, err := h.rescore.RescoreOwned(c.Context(), ownerID, key)
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.OK(c, dto.NewRescoreResponse(rep))
}

func companyKey(c fiber.Ctx) (usecase.CompanyKey, error) {
	raw, err := url.PathUnescape(c.Params("details"))
	if err != nil {
		return usecase.CompanyKey{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid company key", nil, err)
	}
	key, err := usecase.ParseCompanyKey(raw)
	if err != nil {
		return usecase.CompanyKey{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid company key", nil, err)
	}
	return key, nil
}
