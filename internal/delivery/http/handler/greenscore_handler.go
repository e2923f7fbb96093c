package handler

import (
	"context"

	"greenleaf/internal/delivery/http/dto"
	"greenleaf/internal/greenscore"

	"github.com/gofiber/fiber/v3"
)

type GreenScoreEvaluator interface {
	Evaluate(ctx context.Context, in greenscore.Input) (greenscore.Result, error)
}

type GreenScoreHandler struct {
	evaluator GreenScoreEvaluator
}

func NewGreenScoreHandler(evaluator GreenScoreEvaluator) *GreenScoreHandler {
	return &GreenScoreHandler{evaluator: evaluator}
}

func (h *GreenScoreHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/evaluate", h.Evaluate)
}

// Evaluate answers with the bare {score, breakdown} object rather than the envelope.
func (h *GreenScoreHandler) Evaluate(c fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.evaluator.Evaluate(c.Context(), req.Input())
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}

	b := res.Breakdown
	return c.Status(fiber.StatusOK).JSON(dto.EvaluateResponse{Score: res.Score, Breakdown: &b})
}
