package handler

import (
	"errors"

	"greenleaf/internal/delivery/http/middleware"
	"greenleaf/internal/greenscore"
	"greenleaf/internal/pkg/response"
	"greenleaf/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError turns usecase and greenscore sentinels into AppErrors. notFound is the
// message for ErrNotFound.
func mapUsecaseError(err error, notFound string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, greenscore.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, greenscore.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)
	case errors.Is(err, greenscore.ErrDependency):
		return middleware.NewExposedError(fiber.StatusInternalServerError, err.Error(), err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, notFound, nil, err)
	case errors.Is(err, usecase.ErrAccountKindConflict):
		return middleware.NewAppError(fiber.StatusForbidden, "Identity is linked to a different account kind", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Conflict", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
