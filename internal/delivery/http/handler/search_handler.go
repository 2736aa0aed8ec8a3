package handler

import (
	"errors"
	"strconv"

	"local-link/internal/delivery/http/dto"
	"local-link/internal/delivery/http/middleware"
	"local-link/internal/domain/catalog"
	"local-link/internal/pkg/response"
	"local-link/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	uc usecase.SearchUsecase
}

func NewSearchHandler(uc usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/search", h.Search)
}

// Search runs the candidate filter for the signed-in viewer (or an
// anonymous browse when no token was presented).
func (h *SearchHandler) Search(c fiber.Ctx) error {
	smart := false
	if raw := c.Query("smart"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid smart flag", nil, err)
		}
		smart = v
	}

	params := usecase.SearchParams{
		Query:      c.Query("q"),
		Category:   catalog.Category(c.Query("category")),
		SmartMatch: smart,
	}

	candidates, err := h.uc.SearchCandidates(c.Context(), middleware.ViewerID(c), params)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Unknown category", nil, err)
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateResponses(candidates))
}
