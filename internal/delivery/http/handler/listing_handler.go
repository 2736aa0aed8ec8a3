package handler

import (
	"errors"

	"local-link/internal/delivery/http/dto"
	"local-link/internal/delivery/http/middleware"
	"local-link/internal/domain/catalog"
	"local-link/internal/domain/listing"
	"local-link/internal/pkg/response"
	"local-link/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ListingHandler struct {
	uc usecase.ListingUsecase
}

type createListingRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rate        string `json:"rate"`
	CreditValue string `json:"credit_value"`
}

func NewListingHandler(uc usecase.ListingUsecase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

func (h *ListingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
}

func (h *ListingHandler) Create(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)

	var req createListingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	card, err := h.uc.CreateListing(c.Context(), viewerID, usecase.ListingInput{
		Type:        listing.Type(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Category:    catalog.Category(req.Category),
		Rate:        req.Rate,
		CreditValue: req.CreditValue,
	})
	if err != nil {
		return mapListingError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewParticipantResponse(card))
}

func mapListingError(err error) error {
	switch {
	case errors.Is(err, listing.ErrInvalidListing):
		return middleware.NewAppError(fiber.StatusBadRequest, "Title and description are required", nil, err)
	case errors.Is(err, listing.ErrInvalidCategory):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown skill category", nil, err)
	case errors.Is(err, listing.ErrInvalidType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Listing type must be OFFER or REQUEST", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
