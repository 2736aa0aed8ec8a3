package handler

import (
	"errors"

	"local-link/internal/delivery/http/dto"
	"local-link/internal/delivery/http/middleware"
	"local-link/internal/pkg/response"
	"local-link/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.ProfileUsecase
}

type updateProfileRequest struct {
	Name         *string  `json:"name"`
	Location     *string  `json:"location"`
	Bio          *string  `json:"bio"`
	Avatar       *string  `json:"avatar"`
	SkillsNeeded []string `json:"skills_needed"`
}

func NewUserHandler(uc usecase.ProfileUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Me)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)

	p, err := h.uc.GetProfile(c.Context(), viewerID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewParticipantResponse(p))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), viewerID, usecase.UpdateProfileInput{
		Name:         req.Name,
		Location:     req.Location,
		Bio:          req.Bio,
		Avatar:       req.Avatar,
		SkillsNeeded: req.SkillsNeeded,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewParticipantResponse(p))
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Name cannot be empty", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
