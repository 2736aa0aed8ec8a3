package handler

import (
	"errors"
	"time"

	"local-link/internal/delivery/http/dto"
	"local-link/internal/delivery/http/middleware"
	"local-link/internal/domain/booking"
	"local-link/internal/pkg/response"
	"local-link/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BookingHandler struct {
	uc usecase.BookingUsecase
}

type startBookingRequest struct {
	ProviderID string `json:"provider_id"`
	SkillID    string `json:"skill_id"`
}

type bookingDateRequest struct {
	Date string `json:"date"`
}

type bookingMethodRequest struct {
	Method string `json:"method"`
}

func NewBookingHandler(uc usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

func (h *BookingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Start)
	r.Put("/:id/date", h.SetDate)
	r.Put("/:id/method", h.SelectMethod)
	r.Post("/:id/advance", h.Advance)
	r.Post("/:id/back", h.Back)
	r.Delete("/:id", h.Cancel)
}

func (h *BookingHandler) Start(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)

	var req startBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid provider id", nil, err)
	}
	skillID, err := uuid.Parse(req.SkillID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	view, err := h.uc.Start(c.Context(), viewerID, providerID, skillID)
	if err != nil {
		return mapBookingError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewBookingResponse(view))
}

func (h *BookingHandler) SetDate(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	bookingID, err := bookingIDParam(c)
	if err != nil {
		return err
	}

	var req bookingDateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Date must be RFC3339", nil, err)
	}

	view, err := h.uc.SetDate(c.Context(), viewerID, bookingID, date)
	if err != nil {
		return mapBookingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBookingResponse(view))
}

func (h *BookingHandler) SelectMethod(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	bookingID, err := bookingIDParam(c)
	if err != nil {
		return err
	}

	var req bookingMethodRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	view, err := h.uc.SelectMethod(c.Context(), viewerID, bookingID, booking.Method(req.Method))
	if err != nil {
		return mapBookingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBookingResponse(view))
}

func (h *BookingHandler) Advance(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	bookingID, err := bookingIDParam(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Advance(c.Context(), viewerID, bookingID)
	if err != nil {
		return mapBookingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBookingResponse(view))
}

func (h *BookingHandler) Back(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	bookingID, err := bookingIDParam(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Back(c.Context(), viewerID, bookingID)
	if err != nil {
		return mapBookingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBookingResponse(view))
}

func (h *BookingHandler) Cancel(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	bookingID, err := bookingIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Cancel(c.Context(), viewerID, bookingID); err != nil {
		return mapBookingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func bookingIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid booking id", nil, err)
	}
	return id, nil
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Booking, provider or skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot book your own skill", nil, err)
	case errors.Is(err, booking.ErrMissingDate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Pick a date before continuing", nil, err)
	case errors.Is(err, booking.ErrMissingMethod):
		return middleware.NewAppError(fiber.StatusBadRequest, "Pick a payment method before confirming", nil, err)
	case errors.Is(err, booking.ErrInvalidMethod):
		return middleware.NewAppError(fiber.StatusBadRequest, "Method must be MONETARY or CREDIT", nil, err)
	case errors.Is(err, booking.ErrInsufficientCredits):
		return middleware.NewAppError(fiber.StatusPaymentRequired, "Not enough credits for this skill", nil, err)
	case errors.Is(err, booking.ErrFinished):
		return middleware.NewAppError(fiber.StatusConflict, "Booking is already confirmed", nil, err)
	case errors.Is(err, booking.ErrWrongState):
		return middleware.NewAppError(fiber.StatusConflict, "Action is not valid in the current step", nil, err)
	case errors.Is(err, booking.ErrSkillNotOffered):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill is not offered by this neighbor", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
