package dto

import (
	"time"

	"github.com/google/uuid"

	"local-link/internal/usecase"
)

type BookingResponse struct {
	ID               uuid.UUID `json:"id"`
	ProviderID       uuid.UUID `json:"provider_id"`
	ProviderName     string    `json:"provider_name"`
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	HourlyRate       float64   `json:"hourly_rate"`
	CreditValue      int       `json:"credit_value"`
	State            string    `json:"state"`
	Date             *string   `json:"date,omitempty"`
	Method           string    `json:"method,omitempty"`
	SeekerCredits    int       `json:"seeker_credits"`
	CanAffordCredits bool      `json:"can_afford_credits"`
}

func NewBookingResponse(v usecase.BookingView) BookingResponse {
	out := BookingResponse{
		ID:               v.ID,
		ProviderID:       v.ProviderID,
		ProviderName:     v.ProviderName,
		SkillID:          v.SkillID,
		SkillName:        v.SkillName,
		HourlyRate:       v.HourlyRate,
		CreditValue:      v.CreditValue,
		State:            string(v.State),
		Method:           string(v.Method),
		SeekerCredits:    v.SeekerCredits,
		CanAffordCredits: v.CanAffordCredits,
	}
	if !v.Date.IsZero() {
		d := v.Date.UTC().Format(time.RFC3339)
		out.Date = &d
	}
	return out
}
