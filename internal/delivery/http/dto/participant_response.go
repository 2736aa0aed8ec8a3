package dto

import (
	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
)

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	HourlyRate  float64   `json:"hourly_rate"`
	CreditValue int       `json:"credit_value"`
	Images      []string  `json:"images,omitempty"`
}

type ParticipantResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Avatar        string          `json:"avatar"`
	Location      string          `json:"location"`
	TrustScore    int             `json:"trust_score"`
	Verified      bool            `json:"verified"`
	Bio           string          `json:"bio,omitempty"`
	Credits       int             `json:"credits"`
	SkillsOffered []SkillResponse `json:"skills_offered"`
	SkillsNeeded  []string        `json:"skills_needed"`
}

func NewParticipantResponse(p catalog.Participant) ParticipantResponse {
	skills := make([]SkillResponse, 0, len(p.SkillsOffered))
	for _, s := range p.SkillsOffered {
		skills = append(skills, SkillResponse{
			ID:          s.ID,
			Name:        s.Name,
			Category:    string(s.Category),
			Description: s.Description,
			HourlyRate:  s.HourlyRate,
			CreditValue: s.CreditValue,
			Images:      s.Images,
		})
	}

	needed := p.SkillsNeeded
	if needed == nil {
		needed = []string{}
	}

	return ParticipantResponse{
		ID:            p.ID,
		Name:          p.Name,
		Avatar:        p.Avatar,
		Location:      p.Location,
		TrustScore:    p.TrustScore,
		Verified:      p.Verified,
		Bio:           p.Bio,
		Credits:       p.Credits,
		SkillsOffered: skills,
		SkillsNeeded:  needed,
	}
}
