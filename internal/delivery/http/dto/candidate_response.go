package dto

import "local-link/internal/domain/matching"

type CandidateResponse struct {
	ParticipantResponse
	MutualMatch bool `json:"mutual_match"`
}

func NewCandidateResponses(candidates []matching.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, CandidateResponse{
			ParticipantResponse: NewParticipantResponse(c.Participant),
			MutualMatch:         c.MutualMatch,
		})
	}
	return out
}
