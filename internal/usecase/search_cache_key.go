package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

type candidateSearchCacheKeyInput struct {
	ViewerID   string `json:"viewer_id"`
	Query      string `json:"query"`
	Category   string `json:"category"`
	SmartMatch bool   `json:"smart_match"`
	Revision   uint64 `json:"revision"`
}

// normalizeSearchValue applies exactly the normalization the filter
// applies to the query text. Two queries may share a cache key only when
// the filter cannot tell them apart.
func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CandidateSearchCacheKey embeds the catalog revision so cached candidate
// lists never outlive a catalog mutation: a bumped revision keys a fresh
// entry and the stale one expires on its own TTL.
func CandidateSearchCacheKey(viewerID uuid.UUID, params SearchParams, revision uint64) string {
	in := candidateSearchCacheKeyInput{
		ViewerID:   viewerID.String(),
		Query:      normalizeSearchValue(params.Query),
		Category:   string(params.Category),
		SmartMatch: params.SmartMatch,
		Revision:   revision,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	h := hex.EncodeToString(sum[:])
	return "catalog:search:" + h
}
