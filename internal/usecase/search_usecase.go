package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
	"local-link/internal/domain/matching"
)

type SearchParams struct {
	Query      string
	Category   catalog.Category
	SmartMatch bool
}

type SearchUsecase interface {
	SearchCandidates(ctx context.Context, viewerID uuid.UUID, params SearchParams) ([]matching.Candidate, error)
}

type Search struct {
	store  *catalog.Store
	cache  SearchCache
	ttl    time.Duration
	logger *log.Logger
}

func NewSearchUsecase(store *catalog.Store, cache SearchCache, ttl time.Duration, logger *log.Logger) *Search {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Search{store: store, cache: cache, ttl: ttl, logger: logger}
}

// SearchCandidates runs the match filter over a catalog snapshot for the
// given viewer. A zero viewer id means an anonymous browse: smart match is
// inactive and nobody is excluded. Results are cached per (viewer, params,
// catalog revision); cache failures degrade to recomputation.
func (u *Search) SearchCandidates(ctx context.Context, viewerID uuid.UUID, params SearchParams) ([]matching.Candidate, error) {
	if params.Category != "" && !catalog.IsValidCategory(params.Category) {
		return nil, ErrInvalidInput
	}

	var viewer *catalog.Participant
	if viewerID != uuid.Nil {
		v, err := u.store.Get(viewerID)
		if err != nil {
			return nil, ErrUnauthorized
		}
		viewer = &v
	}

	key := CandidateSearchCacheKey(viewerID, params, u.store.Revision())
	if u.cache != nil {
		var cached []matching.Candidate
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	result := matching.Filter(u.store.Snapshot(), viewer, matching.Query{
		Text:       params.Query,
		Category:   params.Category,
		SmartMatch: params.SmartMatch,
	})

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, result, u.ttl); err != nil && u.logger != nil {
			u.logger.Printf("search cache write failed | key=%s err=%v", key, err)
		}
	}

	return result, nil
}
