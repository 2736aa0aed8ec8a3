package repository

import (
	"context"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
)

// CatalogRepository loads the participant catalog at startup and persists
// mutations write-through. The engine itself only ever talks to the
// in-memory catalog.Store; this is the durability seam behind it.
type CatalogRepository interface {
	// LoadAll returns every participant in catalog order.
	LoadAll(ctx context.Context) ([]catalog.Participant, error)
	// Insert stores a new participant; front places listing cards at the
	// head of the catalog order.
	Insert(ctx context.Context, p catalog.Participant, front bool) error
	// Update rewrites an existing participant record.
	Update(ctx context.Context, p catalog.Participant) error
	// SetCredits rewrites the credit balances for the given participants
	// atomically. Both wallets of a settlement move or neither does.
	SetCredits(ctx context.Context, balances map[uuid.UUID]int) error
}

// MemoryCatalogRepository serves a fixed seed and forgets writes. Used
// when no database is configured, mirroring the demo-neighborhood mode of
// the original application.
type MemoryCatalogRepository struct {
	seed []catalog.Participant
}

func NewMemoryCatalogRepository(seed []catalog.Participant) *MemoryCatalogRepository {
	return &MemoryCatalogRepository{seed: seed}
}

func (r *MemoryCatalogRepository) LoadAll(context.Context) ([]catalog.Participant, error) {
	out := make([]catalog.Participant, 0, len(r.seed))
	for _, p := range r.seed {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *MemoryCatalogRepository) Insert(context.Context, catalog.Participant, bool) error {
	return nil
}

func (r *MemoryCatalogRepository) Update(context.Context, catalog.Participant) error {
	return nil
}

func (r *MemoryCatalogRepository) SetCredits(context.Context, map[uuid.UUID]int) error {
	return nil
}
