package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
	"local-link/internal/domain/listing"
	"local-link/internal/repository"
)

// ListingInput is the raw intake form. Rate and CreditValue stay strings
// here: unparseable values fall back to their defaults instead of failing
// the listing.
type ListingInput struct {
	Type        listing.Type
	Title       string
	Description string
	Category    catalog.Category
	Rate        string
	CreditValue string
}

// ListingCreatedEvent announces a new listing to the neighborhood feed.
type ListingCreatedEvent struct {
	Type     listing.Type
	Title    string
	Neighbor string
}

type ListingUsecase interface {
	CreateListing(ctx context.Context, viewerID uuid.UUID, in ListingInput) (catalog.Participant, error)
}

type Listing struct {
	store     *catalog.Store
	repo      repository.CatalogRepository
	onCreated func(ListingCreatedEvent)
	logger    *log.Logger
}

func NewListingUsecase(store *catalog.Store, repo repository.CatalogRepository, onCreated func(ListingCreatedEvent), logger *log.Logger) *Listing {
	return &Listing{store: store, repo: repo, onCreated: onCreated, logger: logger}
}

// CreateListing validates the intake form, prepends the listing card to the
// catalog and folds the new skill or need into the viewer's own profile.
// The returned participant is the card other neighbors will see.
func (u *Listing) CreateListing(ctx context.Context, viewerID uuid.UUID, in ListingInput) (catalog.Participant, error) {
	if viewerID == uuid.Nil {
		return catalog.Participant{}, ErrUnauthorized
	}
	viewer, err := u.store.Get(viewerID)
	if err != nil {
		return catalog.Participant{}, ErrUnauthorized
	}

	var li listing.Listing
	switch in.Type {
	case listing.TypeOffer:
		li, err = listing.NewOffer(in.Title, in.Description, in.Category, in.Rate, in.CreditValue)
	case listing.TypeRequest:
		li, err = listing.NewRequest(in.Title, in.Description, in.Category)
	default:
		return catalog.Participant{}, listing.ErrInvalidType
	}
	if err != nil {
		return catalog.Participant{}, err
	}

	card := li.Card(viewer)
	if err := u.store.PrependCard(card); err != nil {
		return catalog.Participant{}, ErrInternal
	}

	li.ApplyTo(&viewer)
	u.store.Upsert(viewer)

	// The in-memory catalog is authoritative; a failed write-through is
	// logged and the listing stands, same as settlement persistence.
	if u.repo != nil {
		if err := u.repo.Insert(ctx, card, true); err != nil {
			u.logPersist("insert card", err)
		}
		if err := u.repo.Update(ctx, viewer); err != nil {
			// The viewer may not exist yet in a freshly attached store.
			if errors.Is(err, catalog.ErrNotFound) {
				err = u.repo.Insert(ctx, viewer, false)
			}
			if err != nil {
				u.logPersist("update viewer", err)
			}
		}
	}

	if u.onCreated != nil {
		u.onCreated(ListingCreatedEvent{Type: li.Type(), Title: in.Title, Neighbor: viewer.Name})
	}

	return card, nil
}

func (u *Listing) logPersist(op string, err error) {
	if u.logger != nil {
		u.logger.Printf("listing persistence failed | op=%s err=%v", op, err)
	}
}
