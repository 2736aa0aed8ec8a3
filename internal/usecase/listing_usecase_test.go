package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
	"local-link/internal/domain/listing"
	"local-link/internal/repository"
)

func listingFixture() (*catalog.Store, catalog.Participant) {
	viewer := catalog.Participant{
		ID:      uuid.New(),
		Name:    "Alex Design",
		Credits: 8,
	}
	other := catalog.Participant{ID: uuid.New(), Name: "Sarah Chen"}
	store := catalog.NewStore([]catalog.Participant{other, viewer})
	return store, viewer
}

func TestCreateListing_Guards(t *testing.T) {
	store, viewer := listingFixture()
	uc := NewListingUsecase(store, repository.NewMemoryCatalogRepository(nil), nil, nil)
	ctx := context.Background()

	if _, err := uc.CreateListing(ctx, uuid.Nil, ListingInput{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	_, err := uc.CreateListing(ctx, viewer.ID, ListingInput{
		Type:     "SWAP",
		Title:    "Lawn mowing",
		Category: catalog.CategoryHomeRepair,
	})
	if !errors.Is(err, listing.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	_, err = uc.CreateListing(ctx, viewer.ID, ListingInput{
		Type:     listing.TypeOffer,
		Title:    "   ",
		Category: catalog.CategoryHomeRepair,
	})
	if !errors.Is(err, listing.ErrInvalidListing) {
		t.Fatalf("expected ErrInvalidListing, got %v", err)
	}
}

func TestCreateListing_OfferPrependsCardAndGrowsProfile(t *testing.T) {
	store, viewer := listingFixture()
	var got ListingCreatedEvent
	uc := NewListingUsecase(store, repository.NewMemoryCatalogRepository(nil), func(ev ListingCreatedEvent) { got = ev }, nil)

	before := store.Len()
	card, err := uc.CreateListing(context.Background(), viewer.ID, ListingInput{
		Type:        listing.TypeOffer,
		Title:       "Guitar Lessons",
		Description: "Acoustic basics for beginners",
		Category:    catalog.CategoryEducation,
		Rate:        "20",
		CreditValue: "2",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	snap := store.Snapshot()
	if len(snap) != before+1 {
		t.Fatalf("expected catalog to grow by one, got %d", len(snap))
	}
	if snap[0].ID != card.ID {
		t.Fatalf("expected new card at the front of the catalog")
	}
	if len(card.SkillsOffered) != 1 || card.SkillsOffered[0].Name != "Guitar Lessons" {
		t.Fatalf("unexpected card skills: %+v", card.SkillsOffered)
	}
	if card.SkillsOffered[0].HourlyRate != 20 || card.SkillsOffered[0].CreditValue != 2 {
		t.Fatalf("unexpected card numbers: %+v", card.SkillsOffered[0])
	}

	// The viewer's own profile carries the new skill too.
	me, err := store.Get(viewer.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	found := false
	for _, s := range me.SkillsOffered {
		if s.Name == "Guitar Lessons" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the offer folded into the viewer profile")
	}

	if got.Type != listing.TypeOffer || got.Title != "Guitar Lessons" || got.Neighbor != "Alex Design" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestCreateListing_RequestCard(t *testing.T) {
	store, viewer := listingFixture()
	uc := NewListingUsecase(store, repository.NewMemoryCatalogRepository(nil), nil, nil)

	card, err := uc.CreateListing(context.Background(), viewer.ID, ListingInput{
		Type:        listing.TypeRequest,
		Title:       "Need car jumpstart",
		Description: "Dead battery on Oak Street",
		Category:    catalog.CategoryHomeRepair,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if card.Name != "Alex Design (Seeking)" {
		t.Fatalf("unexpected card name %q", card.Name)
	}
	if len(card.SkillsOffered) != 0 {
		t.Fatalf("request card must offer nothing")
	}
	if len(card.SkillsNeeded) != 1 || card.SkillsNeeded[0] != "Need car jumpstart" {
		t.Fatalf("unexpected needs: %+v", card.SkillsNeeded)
	}

	me, _ := store.Get(viewer.ID)
	found := false
	for _, n := range me.SkillsNeeded {
		if n == "Need car jumpstart" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the need folded into the viewer profile")
	}
}

type failingCatalogRepo struct {
	*repository.MemoryCatalogRepository
	err error
}

func (r *failingCatalogRepo) Insert(context.Context, catalog.Participant, bool) error {
	return r.err
}

func (r *failingCatalogRepo) Update(context.Context, catalog.Participant) error {
	return r.err
}

func TestCreateListing_PersistenceFailureKeepsListing(t *testing.T) {
	store, viewer := listingFixture()
	repo := &failingCatalogRepo{
		MemoryCatalogRepository: repository.NewMemoryCatalogRepository(nil),
		err:                     errors.New("database gone"),
	}
	var got ListingCreatedEvent
	uc := NewListingUsecase(store, repo, func(ev ListingCreatedEvent) { got = ev }, nil)

	// The in-memory catalog is authoritative: a failed write-through must
	// not reject the listing the neighborhood can already see.
	card, err := uc.CreateListing(context.Background(), viewer.ID, ListingInput{
		Type:        listing.TypeOffer,
		Title:       "Guitar Lessons",
		Description: "Acoustic basics",
		Category:    catalog.CategoryEducation,
		Rate:        "20",
		CreditValue: "2",
	})
	if err != nil {
		t.Fatalf("expected listing to stand despite persistence failure, got %v", err)
	}
	if snap := store.Snapshot(); snap[0].ID != card.ID {
		t.Fatalf("expected new card at the front of the catalog")
	}
	if got.Title != "Guitar Lessons" {
		t.Fatalf("expected creation event despite persistence failure, got %+v", got)
	}
}

func TestCreateListing_NumericDefaults(t *testing.T) {
	store, viewer := listingFixture()
	uc := NewListingUsecase(store, repository.NewMemoryCatalogRepository(nil), nil, nil)

	card, err := uc.CreateListing(context.Background(), viewer.ID, ListingInput{
		Type:        listing.TypeOffer,
		Title:       "Dog walking",
		Description: "Weekday evenings",
		Category:    catalog.CategoryWellness,
		Rate:        "free",
		CreditValue: "lots",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if card.SkillsOffered[0].HourlyRate != 0 {
		t.Fatalf("expected rate fallback 0, got %v", card.SkillsOffered[0].HourlyRate)
	}
	if card.SkillsOffered[0].CreditValue != 1 {
		t.Fatalf("expected credit value fallback 1, got %d", card.SkillsOffered[0].CreditValue)
	}
}
