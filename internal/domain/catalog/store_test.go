package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func storeFixture() (*Store, Participant, Participant) {
	a := Participant{ID: uuid.New(), Name: "Sarah Chen", Credits: 12}
	b := Participant{ID: uuid.New(), Name: "Marcus Johnson", Credits: 5}
	return NewStore([]Participant{a, b}), a, b
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s, a, _ := storeFixture()

	snap := s.Snapshot()
	snap[0].Name = "mutated"
	snap[0].SkillsNeeded = append(snap[0].SkillsNeeded, "x")

	got, err := s.Get(a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Sarah Chen" || len(got.SkillsNeeded) != 0 {
		t.Fatalf("snapshot mutation leaked into store")
	}
}

func TestStore_PrependCardGoesFirst(t *testing.T) {
	s, _, _ := storeFixture()
	rev := s.Revision()

	card := Participant{ID: uuid.New(), Name: "Alex Design (Seeking)", SkillsNeeded: []string{"Need car jumpstart"}}
	if err := s.PrependCard(card); err != nil {
		t.Fatalf("prepend: %v", err)
	}

	snap := s.Snapshot()
	if snap[0].ID != card.ID {
		t.Fatalf("new card must be at the front of the catalog")
	}
	if s.Revision() != rev+1 {
		t.Fatalf("mutation must bump the revision")
	}
	if err := s.PrependCard(card); err == nil {
		t.Fatalf("duplicate id must be rejected")
	}
}

func TestStore_UpsertUpdatesInPlace(t *testing.T) {
	s, a, _ := storeFixture()

	a.Credits = 99
	s.Upsert(a)

	got, _ := s.Get(a.ID)
	if got.Credits != 99 {
		t.Fatalf("expected updated credits, got %d", got.Credits)
	}
	if s.Len() != 2 {
		t.Fatalf("upsert of existing participant must not grow the catalog")
	}

	viewer := Participant{ID: uuid.New(), Name: "New Neighbor"}
	s.Upsert(viewer)
	if s.Len() != 3 {
		t.Fatalf("upsert of new participant must append")
	}
	snap := s.Snapshot()
	if snap[len(snap)-1].ID != viewer.ID {
		t.Fatalf("new participants join at the back of the catalog")
	}
}

func TestStore_TransferCredits(t *testing.T) {
	s, a, b := storeFixture() // a: 12, b: 5

	if err := s.TransferCredits(b.ID, a.ID, 6); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	gotB, _ := s.Get(b.ID)
	if gotB.Credits != 5 {
		t.Fatalf("failed transfer must not touch balances")
	}

	// Exact balance spends down to zero.
	if err := s.TransferCredits(b.ID, a.ID, 5); err != nil {
		t.Fatalf("exact-balance transfer: %v", err)
	}
	gotA, _ := s.Get(a.ID)
	gotB, _ = s.Get(b.ID)
	if gotA.Credits != 17 || gotB.Credits != 0 {
		t.Fatalf("unexpected balances after transfer: %d, %d", gotA.Credits, gotB.Credits)
	}

	if err := s.TransferCredits(a.ID, b.ID, 0); err == nil {
		t.Fatalf("non-positive amount must be rejected")
	}
	if err := s.TransferCredits(uuid.New(), b.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown participant: expected ErrNotFound, got %v", err)
	}
}

func TestStore_AddOfferAndNeed(t *testing.T) {
	s, a, _ := storeFixture()

	if err := s.AddOffer(a.ID, Skill{ID: uuid.New(), Name: "Gardening", Category: CategoryHomeRepair, CreditValue: 1}); err != nil {
		t.Fatalf("add offer: %v", err)
	}
	if err := s.AddNeed(a.ID, "Plumbing"); err != nil {
		t.Fatalf("add need: %v", err)
	}

	got, _ := s.Get(a.ID)
	if len(got.SkillsOffered) != 1 || len(got.SkillsNeeded) != 1 {
		t.Fatalf("expected grown skill sets, got %d offered / %d needed",
			len(got.SkillsOffered), len(got.SkillsNeeded))
	}

	if err := s.AddNeed(uuid.New(), "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
