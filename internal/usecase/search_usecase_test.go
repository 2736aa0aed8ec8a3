package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
)

type mockSearchCache struct {
	store    map[string][]byte
	getErr   error
	setErr   error
	gets     int
	sets     int
	lastTTL  time.Duration
	lastKeys []string
}

func newMockSearchCache() *mockSearchCache {
	return &mockSearchCache{store: map[string][]byte{}}
}

func (m *mockSearchCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.gets++
	m.lastKeys = append(m.lastKeys, key)
	if m.getErr != nil {
		return false, m.getErr
	}
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockSearchCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	m.sets++
	m.lastTTL = ttl
	if m.setErr != nil {
		return m.setErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func searchFixture() (*catalog.Store, catalog.Participant) {
	viewer := catalog.Participant{
		ID:   uuid.New(),
		Name: "Alex Design",
		SkillsOffered: []catalog.Skill{{
			ID:       uuid.New(),
			Name:     "UX/UI Design Review",
			Category: catalog.CategoryTechnology,
		}},
		SkillsNeeded: []string{"Photography"},
	}
	photographer := catalog.Participant{
		ID:   uuid.New(),
		Name: "Elena Rodriguez",
		SkillsOffered: []catalog.Skill{{
			ID:       uuid.New(),
			Name:     "Portrait Photography",
			Category: catalog.CategoryCreative,
		}},
		SkillsNeeded: []string{"Design help"},
	}
	plumber := catalog.Participant{
		ID:   uuid.New(),
		Name: "Marcus Johnson",
		SkillsOffered: []catalog.Skill{{
			ID:       uuid.New(),
			Name:     "Plumbing Repairs",
			Category: catalog.CategoryHomeRepair,
		}},
	}
	store := catalog.NewStore([]catalog.Participant{viewer, photographer, plumber})
	return store, viewer
}

func TestSearchCandidates_InvalidCategory(t *testing.T) {
	store, viewer := searchFixture()
	uc := NewSearchUsecase(store, nil, 0, nil)

	_, err := uc.SearchCandidates(context.Background(), viewer.ID, SearchParams{Category: "Gardening"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearchCandidates_UnknownViewer(t *testing.T) {
	store, _ := searchFixture()
	uc := NewSearchUsecase(store, nil, 0, nil)

	_, err := uc.SearchCandidates(context.Background(), uuid.New(), SearchParams{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSearchCandidates_AnonymousBrowse(t *testing.T) {
	store, _ := searchFixture()
	uc := NewSearchUsecase(store, nil, 0, nil)

	got, err := uc.SearchCandidates(context.Background(), uuid.Nil, SearchParams{SmartMatch: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// No viewer to exclude, no profile to smart-match against.
	if len(got) != 3 {
		t.Fatalf("expected full catalog for anonymous browse, got %d", len(got))
	}
	for _, c := range got {
		if c.MutualMatch {
			t.Fatalf("anonymous browse cannot produce mutual matches")
		}
	}
}

func TestSearchCandidates_SmartMatchForViewer(t *testing.T) {
	store, viewer := searchFixture()
	uc := NewSearchUsecase(store, nil, 0, nil)

	got, err := uc.SearchCandidates(context.Background(), viewer.ID, SearchParams{SmartMatch: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Participant.Name != "Elena Rodriguez" {
		t.Fatalf("expected the photographer, got %s", got[0].Participant.Name)
	}
}

func TestSearchCandidates_CacheMissThenHit(t *testing.T) {
	store, viewer := searchFixture()
	mc := newMockSearchCache()
	uc := NewSearchUsecase(store, mc, 30*time.Second, nil)
	ctx := context.Background()
	params := SearchParams{Query: "photo"}

	first, err := uc.SearchCandidates(ctx, viewer.ID, params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if mc.sets != 1 {
		t.Fatalf("expected one cache write, got %d", mc.sets)
	}
	if mc.lastTTL != 30*time.Second {
		t.Fatalf("unexpected ttl %v", mc.lastTTL)
	}

	second, err := uc.SearchCandidates(ctx, viewer.ID, params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if mc.sets != 1 {
		t.Fatalf("expected cache hit on second call, writes=%d", mc.sets)
	}
	if len(first) != len(second) {
		t.Fatalf("cache hit diverged: %d vs %d", len(first), len(second))
	}
}

func TestSearchCandidates_WhitespaceDistinctQueriesDoNotShareAKey(t *testing.T) {
	store, viewer := searchFixture()
	mc := newMockSearchCache()
	uc := NewSearchUsecase(store, mc, time.Minute, nil)
	ctx := context.Background()

	// The filter treats interior whitespace literally, so these two
	// queries have different results and must not share a cache entry.
	got, err := uc.SearchCandidates(ctx, viewer.ID, SearchParams{Query: "portrait  photography"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("double-space query must match nothing, got %d candidates", len(got))
	}

	got, err = uc.SearchCandidates(ctx, viewer.ID, SearchParams{Query: "portrait photography"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Participant.Name != "Elena Rodriguez" {
		t.Fatalf("expected the photographer, got %d candidates", len(got))
	}
	if len(mc.lastKeys) != 2 || mc.lastKeys[0] == mc.lastKeys[1] {
		t.Fatalf("expected distinct cache keys for whitespace-distinct queries")
	}
}

func TestSearchCandidates_RevisionChangesKey(t *testing.T) {
	store, viewer := searchFixture()
	mc := newMockSearchCache()
	uc := NewSearchUsecase(store, mc, time.Minute, nil)
	ctx := context.Background()

	if _, err := uc.SearchCandidates(ctx, viewer.ID, SearchParams{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	newcomer := catalog.Participant{ID: uuid.New(), Name: "New Neighbor"}
	if err := store.PrependCard(newcomer); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := uc.SearchCandidates(ctx, viewer.ID, SearchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(mc.lastKeys) != 2 || mc.lastKeys[0] == mc.lastKeys[1] {
		t.Fatalf("expected distinct cache keys across catalog revisions")
	}
	if len(got) != 3 {
		t.Fatalf("expected newcomer in recomputed result, got %d candidates", len(got))
	}
}

func TestSearchCandidates_CacheFailureDegrades(t *testing.T) {
	store, viewer := searchFixture()
	mc := newMockSearchCache()
	mc.getErr = errors.New("redis gone")
	mc.setErr = errors.New("redis gone")
	uc := NewSearchUsecase(store, mc, time.Minute, nil)

	got, err := uc.SearchCandidates(context.Background(), viewer.ID, SearchParams{Query: "plumbing"})
	if err != nil {
		t.Fatalf("expected degraded search to succeed, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
}
