package catalog

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("participant not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// Store holds the current participant catalog. It is the single owner of
// participant state: the matching engine only reads snapshots, and every
// mutation (new listing cards, profile edits, credit settlement) goes
// through one of the methods below under the write lock.
type Store struct {
	mu           sync.RWMutex
	participants []Participant
	index        map[uuid.UUID]int
	revision     uint64
}

func NewStore(participants []Participant) *Store {
	s := &Store{index: make(map[uuid.UUID]int, len(participants))}
	for _, p := range participants {
		if _, ok := s.index[p.ID]; ok {
			continue
		}
		s.index[p.ID] = len(s.participants)
		s.participants = append(s.participants, p.Clone())
	}
	return s
}

// Snapshot returns a deep copy of the catalog in catalog order.
func (s *Store) Snapshot() []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Participant, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p.Clone())
	}
	return out
}

// Get returns a copy of the participant with the given id.
func (s *Store) Get(id uuid.UUID) (Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Participant{}, ErrNotFound
	}
	return s.participants[i].Clone(), nil
}

// Len returns the number of participants in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

// Revision is a monotonic counter bumped on every mutation. Cached search
// results embed it in their key so stale entries simply stop being read.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// PrependCard inserts a listing card at the front of the catalog.
func (s *Store) PrependCard(p Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[p.ID]; ok {
		return errors.New("participant already in catalog")
	}

	s.participants = append([]Participant{p.Clone()}, s.participants...)
	s.index = make(map[uuid.UUID]int, len(s.participants))
	for i, it := range s.participants {
		s.index[it.ID] = i
	}
	s.revision++
	return nil
}

// Upsert updates the participant with the same id in place, or appends it
// to the back of the catalog when absent. Used when a viewer signs in or
// saves their profile.
func (s *Store) Upsert(p Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[p.ID]; ok {
		s.participants[i] = p.Clone()
	} else {
		s.index[p.ID] = len(s.participants)
		s.participants = append(s.participants, p.Clone())
	}
	s.revision++
}

// AddOffer appends a skill to the participant's offered set.
func (s *Store) AddOffer(id uuid.UUID, skill Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	s.participants[i].SkillsOffered = append(s.participants[i].SkillsOffered, skill)
	s.revision++
	return nil
}

// AddNeed appends a needed-skill tag to the participant's needed set.
func (s *Store) AddNeed(id uuid.UUID, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	s.participants[i].SkillsNeeded = append(s.participants[i].SkillsNeeded, tag)
	s.revision++
	return nil
}

// TransferCredits moves amount credits from one wallet to another in a
// single step: the settlement side effect of a credit-settled booking.
// The debit is rejected outright when the balance cannot cover it.
func (s *Store) TransferCredits(from, to uuid.UUID, amount int) error {
	if amount <= 0 {
		return errors.New("transfer amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fi, ok := s.index[from]
	if !ok {
		return ErrNotFound
	}
	ti, ok := s.index[to]
	if !ok {
		return ErrNotFound
	}
	if s.participants[fi].Credits < amount {
		return ErrInsufficientCredits
	}

	s.participants[fi].Credits -= amount
	s.participants[ti].Credits += amount
	s.revision++
	return nil
}
