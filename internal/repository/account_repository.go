package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrAccountNotFound = errors.New("account not found")

// Account links a sign-in credential to a catalog participant. The
// identity collaborator is external to the engine; this is the minimal
// registry the surrounding service needs to hand out viewer identities.
type Account struct {
	ID            uuid.UUID
	Email         string
	PasswordHash  string
	ParticipantID uuid.UUID
}

type AccountRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, a Account) error
}

type MemoryAccountRepository struct {
	mu      sync.RWMutex
	byEmail map[string]Account
	byID    map[uuid.UUID]Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		byEmail: make(map[string]Account),
		byID:    make(map[uuid.UUID]Account),
	}
}

func (r *MemoryAccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[normalizeEmail(email)]
	return ok, nil
}

func (r *MemoryAccountRepository) GetByEmail(_ context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id uuid.UUID) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (r *MemoryAccountRepository) Create(_ context.Context, a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(a.Email)
	if _, ok := r.byEmail[key]; ok {
		return errors.New("email already registered")
	}
	r.byEmail[key] = a
	r.byID[a.ID] = a
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
