package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"local-link/internal/database/seeder"
	"local-link/internal/domain/catalog"
	"local-link/internal/pkg/jwt"
	"local-link/internal/repository"
)

func newAuthUC(store *catalog.Store) *Auth {
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(repository.NewMemoryAccountRepository(), store, repository.NewMemoryCatalogRepository(nil), jwtSvc, nil)
}

func TestAuthRegister_Validation(t *testing.T) {
	uc := newAuthUC(catalog.NewStore(nil))
	ctx := context.Background()

	if _, err := uc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "longenough"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, err := uc.Register(ctx, RegisterInput{Email: "a@b.test", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

type failingAccountRepo struct {
	*repository.MemoryAccountRepository
	createErr error
}

func (r *failingAccountRepo) Create(context.Context, repository.Account) error {
	return r.createErr
}

func TestAuthRegister_FailedAccountCreateLeavesNoNeighbor(t *testing.T) {
	store := catalog.NewStore(nil)
	accounts := &failingAccountRepo{
		MemoryAccountRepository: repository.NewMemoryAccountRepository(),
		createErr:               errors.New("insert failed"),
	}
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	uc := NewAuthUsecase(accounts, store, repository.NewMemoryCatalogRepository(nil), jwtSvc, nil)

	_, err := uc.Register(context.Background(), RegisterInput{Email: "pat@example.test", Password: "hunter2hunter2", Name: "Pat"})
	if err == nil {
		t.Fatalf("expected registration to fail")
	}
	if store.Len() != 0 {
		t.Fatalf("failed registration must not leave a neighbor in the catalog, len=%d", store.Len())
	}
}

func TestAuthRegisterThenLogin(t *testing.T) {
	store := catalog.NewStore(nil)
	uc := newAuthUC(store)
	ctx := context.Background()

	res, err := uc.Register(ctx, RegisterInput{Email: "Pat@Example.test", Password: "hunter2hunter2", Name: "Pat"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("expected a token pair")
	}
	if res.Participant.Credits != 5 {
		t.Fatalf("expected starter credits 5, got %d", res.Participant.Credits)
	}
	if _, err := store.Get(res.Participant.ID); err != nil {
		t.Fatalf("expected new neighbor in the catalog: %v", err)
	}

	if _, err := uc.Register(ctx, RegisterInput{Email: "pat@example.test", Password: "hunter2hunter2"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	// Email lookup is case-insensitive.
	login, err := uc.Login(ctx, LoginInput{Email: "PAT@example.test", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if login.Participant.ID != res.Participant.ID {
		t.Fatalf("login resolved a different participant")
	}

	if _, err := uc.Login(ctx, LoginInput{Email: "pat@example.test", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthGuest_SeedsOnce(t *testing.T) {
	store := catalog.NewStore(nil)
	uc := newAuthUC(store)
	ctx := context.Background()

	first, err := uc.Guest(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Participant.ID != seeder.GuestID {
		t.Fatalf("expected the fixed guest id")
	}

	// Guest state survives across sessions in one process.
	if err := store.AddNeed(seeder.GuestID, "Ladder loan"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.Guest(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	found := false
	for _, n := range second.Participant.SkillsNeeded {
		if n == "Ladder loan" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected guest profile state to persist")
	}
}

func TestAuthRefresh(t *testing.T) {
	store := catalog.NewStore(nil)
	uc := newAuthUC(store)
	ctx := context.Background()

	res, err := uc.Register(ctx, RegisterInput{Email: "sam@example.test", Password: "correcthorse", Name: "Sam"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	access, refresh, err := uc.Refresh(ctx, res.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected a fresh token pair")
	}

	// An access token is not a refresh token.
	if _, _, err := uc.Refresh(ctx, res.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for access token, got %v", err)
	}
	if _, _, err := uc.Refresh(ctx, "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage, got %v", err)
	}
}
