package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"local-link/internal/database/seeder"
	"local-link/internal/domain/catalog"
	"local-link/internal/pkg/jwt"
	"local-link/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is a signed-in viewer identity: the catalog participant plus
// the token pair the client presents on later calls.
type AuthResult struct {
	Participant  catalog.Participant
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Guest(ctx context.Context) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	accounts repository.AccountRepository
	store    *catalog.Store
	repo     repository.CatalogRepository
	jwt      jwt.Service
	logger   *log.Logger
}

func NewAuthUsecase(accounts repository.AccountRepository, store *catalog.Store, repo repository.CatalogRepository, jwtSvc jwt.Service, logger *log.Logger) *Auth {
	return &Auth{accounts: accounts, store: store, repo: repo, jwt: jwtSvc, logger: logger}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return AuthResult{}, ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return AuthResult{}, ErrInvalidInput
	}

	exists, err := u.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	if exists {
		return AuthResult{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	// The account record is created before the participant joins the
	// catalog, so a failed registration leaves no orphan neighbor behind.
	p := newNeighbor(email, in.Name)
	acc := repository.Account{
		ID:            uuid.New(),
		Email:         email,
		PasswordHash:  string(hash),
		ParticipantID: p.ID,
	}
	if err := u.accounts.Create(ctx, acc); err != nil {
		return AuthResult{}, ErrEmailAlreadyRegistered
	}

	u.store.Upsert(p)
	if u.repo != nil {
		if err := u.repo.Insert(ctx, p, false); err != nil && u.logger != nil {
			u.logger.Printf("neighbor persistence failed | participant=%s err=%v", p.ID, err)
		}
	}

	return u.issueTokens(p, email)
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	acc, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	p, err := u.store.Get(acc.ParticipantID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	return u.issueTokens(p, email)
}

// Guest signs the caller in as the fixed anonymous fallback profile. The
// guest participant keeps its state (credits, listings) across guest
// sessions within one process lifetime.
func (u *Auth) Guest(ctx context.Context) (AuthResult, error) {
	p, err := u.store.Get(seeder.GuestID)
	if err != nil {
		p = seeder.GuestParticipant()
		u.store.Upsert(p)
		if u.repo != nil {
			if err := u.repo.Insert(ctx, p, false); err != nil && u.logger != nil {
				u.logger.Printf("guest persistence failed | err=%v", err)
			}
		}
	}
	return u.issueTokens(p, "")
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil || !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrUnauthorized
	}

	if _, err := u.store.Get(claims.ViewerID); err != nil {
		return "", "", ErrUnauthorized
	}

	access, err := u.jwt.GenerateAccessToken(claims.ViewerID, claims.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(claims.ViewerID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func (u *Auth) issueTokens(p catalog.Participant, email string) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(p.ID, email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{Participant: p, AccessToken: access, RefreshToken: refresh}, nil
}

// newNeighbor is the profile a fresh sign-up starts with.
func newNeighbor(email, name string) catalog.Participant {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if name == "" {
		name = "Neighbor"
	}

	id := uuid.New()
	return catalog.Participant{
		ID:            id,
		Name:          name,
		Avatar:        fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", id),
		Location:      "Local Neighborhood",
		TrustScore:    100,
		Verified:      false,
		Bio:           "I am new to the neighborhood! Eager to help and trade skills.",
		Credits:       5,
		SkillsOffered: []catalog.Skill{},
		SkillsNeeded:  []string{},
	}
}
