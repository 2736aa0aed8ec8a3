package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
	"local-link/internal/repository"
)

// UpdateProfileInput uses pointers for optional fields: nil means "leave
// unchanged". Identity fields (id, trust, verification) are not editable
// here.
type UpdateProfileInput struct {
	Name         *string
	Location     *string
	Bio          *string
	Avatar       *string
	SkillsNeeded []string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, viewerID uuid.UUID) (catalog.Participant, error)
	UpdateProfile(ctx context.Context, viewerID uuid.UUID, in UpdateProfileInput) (catalog.Participant, error)
}

type Profile struct {
	store  *catalog.Store
	repo   repository.CatalogRepository
	logger *log.Logger
}

func NewProfileUsecase(store *catalog.Store, repo repository.CatalogRepository, logger *log.Logger) *Profile {
	return &Profile{store: store, repo: repo, logger: logger}
}

func (u *Profile) GetProfile(ctx context.Context, viewerID uuid.UUID) (catalog.Participant, error) {
	if viewerID == uuid.Nil {
		return catalog.Participant{}, ErrUnauthorized
	}
	p, err := u.store.Get(viewerID)
	if err != nil {
		return catalog.Participant{}, ErrNotFound
	}
	return p, nil
}

func (u *Profile) UpdateProfile(ctx context.Context, viewerID uuid.UUID, in UpdateProfileInput) (catalog.Participant, error) {
	if viewerID == uuid.Nil {
		return catalog.Participant{}, ErrUnauthorized
	}
	p, err := u.store.Get(viewerID)
	if err != nil {
		return catalog.Participant{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return catalog.Participant{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Avatar != nil {
		p.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if in.SkillsNeeded != nil {
		needs := make([]string, 0, len(in.SkillsNeeded))
		for _, n := range in.SkillsNeeded {
			n = strings.TrimSpace(n)
			if n != "" {
				needs = append(needs, n)
			}
		}
		p.SkillsNeeded = needs
	}

	u.store.Upsert(p)

	if u.repo != nil {
		if err := u.repo.Update(ctx, p); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				err = u.repo.Insert(ctx, p, false)
			}
			if err != nil {
				if u.logger != nil {
					u.logger.Printf("profile persistence failed | viewer=%s err=%v", viewerID, err)
				}
				return catalog.Participant{}, ErrInternal
			}
		}
	}

	return p, nil
}
