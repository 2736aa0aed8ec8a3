package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"local-link/internal/database"
	"local-link/internal/domain/catalog"
)

// PostgresCatalogRepository persists the catalog in a single participants
// table. Skill sets are stored as JSONB: they are only ever read and
// written as part of their owning participant.
type PostgresCatalogRepository struct {
	db database.DB
}

func NewPostgresCatalogRepository(db database.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

// EnsureSchema creates the participants table when absent. Listing cards
// prepend by taking a rank below the current minimum.
func (r *PostgresCatalogRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS participants (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	avatar         TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	lat            DOUBLE PRECISION NOT NULL DEFAULT 0,
	lng            DOUBLE PRECISION NOT NULL DEFAULT 0,
	trust_score    INT NOT NULL DEFAULT 0,
	verified       BOOLEAN NOT NULL DEFAULT FALSE,
	bio            TEXT NOT NULL DEFAULT '',
	credits        INT NOT NULL DEFAULT 0 CHECK (credits >= 0),
	skills_offered JSONB NOT NULL DEFAULT '[]',
	skills_needed  JSONB NOT NULL DEFAULT '[]',
	rank           DOUBLE PRECISION NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func (r *PostgresCatalogRepository) LoadAll(ctx context.Context) ([]catalog.Participant, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, avatar, location, lat, lng, trust_score, verified, bio, credits, skills_offered, skills_needed
FROM participants
ORDER BY rank ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Participant, 0)
	for rows.Next() {
		var p catalog.Participant
		var offered, needed []byte
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Avatar, &p.Location,
			&p.Coordinates.Lat, &p.Coordinates.Lng,
			&p.TrustScore, &p.Verified, &p.Bio, &p.Credits,
			&offered, &needed,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(offered, &p.SkillsOffered); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(needed, &p.SkillsNeeded); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) Insert(ctx context.Context, p catalog.Participant, front bool) error {
	offered, needed, err := marshalSkills(p)
	if err != nil {
		return err
	}

	rank := `COALESCE((SELECT MAX(rank) FROM participants), 0) + 1`
	if front {
		rank = `COALESCE((SELECT MIN(rank) FROM participants), 0) - 1`
	}

	_, err = r.db.Exec(ctx, `
INSERT INTO participants (id, name, avatar, location, lat, lng, trust_score, verified, bio, credits, skills_offered, skills_needed, rank)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, `+rank+`)`,
		p.ID, p.Name, p.Avatar, p.Location,
		p.Coordinates.Lat, p.Coordinates.Lng,
		p.TrustScore, p.Verified, p.Bio, p.Credits,
		offered, needed,
	)
	return err
}

func (r *PostgresCatalogRepository) Update(ctx context.Context, p catalog.Participant) error {
	offered, needed, err := marshalSkills(p)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx, `
UPDATE participants
SET name = $2, avatar = $3, location = $4, lat = $5, lng = $6,
    trust_score = $7, verified = $8, bio = $9, credits = $10,
    skills_offered = $11, skills_needed = $12
WHERE id = $1`,
		p.ID, p.Name, p.Avatar, p.Location,
		p.Coordinates.Lat, p.Coordinates.Lng,
		p.TrustScore, p.Verified, p.Bio, p.Credits,
		offered, needed,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// SetCredits runs both wallet updates of a settlement in one
// transaction.
func (r *PostgresCatalogRepository) SetCredits(ctx context.Context, balances map[uuid.UUID]int) error {
	if len(balances) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for id, credits := range balances {
		n, err := tx.Exec(ctx, `UPDATE participants SET credits = $2 WHERE id = $1`, id, credits)
		if err != nil {
			return err
		}
		if n == 0 {
			return catalog.ErrNotFound
		}
	}
	return tx.Commit(ctx)
}

func marshalSkills(p catalog.Participant) ([]byte, []byte, error) {
	offeredSet := p.SkillsOffered
	if offeredSet == nil {
		offeredSet = []catalog.Skill{}
	}
	neededSet := p.SkillsNeeded
	if neededSet == nil {
		neededSet = []string{}
	}

	offered, err := json.Marshal(offeredSet)
	if err != nil {
		return nil, nil, err
	}
	needed, err := json.Marshal(neededSet)
	if err != nil {
		return nil, nil, err
	}
	return offered, needed, nil
}
