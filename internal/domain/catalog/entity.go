package catalog

import "github.com/google/uuid"

// Category is the fixed set of skill categories a listing can belong to.
type Category string

const (
	CategoryEducation  Category = "Education"
	CategoryHomeRepair Category = "Home & Repair"
	CategoryTechnology Category = "Technology"
	CategoryCreative   Category = "Creative & Arts"
	CategoryWellness   Category = "Health & Wellness"
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryEducation,
		CategoryHomeRepair,
		CategoryTechnology,
		CategoryCreative,
		CategoryWellness,
	}
}

// IsValidCategory reports whether c is one of the fixed categories.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryEducation, CategoryHomeRepair, CategoryTechnology, CategoryCreative, CategoryWellness:
		return true
	}
	return false
}

// Skill is an offered capability. Immutable once created; owned by exactly
// one Participant. CreditValue is the number of time-credits a one-hour
// session costs and is always at least 1.
type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    Category
	Description string
	HourlyRate  float64
	CreditValue int
	Images      []string
}

// Coordinates are display-only map data; no distance math is performed on
// them anywhere in the engine.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Participant is a neighbor in the catalog: what they offer, what they are
// looking for, and their time-credit wallet. SkillsNeeded holds free-text
// tags, not references to any Skill.
type Participant struct {
	ID            uuid.UUID
	Name          string
	Avatar        string
	Location      string
	Coordinates   Coordinates
	TrustScore    int
	Verified      bool
	Bio           string
	Credits       int
	SkillsOffered []Skill
	SkillsNeeded  []string
}

// SkillByID returns the offered skill with the given id.
func (p Participant) SkillByID(id uuid.UUID) (Skill, bool) {
	for _, s := range p.SkillsOffered {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// Clone returns a deep copy so callers can hand participants out of the
// store without sharing slices.
func (p Participant) Clone() Participant {
	out := p
	if p.SkillsOffered != nil {
		out.SkillsOffered = make([]Skill, len(p.SkillsOffered))
		copy(out.SkillsOffered, p.SkillsOffered)
		for i, s := range out.SkillsOffered {
			if s.Images != nil {
				imgs := make([]string, len(s.Images))
				copy(imgs, s.Images)
				out.SkillsOffered[i].Images = imgs
			}
		}
	}
	if p.SkillsNeeded != nil {
		out.SkillsNeeded = make([]string, len(p.SkillsNeeded))
		copy(out.SkillsNeeded, p.SkillsNeeded)
	}
	return out
}
