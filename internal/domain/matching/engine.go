package matching

import (
	"strings"

	"local-link/internal/domain/catalog"
)

// Candidate is a catalog participant that survived every active filter
// predicate. MutualMatch is derived per invocation and never stored: it
// marks a "perfect swap" where the candidate offers something the viewer
// needs and needs something the viewer offers.
type Candidate struct {
	Participant catalog.Participant
	MutualMatch bool
}

// Query carries the three toggleable predicates on top of self-exclusion.
type Query struct {
	Text       string
	Category   catalog.Category
	SmartMatch bool
}

// Filter runs the candidate-filtering pass over the catalog in order.
// Predicates are AND-combined: self-exclusion always applies, smart match
// applies when the flag is set and a viewer is present, text search when
// the query is non-empty, category when one is selected. The output keeps
// catalog order; MutualMatch is advisory metadata for the caller, not a
// sort key.
func Filter(participants []catalog.Participant, viewer *catalog.Participant, q Query) []Candidate {
	query := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]Candidate, 0, len(participants))
	for _, p := range participants {
		if viewer != nil && p.ID == viewer.ID {
			continue
		}

		mutual := false
		if q.SmartMatch && viewer != nil {
			offersNeeded := offersWhatViewerNeeds(p, *viewer)
			needsOffered := needsWhatViewerOffers(p, *viewer)
			if !offersNeeded && !needsOffered {
				continue
			}
			mutual = offersNeeded && needsOffered
		}

		if query != "" && !matchesText(p, query) {
			continue
		}

		if q.Category != "" && !offersCategory(p, q.Category) {
			continue
		}

		out = append(out, Candidate{Participant: p, MutualMatch: mutual})
	}
	return out
}

// offersWhatViewerNeeds reports whether any of p's offered-skill names and
// any of the viewer's needed tags contain each other, case-insensitively,
// in either direction. Empty sets on either side short-circuit to false.
func offersWhatViewerNeeds(p, viewer catalog.Participant) bool {
	for _, s := range p.SkillsOffered {
		for _, need := range viewer.SkillsNeeded {
			if containsEitherFold(s.Name, need) {
				return true
			}
		}
	}
	return false
}

// needsWhatViewerOffers is the reverse axis: p's needed tags against the
// viewer's offered-skill names.
func needsWhatViewerOffers(p, viewer catalog.Participant) bool {
	for _, need := range p.SkillsNeeded {
		for _, s := range viewer.SkillsOffered {
			if containsEitherFold(need, s.Name) {
				return true
			}
		}
	}
	return false
}

// containsEitherFold checks substring containment in both directions.
// "Plumbing" matches "Emergency Plumbing" and vice versa.
func containsEitherFold(a, b string) bool {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// matchesText admits a participant when the lowercased query is a substring
// of their name, any offered-skill name or description, or any needed tag.
func matchesText(p catalog.Participant, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, s := range p.SkillsOffered {
		if strings.Contains(strings.ToLower(s.Name), query) {
			return true
		}
		if strings.Contains(strings.ToLower(s.Description), query) {
			return true
		}
	}
	for _, need := range p.SkillsNeeded {
		if strings.Contains(strings.ToLower(need), query) {
			return true
		}
	}
	return false
}

// offersCategory is exact-value category matching, never substring.
func offersCategory(p catalog.Participant, c catalog.Category) bool {
	for _, s := range p.SkillsOffered {
		if s.Category == c {
			return true
		}
	}
	return false
}
