// Package seeder provides the demo neighborhood the catalog starts with
// when no database is configured, plus the fixed guest viewer profile.
package seeder

import (
	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
)

// GuestID is the fixed identity of the anonymous fallback viewer.
var GuestID = uuid.MustParse("a1e7b2c4-0000-4000-8000-00000000ffff")

var (
	sarahID  = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	marcusID = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	elenaID  = uuid.MustParse("33333333-3333-4333-8333-333333333333")
)

// GuestParticipant is the profile handed to anonymous sessions.
func GuestParticipant() catalog.Participant {
	return catalog.Participant{
		ID:            GuestID,
		Name:          "Alex Design",
		Avatar:        "https://picsum.photos/id/338/200/200",
		Location:      "Home",
		Coordinates:   catalog.Coordinates{Lat: 40.7128, Lng: -74.0060},
		TrustScore:    95,
		Verified:      true,
		Credits:       8,
		SkillsNeeded:  []string{"Photography", "Plumbing"},
		SkillsOffered: []catalog.Skill{{
			ID:          uuid.MustParse("aaaa0001-0000-4000-8000-000000000001"),
			Name:        "UX/UI Design Review",
			Category:    catalog.CategoryTechnology,
			Description: "I will critique your app design and provide Figma improvements.",
			HourlyRate:  90,
			CreditValue: 2,
		}},
	}
}

// Neighborhood returns the seed catalog in display order.
func Neighborhood() []catalog.Participant {
	return []catalog.Participant{
		{
			ID:            sarahID,
			Name:          "Sarah Chen",
			Avatar:        "https://picsum.photos/id/64/200/200",
			Location:      "Downtown, 0.5km away",
			Coordinates:   catalog.Coordinates{Lat: 40.7128, Lng: -74.0060},
			TrustScore:    98,
			Verified:      true,
			Credits:       12,
			SkillsNeeded:  []string{"Plumbing", "Guitar Lessons"},
			SkillsOffered: []catalog.Skill{{
				ID:          uuid.MustParse("aaaa0002-0000-4000-8000-000000000002"),
				Name:        "Advanced React Tutoring",
				Category:    catalog.CategoryTechnology,
				Description: "Senior engineer offering 1-on-1 React & TypeScript mentorship.",
				HourlyRate:  80,
				CreditValue: 2,
				Images:      []string{"https://picsum.photos/id/1/400/300"},
			}},
		},
		{
			ID:            marcusID,
			Name:          "Marcus Johnson",
			Avatar:        "https://picsum.photos/id/91/200/200",
			Location:      "Westside, 2.1km away",
			Coordinates:   catalog.Coordinates{Lat: 40.7200, Lng: -74.0100},
			TrustScore:    92,
			Verified:      true,
			Credits:       5,
			SkillsNeeded:  []string{"Web Development", "Gardening"},
			SkillsOffered: []catalog.Skill{
				{
					ID:          uuid.MustParse("aaaa0003-0000-4000-8000-000000000003"),
					Name:        "Emergency Plumbing",
					Category:    catalog.CategoryHomeRepair,
					Description: "Licensed plumber available for quick fixes and installs.",
					HourlyRate:  120,
					CreditValue: 3,
					Images:      []string{"https://picsum.photos/id/175/400/300"},
				},
				{
					ID:          uuid.MustParse("aaaa0004-0000-4000-8000-000000000004"),
					Name:        "Classical Guitar Basics",
					Category:    catalog.CategoryCreative,
					Description: "Learn to play classical guitar. Beginners welcome.",
					HourlyRate:  40,
					CreditValue: 1,
					Images:      []string{"https://picsum.photos/id/145/400/300"},
				},
			},
		},
		{
			ID:            elenaID,
			Name:          "Elena Rodriguez",
			Avatar:        "https://picsum.photos/id/65/200/200",
			Location:      "North Hills, 4km away",
			Coordinates:   catalog.Coordinates{Lat: 40.7300, Lng: -73.9900},
			TrustScore:    88,
			Verified:      false,
			Credits:       20,
			SkillsNeeded:  []string{"Math Tutoring"},
			SkillsOffered: []catalog.Skill{{
				ID:          uuid.MustParse("aaaa0005-0000-4000-8000-000000000005"),
				Name:        "Portrait Photography",
				Category:    catalog.CategoryCreative,
				Description: "Professional headshots and lifestyle photography.",
				HourlyRate:  150,
				CreditValue: 4,
				Images:      []string{"https://picsum.photos/id/250/400/300"},
			}},
		},
	}
}
