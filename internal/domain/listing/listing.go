package listing

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
)

// Type tags a listing as an offered skill or a request for help.
type Type string

const (
	TypeOffer   Type = "OFFER"
	TypeRequest Type = "REQUEST"
)

var (
	ErrInvalidListing  = errors.New("title and description are required")
	ErrInvalidCategory = errors.New("unknown skill category")
	ErrInvalidType     = errors.New("unknown listing type")
)

// Listing is the tagged variant validated at construction: either an Offer
// or a Request. Card builds the record that goes to the front of the
// catalog, ApplyTo folds the listing into the viewer's own profile.
type Listing interface {
	Type() Type
	Card(viewer catalog.Participant) catalog.Participant
	ApplyTo(viewer *catalog.Participant)
}

// Offer is a new skill the viewer provides to the neighborhood.
type Offer struct {
	Skill catalog.Skill
}

// Request is a skill the viewer is looking for.
type Request struct {
	Title       string
	Description string
	Category    catalog.Category
}

// NewOffer validates and builds an offered-skill listing. Rate and credit
// value arrive as raw form strings: an unparseable rate defaults to 0, an
// unparseable credit value to 1, and credit values below 1 are clamped up.
func NewOffer(title, description string, category catalog.Category, rate, creditValue string) (Offer, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return Offer{}, ErrInvalidListing
	}
	if !catalog.IsValidCategory(category) {
		return Offer{}, ErrInvalidCategory
	}

	hourly, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
	if err != nil || hourly < 0 {
		hourly = 0
	}
	credits, err := strconv.Atoi(strings.TrimSpace(creditValue))
	if err != nil || credits < 1 {
		credits = 1
	}

	return Offer{Skill: catalog.Skill{
		ID:          uuid.New(),
		Name:        title,
		Category:    category,
		Description: description,
		HourlyRate:  hourly,
		CreditValue: credits,
	}}, nil
}

func (o Offer) Type() Type { return TypeOffer }

func (o Offer) Card(viewer catalog.Participant) catalog.Participant {
	card := viewer.Clone()
	card.ID = uuid.New()
	card.SkillsOffered = []catalog.Skill{o.Skill}
	card.SkillsNeeded = []string{}
	return card
}

func (o Offer) ApplyTo(viewer *catalog.Participant) {
	viewer.SkillsOffered = append(viewer.SkillsOffered, o.Skill)
}

// NewRequest validates and builds a needed-skill listing.
func NewRequest(title, description string, category catalog.Category) (Request, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return Request{}, ErrInvalidListing
	}
	if !catalog.IsValidCategory(category) {
		return Request{}, ErrInvalidCategory
	}
	return Request{Title: title, Description: description, Category: category}, nil
}

func (r Request) Type() Type { return TypeRequest }

func (r Request) Card(viewer catalog.Participant) catalog.Participant {
	card := viewer.Clone()
	card.ID = uuid.New()
	card.Name = viewer.Name + " (Seeking)"
	card.SkillsOffered = []catalog.Skill{}
	card.SkillsNeeded = []string{r.Title}
	return card
}

func (r Request) ApplyTo(viewer *catalog.Participant) {
	viewer.SkillsNeeded = append(viewer.SkillsNeeded, r.Title)
}
