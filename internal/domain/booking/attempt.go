package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
)

// State is the position of a booking attempt in its linear flow.
type State string

const (
	StateScheduling State = "SCHEDULING"
	StateSettlement State = "SETTLEMENT"
	StateConfirmed  State = "CONFIRMED"
)

// Method is the chosen unit of value transfer for a booking.
type Method string

const (
	MethodMonetary Method = "MONETARY"
	MethodCredit   Method = "CREDIT"
)

// Validation errors. None of them are fatal: a rejected transition leaves
// the attempt exactly where it was, and the caller keeps the offending
// control disabled until the precondition holds.
var (
	ErrMissingDate         = errors.New("no date selected")
	ErrMissingMethod       = errors.New("no settlement method selected")
	ErrInsufficientCredits = errors.New("insufficient credit balance")
	ErrInvalidMethod       = errors.New("unknown settlement method")
	ErrSkillNotOffered     = errors.New("skill does not belong to provider")
	ErrFinished            = errors.New("booking attempt already confirmed")
	ErrWrongState          = errors.New("transition not allowed in current state")
)

// Attempt is one transient pass through Scheduling -> Settlement ->
// Confirmed for a fixed (provider, seeker, skill) triple. It never mutates
// the catalog itself: settlement side effects belong to whoever drives the
// confirmation signal.
type Attempt struct {
	ID       uuid.UUID
	Provider catalog.Participant
	Seeker   catalog.Participant
	Skill    catalog.Skill

	date   time.Time
	method Method
	state  State
}

// NewAttempt starts an attempt in Scheduling. The skill must be one the
// provider actually offers.
func NewAttempt(provider, seeker catalog.Participant, skill catalog.Skill) (*Attempt, error) {
	if _, ok := provider.SkillByID(skill.ID); !ok {
		return nil, ErrSkillNotOffered
	}
	return &Attempt{
		ID:       uuid.New(),
		Provider: provider,
		Seeker:   seeker,
		Skill:    skill,
		state:    StateScheduling,
	}, nil
}

func (a *Attempt) State() State { return a.state }
func (a *Attempt) Date() time.Time { return a.date }
func (a *Attempt) Method() Method { return a.method }

// SetDate records the session date. The date survives a Back transition so
// the seeker never has to re-enter it.
func (a *Attempt) SetDate(t time.Time) error {
	if a.state == StateConfirmed {
		return ErrFinished
	}
	if t.IsZero() {
		return ErrMissingDate
	}
	a.date = t
	return nil
}

// SelectMethod picks the settlement method at the Settlement step. Credit
// settlement is a hard precondition, not a soft warning: it is rejected
// outright when the seeker's balance cannot cover the skill's credit value.
// An exact balance is accepted.
func (a *Attempt) SelectMethod(m Method) error {
	if a.state == StateConfirmed {
		return ErrFinished
	}
	if a.state != StateSettlement {
		return ErrWrongState
	}
	switch m {
	case MethodMonetary:
	case MethodCredit:
		if a.Seeker.Credits < a.Skill.CreditValue {
			return ErrInsufficientCredits
		}
	default:
		return ErrInvalidMethod
	}
	a.method = m
	return nil
}

// Advance moves the attempt one step forward, re-checking the guards even
// when the caller's controls should already have blocked the transition.
func (a *Attempt) Advance() (State, error) {
	switch a.state {
	case StateScheduling:
		if a.date.IsZero() {
			return a.state, ErrMissingDate
		}
		a.state = StateSettlement
	case StateSettlement:
		if a.method == "" {
			return a.state, ErrMissingMethod
		}
		if a.method == MethodCredit && a.Seeker.Credits < a.Skill.CreditValue {
			return a.state, ErrInsufficientCredits
		}
		a.state = StateConfirmed
	case StateConfirmed:
		return a.state, ErrFinished
	}
	return a.state, nil
}

// Back returns from Settlement to Scheduling. Unconditional; date and
// method are retained.
func (a *Attempt) Back() error {
	if a.state != StateSettlement {
		return ErrWrongState
	}
	a.state = StateScheduling
	return nil
}

// CreditSettled reports whether confirmation of this attempt should move
// credits: true only for credit-settled attempts. Monetary settlement
// never touches a credit balance.
func (a *Attempt) CreditSettled() bool {
	return a.state == StateConfirmed && a.method == MethodCredit
}
