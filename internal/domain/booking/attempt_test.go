package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"local-link/internal/domain/catalog"
)

func fixture(seekerCredits int) (catalog.Participant, catalog.Participant, catalog.Skill) {
	skill := catalog.Skill{
		ID:          uuid.New(),
		Name:        "Emergency Plumbing",
		Category:    catalog.CategoryHomeRepair,
		HourlyRate:  120,
		CreditValue: 3,
	}
	provider := catalog.Participant{
		ID:            uuid.New(),
		Name:          "Marcus Johnson",
		SkillsOffered: []catalog.Skill{skill},
	}
	seeker := catalog.Participant{
		ID:      uuid.New(),
		Name:    "Alex Design",
		Credits: seekerCredits,
	}
	return provider, seeker, skill
}

func TestNewAttempt_SkillMustBelongToProvider(t *testing.T) {
	provider, seeker, _ := fixture(10)
	foreign := catalog.Skill{ID: uuid.New(), Name: "Gardening", CreditValue: 1}

	if _, err := NewAttempt(provider, seeker, foreign); !errors.Is(err, ErrSkillNotOffered) {
		t.Fatalf("expected ErrSkillNotOffered, got %v", err)
	}
}

func TestAdvance_WithoutDateStaysInScheduling(t *testing.T) {
	provider, seeker, skill := fixture(10)
	a, err := NewAttempt(provider, seeker, skill)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	st, err := a.Advance()
	if !errors.Is(err, ErrMissingDate) {
		t.Fatalf("expected ErrMissingDate, got %v", err)
	}
	if st != StateScheduling || a.State() != StateScheduling {
		t.Fatalf("state must remain Scheduling, got %s", a.State())
	}
}

func TestAdvance_WithoutMethodStaysInSettlement(t *testing.T) {
	provider, seeker, skill := fixture(10)
	a, _ := NewAttempt(provider, seeker, skill)
	if err := a.SetDate(time.Now().Add(24 * time.Hour)); err != nil {
		t.Fatalf("set date: %v", err)
	}
	if _, err := a.Advance(); err != nil {
		t.Fatalf("advance to settlement: %v", err)
	}

	st, err := a.Advance()
	if !errors.Is(err, ErrMissingMethod) {
		t.Fatalf("expected ErrMissingMethod, got %v", err)
	}
	if st != StateSettlement {
		t.Fatalf("state must remain Settlement, got %s", st)
	}
}

func TestSelectMethod_CreditRejectedBelowBalance(t *testing.T) {
	provider, seeker, skill := fixture(skillCreditValue(t) - 1)
	a, _ := NewAttempt(provider, seeker, skill)
	_ = a.SetDate(time.Now())
	_, _ = a.Advance()

	if err := a.SelectMethod(MethodCredit); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if a.Method() != "" {
		t.Fatalf("rejected method must not be recorded")
	}
}

func TestSelectMethod_CreditAcceptedAtExactBalance(t *testing.T) {
	provider, seeker, skill := fixture(skillCreditValue(t))
	a, _ := NewAttempt(provider, seeker, skill)
	_ = a.SetDate(time.Now())
	_, _ = a.Advance()

	if err := a.SelectMethod(MethodCredit); err != nil {
		t.Fatalf("exact balance must be accepted, got %v", err)
	}
	st, err := a.Advance()
	if err != nil {
		t.Fatalf("advance to confirmed: %v", err)
	}
	if st != StateConfirmed {
		t.Fatalf("expected Confirmed, got %s", st)
	}
	if !a.CreditSettled() {
		t.Fatalf("credit-settled confirmation expected")
	}
}

func TestSelectMethod_OnlyValidInSettlement(t *testing.T) {
	provider, seeker, skill := fixture(10)
	a, _ := NewAttempt(provider, seeker, skill)

	if err := a.SelectMethod(MethodMonetary); !errors.Is(err, ErrWrongState) {
		t.Fatalf("expected ErrWrongState in Scheduling, got %v", err)
	}
}

func TestBack_RetainsDate(t *testing.T) {
	provider, seeker, skill := fixture(10)
	a, _ := NewAttempt(provider, seeker, skill)
	when := time.Date(2026, 10, 3, 15, 0, 0, 0, time.UTC)
	_ = a.SetDate(when)
	_, _ = a.Advance()

	if err := a.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if a.State() != StateScheduling {
		t.Fatalf("expected Scheduling after back, got %s", a.State())
	}
	if !a.Date().Equal(when) {
		t.Fatalf("date must survive the back transition")
	}

	// Forward again without re-entering the date.
	if _, err := a.Advance(); err != nil {
		t.Fatalf("re-advance: %v", err)
	}
}

func TestBack_OnlyFromSettlement(t *testing.T) {
	provider, seeker, skill := fixture(10)
	a, _ := NewAttempt(provider, seeker, skill)
	if err := a.Back(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("expected ErrWrongState, got %v", err)
	}
}

func TestConfirmed_IsTerminal(t *testing.T) {
	provider, seeker, skill := fixture(10)
	a, _ := NewAttempt(provider, seeker, skill)
	_ = a.SetDate(time.Now())
	_, _ = a.Advance()
	_ = a.SelectMethod(MethodMonetary)
	_, _ = a.Advance()

	if _, err := a.Advance(); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
	if err := a.SetDate(time.Now()); !errors.Is(err, ErrFinished) {
		t.Fatalf("confirmed attempt must reject date changes, got %v", err)
	}
	if a.CreditSettled() {
		t.Fatalf("monetary settlement must not be credit settled")
	}
}

func skillCreditValue(t *testing.T) int {
	t.Helper()
	_, _, skill := fixture(0)
	return skill.CreditValue
}
