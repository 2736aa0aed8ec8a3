package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"local-link/internal/domain/booking"
	"local-link/internal/domain/catalog"
	"local-link/internal/repository"
)

// BookingView is the snapshot of an attempt handed to the delivery layer.
// CanAffordCredits lets the caller disable the credit option before the
// seeker ever tries it.
type BookingView struct {
	ID               uuid.UUID
	ProviderID       uuid.UUID
	ProviderName     string
	SeekerID         uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	HourlyRate       float64
	CreditValue      int
	State            booking.State
	Date             time.Time
	Method           booking.Method
	SeekerCredits    int
	CanAffordCredits bool
}

// ConfirmedEvent is the single completion notification emitted once the
// pacing window after Confirmed has elapsed.
type ConfirmedEvent struct {
	BookingID    uuid.UUID
	ProviderID   uuid.UUID
	ProviderName string
	SeekerID     uuid.UUID
	SkillName    string
	Method       booking.Method
	Credits      int
	Date         time.Time
}

type BookingUsecase interface {
	Start(ctx context.Context, seekerID, providerID, skillID uuid.UUID) (BookingView, error)
	SetDate(ctx context.Context, seekerID, bookingID uuid.UUID, date time.Time) (BookingView, error)
	SelectMethod(ctx context.Context, seekerID, bookingID uuid.UUID, m booking.Method) (BookingView, error)
	Advance(ctx context.Context, seekerID, bookingID uuid.UUID) (BookingView, error)
	Back(ctx context.Context, seekerID, bookingID uuid.UUID) (BookingView, error)
	Cancel(ctx context.Context, seekerID, bookingID uuid.UUID) error
}

type Booking struct {
	store       *catalog.Store
	repo        repository.CatalogRepository
	delay       time.Duration
	onConfirmed func(ConfirmedEvent)
	logger      *log.Logger

	mu       sync.Mutex
	attempts map[uuid.UUID]*managedAttempt
}

type managedAttempt struct {
	attempt *booking.Attempt
	timer   *time.Timer
}

func NewBookingUsecase(store *catalog.Store, repo repository.CatalogRepository, delay time.Duration, onConfirmed func(ConfirmedEvent), logger *log.Logger) *Booking {
	return &Booking{
		store:       store,
		repo:        repo,
		delay:       delay,
		onConfirmed: onConfirmed,
		logger:      logger,
		attempts:    make(map[uuid.UUID]*managedAttempt),
	}
}

// Start opens a booking attempt for a (provider, skill) pair picked from
// the candidate list. The seeker is always the current viewer.
func (u *Booking) Start(ctx context.Context, seekerID, providerID, skillID uuid.UUID) (BookingView, error) {
	if seekerID == uuid.Nil {
		return BookingView{}, ErrUnauthorized
	}
	if seekerID == providerID {
		return BookingView{}, ErrInvalidInput
	}

	provider, err := u.store.Get(providerID)
	if err != nil {
		return BookingView{}, ErrNotFound
	}
	seeker, err := u.store.Get(seekerID)
	if err != nil {
		return BookingView{}, ErrUnauthorized
	}
	skill, ok := provider.SkillByID(skillID)
	if !ok {
		return BookingView{}, ErrNotFound
	}

	attempt, err := booking.NewAttempt(provider, seeker, skill)
	if err != nil {
		return BookingView{}, ErrNotFound
	}

	u.mu.Lock()
	u.attempts[attempt.ID] = &managedAttempt{attempt: attempt}
	u.mu.Unlock()

	return viewOf(attempt), nil
}

func (u *Booking) SetDate(ctx context.Context, seekerID, bookingID uuid.UUID, date time.Time) (BookingView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	ma, err := u.owned(seekerID, bookingID)
	if err != nil {
		return BookingView{}, err
	}
	if err := ma.attempt.SetDate(date); err != nil {
		return viewOf(ma.attempt), err
	}
	return viewOf(ma.attempt), nil
}

func (u *Booking) SelectMethod(ctx context.Context, seekerID, bookingID uuid.UUID, m booking.Method) (BookingView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	ma, err := u.owned(seekerID, bookingID)
	if err != nil {
		return BookingView{}, err
	}
	if err := ma.attempt.SelectMethod(m); err != nil {
		return viewOf(ma.attempt), err
	}
	return viewOf(ma.attempt), nil
}

// Advance steps the state machine. Reaching Confirmed schedules the single
// pacing callback; settlement happens when it fires, never before, so a
// cancel inside the window leaves every balance untouched.
func (u *Booking) Advance(ctx context.Context, seekerID, bookingID uuid.UUID) (BookingView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	ma, err := u.owned(seekerID, bookingID)
	if err != nil {
		return BookingView{}, err
	}

	st, err := ma.attempt.Advance()
	if err != nil {
		return viewOf(ma.attempt), err
	}

	if st == booking.StateConfirmed && ma.timer == nil {
		id := ma.attempt.ID
		ma.timer = time.AfterFunc(u.delay, func() { u.finalize(id) })
	}

	return viewOf(ma.attempt), nil
}

func (u *Booking) Back(ctx context.Context, seekerID, bookingID uuid.UUID) (BookingView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	ma, err := u.owned(seekerID, bookingID)
	if err != nil {
		return BookingView{}, err
	}
	if err := ma.attempt.Back(); err != nil {
		return viewOf(ma.attempt), err
	}
	return viewOf(ma.attempt), nil
}

// Cancel discards the attempt. Valid at any point before the confirmation
// callback has fired; the pending timer is stopped and no shared state has
// been touched yet.
func (u *Booking) Cancel(ctx context.Context, seekerID, bookingID uuid.UUID) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	ma, err := u.owned(seekerID, bookingID)
	if err != nil {
		return err
	}
	if ma.timer != nil {
		ma.timer.Stop()
	}
	delete(u.attempts, bookingID)
	return nil
}

// finalize runs on the pacing timer: apply settlement, retire the attempt,
// emit the completion notification.
func (u *Booking) finalize(bookingID uuid.UUID) {
	u.mu.Lock()
	ma, ok := u.attempts[bookingID]
	if !ok {
		// Cancelled during the pacing window.
		u.mu.Unlock()
		return
	}
	delete(u.attempts, bookingID)
	u.mu.Unlock()

	a := ma.attempt
	credits := 0
	if a.CreditSettled() {
		credits = a.Skill.CreditValue
		if err := u.settleCredits(a); err != nil && u.logger != nil {
			u.logger.Printf("booking settlement failed | booking=%s err=%v", a.ID, err)
		}
	}

	if u.onConfirmed != nil {
		u.onConfirmed(ConfirmedEvent{
			BookingID:    a.ID,
			ProviderID:   a.Provider.ID,
			ProviderName: a.Provider.Name,
			SeekerID:     a.Seeker.ID,
			SkillName:    a.Skill.Name,
			Method:       a.Method(),
			Credits:      credits,
			Date:         a.Date(),
		})
	}
}

// settleCredits moves the skill's credit value from the seeker to the
// provider and persists both wallets. Monetary settlement never reaches
// here: it moves no credit balance.
func (u *Booking) settleCredits(a *booking.Attempt) error {
	if err := u.store.TransferCredits(a.Seeker.ID, a.Provider.ID, a.Skill.CreditValue); err != nil {
		return err
	}
	if u.repo == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	balances := make(map[uuid.UUID]int, 2)
	for _, id := range []uuid.UUID{a.Seeker.ID, a.Provider.ID} {
		p, err := u.store.Get(id)
		if err != nil {
			return err
		}
		balances[id] = p.Credits
	}
	return u.repo.SetCredits(ctx, balances)
}

func (u *Booking) owned(seekerID, bookingID uuid.UUID) (*managedAttempt, error) {
	ma, ok := u.attempts[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	if ma.attempt.Seeker.ID != seekerID {
		return nil, ErrUnauthorized
	}
	return ma, nil
}

func viewOf(a *booking.Attempt) BookingView {
	return BookingView{
		ID:               a.ID,
		ProviderID:       a.Provider.ID,
		ProviderName:     a.Provider.Name,
		SeekerID:         a.Seeker.ID,
		SkillID:          a.Skill.ID,
		SkillName:        a.Skill.Name,
		HourlyRate:       a.Skill.HourlyRate,
		CreditValue:      a.Skill.CreditValue,
		State:            a.State(),
		Date:             a.Date(),
		Method:           a.Method(),
		SeekerCredits:    a.Seeker.Credits,
		CanAffordCredits: a.Seeker.Credits >= a.Skill.CreditValue,
	}
}
