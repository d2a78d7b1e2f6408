package booking

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vlkr-dev/courtline/internal/availability"
	"github.com/vlkr-dev/courtline/internal/club"
)

// Workflow is the multi-step booking wizard for one user session:
// ClubSelection -> DateTimeSelection -> CourtAndDuration -> Confirmation,
// ending in Confirmed or Failed. Transitions run forward one step at a
// time; Back steps to the previous step without clearing its value;
// re-selecting at a step invalidates every later-step value.
type Workflow struct {
	mu sync.Mutex

	step       Step
	draft      Draft
	booking    *Booking
	failReason string
	inFlight   bool

	svc    CreationService
	userID string
}

// NewWorkflow starts an empty wizard for the given user.
func NewWorkflow(svc CreationService, userID string) *Workflow {
	return &Workflow{
		step:   StepClubSelection,
		svc:    svc,
		userID: userID,
	}
}

// Step returns the wizard's current step.
func (w *Workflow) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the accumulated draft.
func (w *Workflow) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Booking returns the created booking after a successful confirmation.
func (w *Workflow) Booking() *Booking {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.booking
}

// FailReason returns the failure message after a failed confirmation.
func (w *Workflow) FailReason() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failReason
}

// SelectClub records the chosen club and advances to date/time selection.
func (w *Workflow) SelectClub(c *club.Club) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepClubSelection {
		return &StateError{Op: "select club", Step: w.step}
	}
	if c == nil {
		return &ValidationError{Fields: []string{"club"}}
	}

	// Re-selecting the club invalidates everything chosen after it.
	w.draft = Draft{Club: c}
	w.step = StepDateTimeSelection
	log.Debug("Selected club", "clubID", c.ID, "user", w.userID)
	return nil
}

// SelectDateTime records the chosen date and slot and advances to court
// selection. The slot must be available.
func (w *Workflow) SelectDateTime(date string, slot availability.TimeSlot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepDateTimeSelection {
		return &StateError{Op: "select date/time", Step: w.step}
	}
	var invalid []string
	if date == "" {
		invalid = append(invalid, "date")
	}
	if !slot.Available {
		return &UnavailableError{Resource: "time slot", ID: slot.Time}
	}
	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid}
	}

	// Changing the date invalidates any court/duration tied to slot pricing.
	w.draft.Date = date
	w.draft.TimeSlot = &slot
	w.draft.Court = nil
	w.draft.Duration = 0
	w.step = StepCourtAndDuration
	log.Debug("Selected date and slot", "date", date, "slot", slot.Time, "user", w.userID)
	return nil
}

// SelectCourtAndDuration records the chosen court and duration and advances
// to confirmation. The court must be available and the duration positive.
func (w *Workflow) SelectCourtAndDuration(court club.Court, duration int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepCourtAndDuration {
		return &StateError{Op: "select court/duration", Step: w.step}
	}
	if !court.IsAvailable {
		return &UnavailableError{Resource: "court", ID: court.ID}
	}
	if duration <= 0 {
		return &ValidationError{Fields: []string{"duration"}}
	}

	w.draft.Court = &court
	w.draft.Duration = duration
	w.step = StepConfirmation
	log.Debug("Selected court and duration", "courtID", court.ID, "duration", duration, "user", w.userID)
	return nil
}

// Confirm validates the draft and invokes the creation service. At most one
// confirmation is in flight per workflow; a concurrent call is rejected.
// On failure the draft is preserved and Confirm may be called again without
// re-entering earlier steps.
func (w *Workflow) Confirm(ctx context.Context) (*Booking, error) {
	w.mu.Lock()
	if w.step != StepConfirmation && w.step != StepFailed {
		w.mu.Unlock()
		return nil, &StateError{Op: "confirm", Step: w.step}
	}
	if w.inFlight {
		w.mu.Unlock()
		return nil, &ServiceError{Op: "confirm", Err: ErrConfirmInFlight}
	}
	if missing := w.draft.missingFields(); len(missing) > 0 {
		w.mu.Unlock()
		return nil, &ValidationError{Fields: missing}
	}
	draft := w.draft
	w.inFlight = true
	w.mu.Unlock()

	booked, err := w.svc.Create(ctx, draft, w.userID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil {
		w.step = StepFailed
		w.failReason = err.Error()
		log.Warn("Booking confirmation failed", "user", w.userID, "reason", w.failReason)
		return nil, err
	}

	w.step = StepConfirmed
	w.booking = booked
	w.failReason = ""
	log.Info("Booking confirmed", "bookingID", booked.ID, "user", w.userID, "total", booked.TotalPrice)
	return booked, nil
}

// Back returns to the immediately preceding step without clearing the value
// already chosen at that step.
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepDateTimeSelection:
		w.step = StepClubSelection
	case StepCourtAndDuration:
		w.step = StepDateTimeSelection
	case StepConfirmation:
		w.step = StepCourtAndDuration
	case StepFailed:
		w.step = StepConfirmation
	default:
		return &StateError{Op: "back", Step: w.step}
	}
	return nil
}

// Reset clears the whole draft and returns to club selection. Valid from
// any state.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.draft = Draft{}
	w.booking = nil
	w.failReason = ""
	w.step = StepClubSelection
}
