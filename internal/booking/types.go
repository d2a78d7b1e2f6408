package booking

import (
	"time"

	"github.com/vlkr-dev/courtline/internal/availability"
	"github.com/vlkr-dev/courtline/internal/club"
)

// Step is a position in the booking wizard. Steps are strictly ordered with
// no skipping; Confirmed and Failed are terminal outcomes.
type Step string

const (
	StepClubSelection     Step = "CLUB_SELECTION"
	StepDateTimeSelection Step = "DATETIME_SELECTION"
	StepCourtAndDuration  Step = "COURT_AND_DURATION"
	StepConfirmation      Step = "CONFIRMATION"
	StepConfirmed         Step = "CONFIRMED"
	StepFailed            Step = "FAILED"
)

// Status is the lifecycle state of a persisted booking.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// Draft accumulates the user's choices across the wizard. Fields fill
// monotonically step by step; the total price is never stored on the draft,
// it is always derived via TotalPrice.
type Draft struct {
	Club     *club.Club             `json:"club,omitempty"`
	Date     string                 `json:"date,omitempty"`
	TimeSlot *availability.TimeSlot `json:"time_slot,omitempty"`
	Court    *club.Court            `json:"court,omitempty"`
	Duration int                    `json:"duration,omitempty"`
}

// EffectiveDuration is the draft duration in hours, defaulting to one.
func (d *Draft) EffectiveDuration() int {
	if d.Duration <= 0 {
		return 1
	}
	return d.Duration
}

// TotalPrice derives the draft's price: slot price times duration whenever a
// slot is chosen, else 0. Stale prices are impossible because nothing ever
// stores this value.
func (d *Draft) TotalPrice() int64 {
	if d.TimeSlot == nil {
		return 0
	}
	return d.TimeSlot.Price * int64(d.EffectiveDuration())
}

// missingFields lists every unset field required for confirmation.
func (d *Draft) missingFields() []string {
	var missing []string
	if d.Club == nil {
		missing = append(missing, "club")
	}
	if d.Date == "" {
		missing = append(missing, "date")
	}
	if d.TimeSlot == nil {
		missing = append(missing, "time_slot")
	}
	if d.Court == nil {
		missing = append(missing, "court")
	}
	if d.Duration <= 0 {
		missing = append(missing, "duration")
	}
	return missing
}

// Booking is the terminal, persisted record. The total price is fixed at
// creation time and never recomputed.
type Booking struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id"`
	ClubName   string    `json:"club_name"`
	CourtID    string    `json:"court_id"`
	Date       string    `json:"date"`
	SlotTime   string    `json:"slot_time"`
	Duration   int       `json:"duration"`
	UnitPrice  int64     `json:"unit_price"`
	TotalPrice int64     `json:"total_price"`
	Status     Status    `json:"status"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
