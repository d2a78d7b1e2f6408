package availability

// Provider produces the bookable time slots for a club on a date.
type Provider interface {
	GetTimeSlots(clubID, date string) ([]TimeSlot, error)
}

// OccupancySource decides whether a slot is already taken. Implementations
// must be deterministic for a given (clubID, date, time) so that tests and
// repeated lookups agree; a real backend would answer from its reservation
// ledger.
type OccupancySource interface {
	IsTaken(clubID, date, slotTime string) bool
}
