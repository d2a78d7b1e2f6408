package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventBookingConfirmed EventType = "booking-confirmed"
	EventBookingCancelled EventType = "booking-cancelled"
	EventSearchCompleted  EventType = "search-completed"
)

// BookingEvent is the payload published when a booking reaches a terminal state.
type BookingEvent struct {
	BookingID  string `msgpack:"booking_id"`
	ClubID     string `msgpack:"club_id"`
	CourtID    string `msgpack:"court_id"`
	Date       string `msgpack:"date"`
	SlotTime   string `msgpack:"slot_time"`
	Duration   int    `msgpack:"duration"`
	TotalPrice int64  `msgpack:"total_price"`
	UserID     string `msgpack:"user_id"`
}

// SearchEvent is the payload published after a roster search completes.
type SearchEvent struct {
	Matched  int    `msgpack:"matched"`
	Total    int    `msgpack:"total"`
	CacheHit bool   `msgpack:"cache_hit"`
	UserID   string `msgpack:"user_id"`
}
