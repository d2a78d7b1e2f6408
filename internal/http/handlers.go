package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vlkr-dev/courtline/internal/booking"
	"github.com/vlkr-dev/courtline/internal/matching"
	"github.com/vlkr-dev/courtline/internal/pubsub"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear all stores")
		s.Roster.Clear()
		s.Clubs.Clear()
		s.Matcher.Refresh()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Stores cleared!")
		log.Info("Stores cleared successfully")
	}
}

func (s *Server) ListClubsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubs, err := s.Clubs.GetAll()
		if err != nil {
			log.Error("Failed to list clubs", "error", err)
			http.Error(w, "Failed to list clubs", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, clubs)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Roster.GetAll()
		if err != nil {
			log.Error("Failed to list players", "error", err)
			http.Error(w, "Failed to list players", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, players)
	}
}

// SearchHandler runs a compatibility search over the roster. Filters come in
// as a JSON body; an empty body means no filters.
func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// An empty body is fine, malformed JSON is not.
		var filters matching.Filters
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid filter payload", http.StatusBadRequest)
			return
		}

		result, err := s.Matcher.Search(filters)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}

		if !isDryRunFromContext(r) {
			if err := s.pubsub.SendMessage(string(pubsub.EventSearchCompleted), pubsub.SearchEvent{
				Matched: len(result.Suggestions),
				Total:   result.TotalCount,
			}); err != nil {
				log.Warn("Failed to publish search event", "error", err)
			}
		}

		s.writeJSON(w, http.StatusOK, result)
	}
}

// SuggestionsHandler ranks candidates against the user given in user_id.
// Without a user_id the deterministic popularity fallback applies.
func (s *Server) SuggestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		limit := matching.DefaultSuggestionLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 {
				http.Error(w, "Invalid 'limit' parameter", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		var filters matching.Filters
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid filter payload", http.StatusBadRequest)
			return
		}

		suggestions, err := s.Matcher.SuggestionsFor(userID, filters, limit)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, suggestions)
	}
}

func (s *Server) FeaturedPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := s.Matcher.Featured()
		if err != nil {
			log.Error("Failed to compute featured players", "error", err)
			http.Error(w, "Failed to compute featured players", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, featured)
	}
}

// AvailabilityHandler lists the time slots for a club on a date.
func (s *Server) AvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.URL.Query().Get("club_id")
		date := r.URL.Query().Get("date")
		if clubID == "" || date == "" {
			http.Error(w, "Missing 'club_id' or 'date' parameter", http.StatusBadRequest)
			return
		}

		slots, err := s.Availability.GetTimeSlots(clubID, date)
		if err != nil {
			log.Error("Failed to get time slots", "clubID", clubID, "date", date, "error", err)
			http.Error(w, "Club not found", http.StatusNotFound)
			return
		}
		s.writeJSON(w, http.StatusOK, slots)
	}
}

// StartBookingHandler opens a new wizard session for a user and returns its ID.
func (s *Server) StartBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "Missing 'user_id' parameter", http.StatusBadRequest)
			return
		}

		sessionID := uuid.New().String()
		wf := booking.NewWorkflow(s.Bookings, userID)

		s.sessionsMu.Lock()
		s.sessions[sessionID] = wf
		s.sessionsMu.Unlock()

		log.Info("Started booking session", "session", sessionID, "user", userID)
		s.writeJSON(w, http.StatusOK, map[string]string{
			"session_id": sessionID,
			"step":       string(wf.Step()),
		})
	}
}

func (s *Server) SelectClubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := s.session(w, r)
		if !ok {
			return
		}
		clubID := r.URL.Query().Get("club_id")
		if clubID == "" {
			http.Error(w, "Missing 'club_id' parameter", http.StatusBadRequest)
			return
		}

		c, err := s.Clubs.GetByID(clubID)
		if err != nil {
			http.Error(w, "Club not found", http.StatusNotFound)
			return
		}
		if err := wf.SelectClub(c); err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeState(w, wf)
	}
}

func (s *Server) SelectDateTimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := s.session(w, r)
		if !ok {
			return
		}
		date := r.URL.Query().Get("date")
		slotTime := r.URL.Query().Get("slot")
		draft := wf.Draft()
		if draft.Club == nil {
			http.Error(w, "No club selected", http.StatusConflict)
			return
		}

		slots, err := s.Availability.GetTimeSlots(draft.Club.ID, date)
		if err != nil {
			http.Error(w, "Club not found", http.StatusNotFound)
			return
		}
		for _, slot := range slots {
			if slot.Time == slotTime {
				if err := wf.SelectDateTime(date, slot); err != nil {
					s.writeDomainError(w, err)
					return
				}
				s.writeState(w, wf)
				return
			}
		}
		http.Error(w, "Time slot not found", http.StatusNotFound)
	}
}

func (s *Server) SelectCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := s.session(w, r)
		if !ok {
			return
		}
		courtID := r.URL.Query().Get("court_id")
		durationStr := r.URL.Query().Get("duration")

		duration := 1
		if durationStr != "" {
			parsed, err := strconv.Atoi(durationStr)
			if err != nil {
				http.Error(w, "Invalid 'duration' parameter", http.StatusBadRequest)
				return
			}
			duration = parsed
		}

		court, err := s.Clubs.GetCourt(courtID)
		if err != nil {
			http.Error(w, "Court not found", http.StatusNotFound)
			return
		}
		if err := wf.SelectCourtAndDuration(*court, duration); err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeState(w, wf)
	}
}

// ConfirmBookingHandler drives the terminal transition: persist the booking,
// notify, publish the event. Notification and event failures never undo a
// confirmed booking.
func (s *Server) ConfirmBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := s.session(w, r)
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)

		booked, err := wf.Confirm(r.Context())
		if err != nil {
			s.Metrics.IncBookingsFailed()
			s.writeDomainError(w, err)
			return
		}
		s.Metrics.IncBookingsCreated()

		if err := s.Notifier.SendBookingConfirmation(booked, isDryRun); err != nil {
			log.Error("Failed to send booking confirmation", "bookingID", booked.ID, "error", err)
		}
		if !isDryRun {
			event := pubsub.BookingEvent{
				BookingID:  booked.ID,
				ClubID:     booked.ClubID,
				CourtID:    booked.CourtID,
				Date:       booked.Date,
				SlotTime:   booked.SlotTime,
				Duration:   booked.Duration,
				TotalPrice: booked.TotalPrice,
				UserID:     booked.UserID,
			}
			if err := s.pubsub.SendMessage(string(pubsub.EventBookingConfirmed), event); err != nil {
				log.Warn("Failed to publish booking event", "bookingID", booked.ID, "error", err)
			}
		}

		s.writeJSON(w, http.StatusOK, booked)
	}
}

func (s *Server) BackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := s.session(w, r)
		if !ok {
			return
		}
		if err := wf.Back(); err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeState(w, wf)
	}
}

func (s *Server) ResetBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := s.session(w, r)
		if !ok {
			return
		}
		wf.Reset()
		s.writeState(w, wf)
	}
}

func (s *Server) BookingStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := s.session(w, r)
		if !ok {
			return
		}
		s.writeState(w, wf)
	}
}

func (s *Server) ListBookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "Missing 'user_id' parameter", http.StatusBadRequest)
			return
		}
		bookings, err := s.Bookings.GetForUser(userID)
		if err != nil {
			log.Error("Failed to list bookings", "user", userID, "error", err)
			http.Error(w, "Failed to list bookings", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, bookings)
	}
}

func (s *Server) CancelBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID := r.URL.Query().Get("booking_id")
		if bookingID == "" {
			http.Error(w, "Missing 'booking_id' parameter", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		booked, err := s.Bookings.Get(bookingID)
		if err != nil {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		if err := s.Bookings.Cancel(bookingID); err != nil {
			log.Error("Failed to cancel booking", "bookingID", bookingID, "error", err)
			http.Error(w, "Failed to cancel booking", http.StatusInternalServerError)
			return
		}

		if err := s.Notifier.SendBookingCancellation(booked, isDryRun); err != nil {
			log.Error("Failed to send cancellation notice", "bookingID", bookingID, "error", err)
		}
		if !isDryRun {
			if err := s.pubsub.SendMessage(string(pubsub.EventBookingCancelled), pubsub.BookingEvent{
				BookingID: booked.ID,
				ClubID:    booked.ClubID,
				CourtID:   booked.CourtID,
				Date:      booked.Date,
				SlotTime:  booked.SlotTime,
				UserID:    booked.UserID,
			}); err != nil {
				log.Warn("Failed to publish cancellation event", "bookingID", bookingID, "error", err)
			}
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Cancelled booking %s", bookingID)
	}
}

// session resolves the wizard for the 'session' query parameter, writing the
// error response itself when missing or unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*booking.Workflow, bool) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "Missing 'session' parameter", http.StatusBadRequest)
		return nil, false
	}
	s.sessionsMu.Lock()
	wf, ok := s.sessions[sessionID]
	s.sessionsMu.Unlock()
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return nil, false
	}
	return wf, true
}

// wizardState is the JSON shape returned after every wizard transition.
type wizardState struct {
	Step       booking.Step     `json:"step"`
	Draft      booking.Draft    `json:"draft"`
	TotalPrice int64            `json:"total_price"`
	Booking    *booking.Booking `json:"booking,omitempty"`
	FailReason string           `json:"fail_reason,omitempty"`
}

func (s *Server) writeState(w http.ResponseWriter, wf *booking.Workflow) {
	draft := wf.Draft()
	s.writeJSON(w, http.StatusOK, wizardState{
		Step:       wf.Step(),
		Draft:      draft,
		TotalPrice: draft.TotalPrice(),
		Booking:    wf.Booking(),
		FailReason: wf.FailReason(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeDomainError maps domain error types onto HTTP statuses. Validation
// problems are the caller's fault, availability and state conflicts are
// retryable, everything else is a server error.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var bookingValidation *booking.ValidationError
	var matchingValidation *matching.ValidationError
	var unavailable *booking.UnavailableError
	var state *booking.StateError

	switch {
	case errors.As(err, &bookingValidation), errors.As(err, &matchingValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &unavailable), errors.As(err, &state), errors.Is(err, booking.ErrConfirmInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error("Request failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
