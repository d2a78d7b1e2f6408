package booking

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// store persists bookings in the club database.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new booking Store.
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Create validates availability and inserts the booking in one transaction.
// The court is re-checked inside the transaction: it may have gone away
// between selection and confirmation. On any failure the transaction rolls
// back, leaving nothing behind, so the caller may retry safely.
func (s *store) Create(ctx context.Context, draft Draft, userID string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if missing := draft.missingFields(); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &ServiceError{Op: "create booking", Err: err}
	}
	defer tx.Rollback()

	var available int
	err = tx.QueryRowContext(ctx, "SELECT available FROM courts WHERE id = ?", draft.Court.ID).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &UnavailableError{Resource: "court", ID: draft.Court.ID}
		}
		return nil, &ServiceError{Op: "create booking", Err: err}
	}
	if available == 0 {
		return nil, &UnavailableError{Resource: "court", ID: draft.Court.ID}
	}

	// The same court cannot be booked twice for one slot.
	var clash int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM bookings
		WHERE court_id = ? AND booking_date = ? AND slot_time = ? AND status != ?
	`, draft.Court.ID, draft.Date, draft.TimeSlot.Time, string(StatusCancelled)).Scan(&clash)
	if err != nil {
		return nil, &ServiceError{Op: "create booking", Err: err}
	}
	if clash > 0 {
		return nil, &UnavailableError{Resource: "time slot", ID: draft.TimeSlot.Time}
	}

	booked := &Booking{
		ID:         uuid.New().String(),
		ClubID:     draft.Club.ID,
		ClubName:   draft.Club.Name,
		CourtID:    draft.Court.ID,
		Date:       draft.Date,
		SlotTime:   draft.TimeSlot.Time,
		Duration:   draft.EffectiveDuration(),
		UnitPrice:  draft.TimeSlot.Price,
		TotalPrice: draft.TotalPrice(),
		Status:     StatusConfirmed,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, club_id, court_id, booking_date, slot_time, duration, unit_price, total_price, status, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, booked.ID, booked.ClubID, booked.CourtID, booked.Date, booked.SlotTime,
		booked.Duration, booked.UnitPrice, booked.TotalPrice, string(booked.Status),
		booked.UserID, booked.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, &ServiceError{Op: "create booking", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &ServiceError{Op: "create booking", Err: err}
	}

	log.Info("Created booking", "bookingID", booked.ID, "clubID", booked.ClubID, "court", booked.CourtID, "total", booked.TotalPrice)
	return booked, nil
}

// Get retrieves a booking by ID.
func (s *store) Get(bookingID string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT b.id, b.club_id, c.name, b.court_id, b.booking_date, b.slot_time, b.duration, b.unit_price, b.total_price, b.status, b.user_id, b.created_at
		FROM bookings b JOIN clubs c ON b.club_id = c.id
		WHERE b.id = ?
	`, bookingID)

	booked, err := scanBooking(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("booking not found: %s", bookingID)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booked, nil
}

// GetForUser lists a user's bookings, newest first.
func (s *store) GetForUser(userID string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT b.id, b.club_id, c.name, b.court_id, b.booking_date, b.slot_time, b.duration, b.unit_price, b.total_price, b.status, b.user_id, b.created_at
		FROM bookings b JOIN clubs c ON b.club_id = c.id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		booked, err := scanBooking(rows)
		if err != nil {
			log.Error("Failed to scan booking row", "error", err)
			continue
		}
		bookings = append(bookings, *booked)
	}
	return bookings, nil
}

// Cancel marks a booking cancelled. The stored total price is untouched.
func (s *store) Cancel(bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE bookings SET status = ? WHERE id = ?", string(StatusCancelled), bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking not found: %s", bookingID)
	}
	log.Info("Cancelled booking", "bookingID", bookingID)
	return nil
}

func scanBooking(scanner interface{ Scan(...any) error }) (*Booking, error) {
	var b Booking
	var status string
	var createdAt int64

	err := scanner.Scan(
		&b.ID, &b.ClubID, &b.ClubName, &b.CourtID, &b.Date, &b.SlotTime,
		&b.Duration, &b.UnitPrice, &b.TotalPrice, &status, &b.UserID, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = Status(status)
	b.CreatedAt = time.Unix(createdAt, 0)
	return &b, nil
}
