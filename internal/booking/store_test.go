package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlkr-dev/courtline/internal/booking"
	"github.com/vlkr-dev/courtline/internal/club"
	"github.com/vlkr-dev/courtline/internal/database"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (booking.Store, club.Store, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return booking.NewStore(db), club.New(db), teardown
}

func seedClub(t *testing.T, clubs club.Store) *club.Club {
	t.Helper()
	c := *testClub()
	require.NoError(t, clubs.UpsertClub(c))
	return &c
}

func completeDraft(c *club.Club) booking.Draft {
	slot := testSlot()
	return booking.Draft{
		Club:     c,
		Date:     "2025-07-10",
		TimeSlot: &slot,
		Court:    &c.Courts[0],
		Duration: 2,
	}
}

func TestCreateBooking(t *testing.T) {
	store, clubs, teardown := setupTestDB(t)
	defer teardown()
	c := seedClub(t, clubs)

	booked, err := store.Create(context.Background(), completeDraft(c), "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, booked.ID)
	assert.Equal(t, int64(4000), booked.TotalPrice)
	assert.Equal(t, int64(2000), booked.UnitPrice)
	assert.Equal(t, booking.StatusConfirmed, booked.Status)

	fetched, err := store.Get(booked.ID)
	require.NoError(t, err)
	assert.Equal(t, booked.ID, fetched.ID)
	assert.Equal(t, "Baseline", fetched.ClubName)
	assert.Equal(t, int64(4000), fetched.TotalPrice)
}

func TestCreateBookingRejectsIncompleteDraft(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	var vErr *booking.ValidationError
	_, err := store.Create(context.Background(), booking.Draft{}, "user-1")
	require.ErrorAs(t, err, &vErr)
}

func TestCreateBookingRechecksCourtAvailability(t *testing.T) {
	store, clubs, teardown := setupTestDB(t)
	defer teardown()
	c := seedClub(t, clubs)

	// The court goes away between selection and confirmation.
	require.NoError(t, clubs.SetCourtAvailability(c.Courts[0].ID, false))

	var unavailable *booking.UnavailableError
	_, err := store.Create(context.Background(), completeDraft(c), "user-1")
	require.ErrorAs(t, err, &unavailable)

	// Nothing was left behind, so a retry after re-selection succeeds.
	require.NoError(t, clubs.SetCourtAvailability(c.Courts[0].ID, true))
	_, err = store.Create(context.Background(), completeDraft(c), "user-1")
	require.NoError(t, err)
}

func TestCreateBookingRejectsDoubleBooking(t *testing.T) {
	store, clubs, teardown := setupTestDB(t)
	defer teardown()
	c := seedClub(t, clubs)

	_, err := store.Create(context.Background(), completeDraft(c), "user-1")
	require.NoError(t, err)

	var unavailable *booking.UnavailableError
	_, err = store.Create(context.Background(), completeDraft(c), "user-2")
	require.ErrorAs(t, err, &unavailable)

	// A different slot on the same court is fine.
	draft := completeDraft(c)
	other := testSlot()
	other.Time = "19:00"
	draft.TimeSlot = &other
	_, err = store.Create(context.Background(), draft, "user-2")
	require.NoError(t, err)
}

func TestGetForUser(t *testing.T) {
	store, clubs, teardown := setupTestDB(t)
	defer teardown()
	c := seedClub(t, clubs)

	_, err := store.Create(context.Background(), completeDraft(c), "user-1")
	require.NoError(t, err)

	draft := completeDraft(c)
	other := testSlot()
	other.Time = "20:00"
	draft.TimeSlot = &other
	_, err = store.Create(context.Background(), draft, "user-1")
	require.NoError(t, err)

	bookings, err := store.GetForUser("user-1")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	bookings, err = store.GetForUser("user-2")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCancelBooking(t *testing.T) {
	store, clubs, teardown := setupTestDB(t)
	defer teardown()
	c := seedClub(t, clubs)

	booked, err := store.Create(context.Background(), completeDraft(c), "user-1")
	require.NoError(t, err)

	require.NoError(t, store.Cancel(booked.ID))

	fetched, err := store.Get(booked.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, fetched.Status)
	// The stored total is untouched by cancellation.
	assert.Equal(t, int64(4000), fetched.TotalPrice)

	// A cancelled booking frees its slot.
	_, err = store.Create(context.Background(), completeDraft(c), "user-2")
	require.NoError(t, err)

	require.Error(t, store.Cancel("no-such-booking"))
}
