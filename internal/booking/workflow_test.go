package booking_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlkr-dev/courtline/internal/availability"
	"github.com/vlkr-dev/courtline/internal/booking"
	"github.com/vlkr-dev/courtline/internal/club"
)

func testClub() *club.Club {
	return &club.Club{
		ID:   "baseline",
		Name: "Baseline",
		Courts: []club.Court{
			{ID: "baseline-court-1", ClubID: "baseline", Number: 1, IsAvailable: true, PricePerHour: 2000},
		},
	}
}

func testSlot() availability.TimeSlot {
	return availability.TimeSlot{Time: "18:00", Available: true, Price: 2000, CourtID: "baseline-court-1"}
}

func advanceToConfirmation(t *testing.T, wf *booking.Workflow) {
	t.Helper()
	require.NoError(t, wf.SelectClub(testClub()))
	require.NoError(t, wf.SelectDateTime("2025-07-10", testSlot()))
	require.NoError(t, wf.SelectCourtAndDuration(testClub().Courts[0], 2))
}

func TestWorkflowHappyPath(t *testing.T) {
	store := booking.NewMockStore()
	wf := booking.NewWorkflow(store, "user-1")

	assert.Equal(t, booking.StepClubSelection, wf.Step())
	advanceToConfirmation(t, wf)
	assert.Equal(t, booking.StepConfirmation, wf.Step())

	// Two hours at 2000 per hour.
	draft := wf.Draft()
	assert.Equal(t, int64(4000), draft.TotalPrice())

	booked, err := wf.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, booking.StepConfirmed, wf.Step())
	assert.Equal(t, int64(4000), booked.TotalPrice)
	assert.Equal(t, booking.StatusConfirmed, booked.Status)
	require.Len(t, store.CreateCalls, 1)
	assert.Equal(t, "user-1", store.CreateCalls[0].UserID)
}

func TestWorkflowStepsMustRunInOrder(t *testing.T) {
	wf := booking.NewWorkflow(booking.NewMockStore(), "user-1")

	var stateErr *booking.StateError
	err := wf.SelectDateTime("2025-07-10", testSlot())
	require.ErrorAs(t, err, &stateErr)

	err = wf.SelectCourtAndDuration(testClub().Courts[0], 1)
	require.ErrorAs(t, err, &stateErr)

	_, err = wf.Confirm(context.Background())
	require.ErrorAs(t, err, &stateErr)
}

func TestWorkflowRejectsUnavailableSlot(t *testing.T) {
	wf := booking.NewWorkflow(booking.NewMockStore(), "user-1")
	require.NoError(t, wf.SelectClub(testClub()))

	slot := testSlot()
	slot.Available = false

	var unavailable *booking.UnavailableError
	err := wf.SelectDateTime("2025-07-10", slot)
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, booking.StepDateTimeSelection, wf.Step())
}

func TestWorkflowRejectsUnavailableCourt(t *testing.T) {
	wf := booking.NewWorkflow(booking.NewMockStore(), "user-1")
	require.NoError(t, wf.SelectClub(testClub()))
	require.NoError(t, wf.SelectDateTime("2025-07-10", testSlot()))

	court := testClub().Courts[0]
	court.IsAvailable = false

	var unavailable *booking.UnavailableError
	err := wf.SelectCourtAndDuration(court, 1)
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, booking.StepCourtAndDuration, wf.Step())
}

func TestWorkflowTotalPriceWithoutSlotIsZero(t *testing.T) {
	wf := booking.NewWorkflow(booking.NewMockStore(), "user-1")
	require.NoError(t, wf.SelectClub(testClub()))

	draft := wf.Draft()
	assert.Zero(t, draft.TotalPrice())
}

func TestWorkflowDurationDefaultsToOneHour(t *testing.T) {
	d := booking.Draft{TimeSlot: &availability.TimeSlot{Price: 1500, Available: true}}
	assert.Equal(t, int64(1500), d.TotalPrice())
}

func TestWorkflowFailedConfirmKeepsDraftAndRetries(t *testing.T) {
	store := booking.NewMockStore()
	fail := true
	store.CreateFunc = func(ctx context.Context, draft booking.Draft, userID string) (*booking.Booking, error) {
		if fail {
			return nil, &booking.UnavailableError{Resource: "court", ID: draft.Court.ID}
		}
		return &booking.Booking{ID: "b1", TotalPrice: draft.TotalPrice(), Status: booking.StatusConfirmed}, nil
	}
	wf := booking.NewWorkflow(store, "user-1")
	advanceToConfirmation(t, wf)

	_, err := wf.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, booking.StepFailed, wf.Step())
	assert.NotEmpty(t, wf.FailReason())

	// The draft survives the failure, so retrying needs no re-selection.
	assert.NotNil(t, wf.Draft().Court)

	fail = false
	booked, err := wf.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, booking.StepConfirmed, wf.Step())
	assert.Equal(t, "b1", booked.ID)
	assert.Empty(t, wf.FailReason())
}

func TestWorkflowSingleFlightConfirm(t *testing.T) {
	store := booking.NewMockStore()
	entered := make(chan struct{})
	release := make(chan struct{})
	store.CreateFunc = func(ctx context.Context, draft booking.Draft, userID string) (*booking.Booking, error) {
		close(entered)
		<-release
		return &booking.Booking{ID: "b1", Status: booking.StatusConfirmed}, nil
	}
	wf := booking.NewWorkflow(store, "user-1")
	advanceToConfirmation(t, wf)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := wf.Confirm(context.Background())
		assert.NoError(t, err)
	}()

	<-entered
	_, err := wf.Confirm(context.Background())
	require.ErrorIs(t, err, booking.ErrConfirmInFlight)

	close(release)
	wg.Wait()
	assert.Equal(t, booking.StepConfirmed, wf.Step())
	assert.Len(t, store.CreateCalls, 1)
}

func TestWorkflowBackKeepsValues(t *testing.T) {
	wf := booking.NewWorkflow(booking.NewMockStore(), "user-1")
	advanceToConfirmation(t, wf)

	require.NoError(t, wf.Back())
	assert.Equal(t, booking.StepCourtAndDuration, wf.Step())
	assert.NotNil(t, wf.Draft().Court)

	require.NoError(t, wf.Back())
	assert.Equal(t, booking.StepDateTimeSelection, wf.Step())
	assert.NotNil(t, wf.Draft().TimeSlot)

	require.NoError(t, wf.Back())
	assert.Equal(t, booking.StepClubSelection, wf.Step())
	assert.NotNil(t, wf.Draft().Club)

	var stateErr *booking.StateError
	require.ErrorAs(t, wf.Back(), &stateErr)
}

func TestWorkflowReselectingDateInvalidatesCourt(t *testing.T) {
	wf := booking.NewWorkflow(booking.NewMockStore(), "user-1")
	advanceToConfirmation(t, wf)

	require.NoError(t, wf.Back())
	require.NoError(t, wf.Back())

	slot := testSlot()
	slot.Time = "19:00"
	require.NoError(t, wf.SelectDateTime("2025-07-11", slot))

	draft := wf.Draft()
	assert.Nil(t, draft.Court)
	assert.Zero(t, draft.Duration)
	assert.Equal(t, "2025-07-11", draft.Date)
}

func TestWorkflowReset(t *testing.T) {
	wf := booking.NewWorkflow(booking.NewMockStore(), "user-1")
	advanceToConfirmation(t, wf)

	wf.Reset()

	assert.Equal(t, booking.StepClubSelection, wf.Step())
	assert.Equal(t, booking.Draft{}, wf.Draft())
	assert.Nil(t, wf.Booking())
}
