package club_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlkr-dev/courtline/internal/club"
	"github.com/vlkr-dev/courtline/internal/database"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.Store, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, teardown
}

func clubFixture() club.Club {
	return club.Club{
		ID:           "baseline",
		Name:         "Baseline",
		Location:     "Novi Beograd",
		Amenities:    []string{"parking", "locker rooms"},
		DistanceKm:   2.3,
		PricePerHour: 2000,
		Courts: []club.Court{
			{ID: "baseline-court-1", ClubID: "baseline", Number: 1, Surface: club.SurfaceClay, Indoor: true, IsAvailable: true, PricePerHour: 2000},
			{ID: "baseline-court-2", ClubID: "baseline", Number: 2, Surface: club.SurfaceHard, Indoor: false, IsAvailable: false, PricePerHour: 1800},
		},
	}
}

func TestUpsertAndGetClub(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	c := clubFixture()
	require.NoError(t, store.UpsertClub(c))

	got, err := store.GetByID("baseline")
	require.NoError(t, err)

	assert.Equal(t, "Baseline", got.Name)
	assert.Equal(t, []string{"parking", "locker rooms"}, got.Amenities)
	require.Len(t, got.Courts, 2)
	assert.Equal(t, 1, got.AvailableCourts())

	// Upsert updates in place.
	c.PricePerHour = 2200
	require.NoError(t, store.UpsertClub(c))
	got, err = store.GetByID("baseline")
	require.NoError(t, err)
	assert.Equal(t, int64(2200), got.PricePerHour)

	all, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Courts, 2)
}

func TestGetUnknownClub(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetByID("ghost")
	require.Error(t, err)
}

func TestGetCourt(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	require.NoError(t, store.UpsertClub(clubFixture()))

	court, err := store.GetCourt("baseline-court-2")
	require.NoError(t, err)
	assert.Equal(t, 2, court.Number)
	assert.Equal(t, club.SurfaceHard, court.Surface)
	assert.False(t, court.IsAvailable)

	_, err = store.GetCourt("ghost-court")
	require.Error(t, err)
}

func TestSetCourtAvailability(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	require.NoError(t, store.UpsertClub(clubFixture()))

	require.NoError(t, store.SetCourtAvailability("baseline-court-1", false))

	court, err := store.GetCourt("baseline-court-1")
	require.NoError(t, err)
	assert.False(t, court.IsAvailable)

	got, err := store.GetByID("baseline")
	require.NoError(t, err)
	assert.Zero(t, got.AvailableCourts())
}

func TestCourtByID(t *testing.T) {
	c := clubFixture()

	court := c.CourtByID("baseline-court-2")
	require.NotNil(t, court)
	assert.Equal(t, 2, court.Number)

	assert.Nil(t, c.CourtByID("ghost"))
}

func TestClearClubs(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	require.NoError(t, store.UpsertClub(clubFixture()))

	store.Clear()

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}
