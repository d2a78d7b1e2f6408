package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {

	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	if teardown != nil {
		defer teardown()
	} else {
		defer db.Close()
	}

	for _, table := range []string{"players", "player_stats", "clubs", "courts", "bookings"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	// Migrations track their own version, so a second run is a no-op.
	require.NoError(t, migrate(db, "../../migrations"))
}
