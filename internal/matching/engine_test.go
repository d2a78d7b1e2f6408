package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlkr-dev/courtline/internal/matching"
	"github.com/vlkr-dev/courtline/internal/roster"
)

func testPlayer(id string, rating float64) roster.Player {
	return roster.Player{
		ID:        id,
		Name:      "Player " + id,
		Level:     roster.LevelIntermediate,
		Rating:    rating,
		PlayStyle: roster.StyleAllCourt,
		Location:  "Novi Beograd",
		Timezone:  "Europe/Belgrade",
		IsOnline:  true,
	}
}

func TestFilterPlayersRatingRange(t *testing.T) {
	players := []roster.Player{
		testPlayer("p1", 2.0),
		testPlayer("p2", 4.0),
		testPlayer("p3", 6.0),
	}
	f := matching.Filters{RatingRange: &matching.RatingRange{Min: 3.5, Max: 4.5}}

	filtered := matching.FilterPlayers(players, f, time.Now())

	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)
}

func TestFilterPlayersDefaultsToFullScale(t *testing.T) {
	players := []roster.Player{
		testPlayer("p1", 1.0),
		testPlayer("p2", 7.0),
	}

	filtered := matching.FilterPlayers(players, matching.Filters{}, time.Now())

	assert.Len(t, filtered, 2)
}

func TestFilterPlayersPreservesOrder(t *testing.T) {
	players := []roster.Player{
		testPlayer("c", 4.0),
		testPlayer("a", 4.0),
		testPlayer("b", 4.0),
	}

	filtered := matching.FilterPlayers(players, matching.Filters{}, time.Now())

	require.Len(t, filtered, 3)
	assert.Equal(t, "c", filtered[0].ID)
	assert.Equal(t, "a", filtered[1].ID)
	assert.Equal(t, "b", filtered[2].ID)
}

func TestFilterPlayersIdempotent(t *testing.T) {
	players := []roster.Player{
		testPlayer("p1", 2.0),
		testPlayer("p2", 4.0),
	}
	p3 := testPlayer("p3", 4.0)
	p3.IsOnline = false
	players = append(players, p3)

	f := matching.Filters{OnlineOnly: true}
	now := time.Now()

	once := matching.FilterPlayers(players, f, now)
	twice := matching.FilterPlayers(once, f, now)

	assert.Equal(t, once, twice)
}

func TestFilterPlayersOnlineOnly(t *testing.T) {
	online := testPlayer("p1", 4.0)
	offline := testPlayer("p2", 4.0)
	offline.IsOnline = false

	filtered := matching.FilterPlayers([]roster.Player{online, offline}, matching.Filters{OnlineOnly: true}, time.Now())

	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)
}

func TestFilterPlayersAgeRangeSkipsUnknownAge(t *testing.T) {
	withAge := testPlayer("p1", 4.0)
	withAge.Age = 30
	noAge := testPlayer("p2", 4.0)

	f := matching.Filters{AgeRange: &matching.AgeRange{Min: 25, Max: 35}}
	filtered := matching.FilterPlayers([]roster.Player{withAge, noAge}, f, time.Now())

	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)
}

func TestFilterPlayersAvailableTodayUsesPlayerTimezone(t *testing.T) {
	// 2025-07-07 is a Monday. At 23:30 UTC it is already Tuesday in Belgrade.
	now := time.Date(2025, 7, 7, 23, 30, 0, 0, time.UTC)

	p := testPlayer("p1", 4.0)
	p.Schedule = roster.WeeklySchedule{
		"tuesday": {Available: true, TimeSlots: []roster.TimeRange{{Start: "18:00", End: "21:00"}}},
	}

	filtered := matching.FilterPlayers([]roster.Player{p}, matching.Filters{AvailableToday: true}, now)
	require.Len(t, filtered, 1)

	// The same schedule fails for a player whose local day is still Monday.
	p.Timezone = "UTC"
	filtered = matching.FilterPlayers([]roster.Player{p}, matching.Filters{AvailableToday: true}, now)
	assert.Empty(t, filtered)
}

func TestScoreCompatibilityIdenticalPair(t *testing.T) {
	a := testPlayer("a", 4.0)
	b := testPlayer("b", 4.0)
	a.Clubs = []string{"Baseline"}
	b.Clubs = []string{"Baseline"}

	// Same rating, same location, shared club, all-court vs all-court.
	assert.Equal(t, 100, matching.ScoreCompatibility(&a, &b))
}

func TestScoreCompatibilityBounds(t *testing.T) {
	a := testPlayer("a", 1.0)
	b := testPlayer("b", 7.0)
	b.Location = "Zemun"
	b.PlayStyle = roster.StyleDefensive

	score := matching.ScoreCompatibility(&a, &b)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestScoreCompatibilityRatingGapDominates(t *testing.T) {
	a := testPlayer("a", 4.0)
	near := testPlayer("b", 4.5)
	far := testPlayer("c", 7.0)

	assert.Greater(t, matching.ScoreCompatibility(&a, &near), matching.ScoreCompatibility(&a, &far))
}

func TestStyleScoreDefaultsToNeutral(t *testing.T) {
	assert.Equal(t, 50, matching.StyleScore(roster.StyleServeVolley, roster.StyleAggressive))
	assert.Equal(t, 100, matching.StyleScore(roster.StyleAggressive, roster.StyleDefensive))
}

func TestGenerateReasonsCapsAtThree(t *testing.T) {
	user := testPlayer("u", 4.0)
	user.Clubs = []string{"Baseline"}
	candidate := testPlayer("c", 4.2)
	candidate.Clubs = []string{"Baseline"}
	candidate.Verified = true
	candidate.Stats = roster.PlayerStats{MatchesPlayed: 100, MatchesWon: 90}

	reasons := matching.GenerateReasons(&user, &candidate)

	require.Len(t, reasons, 3)
	assert.Equal(t, "similar skill level", reasons[0])
	assert.Equal(t, "same location", reasons[1])
	assert.Equal(t, "plays at Baseline", reasons[2])
}

func TestRankSuggestionsExcludesCurrentUser(t *testing.T) {
	user := testPlayer("u", 4.0)
	candidates := []roster.Player{user, testPlayer("a", 4.0)}

	suggestions := matching.RankSuggestions(candidates, &user, 0)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "a", suggestions[0].Player.ID)
}

func TestRankSuggestionsSortedWithDeterministicTies(t *testing.T) {
	user := testPlayer("u", 4.0)
	candidates := []roster.Player{
		testPlayer("b", 4.0),
		testPlayer("a", 4.0),
		testPlayer("c", 7.0),
	}

	suggestions := matching.RankSuggestions(candidates, &user, 0)

	require.Len(t, suggestions, 3)
	// a and b tie on score; the lower ID wins.
	assert.Equal(t, "a", suggestions[0].Player.ID)
	assert.Equal(t, "b", suggestions[1].Player.ID)
	assert.Equal(t, "c", suggestions[2].Player.ID)
	assert.GreaterOrEqual(t, suggestions[0].Score, suggestions[1].Score)
	assert.GreaterOrEqual(t, suggestions[1].Score, suggestions[2].Score)
}

func TestRankSuggestionsHonorsLimit(t *testing.T) {
	user := testPlayer("u", 4.0)
	candidates := make([]roster.Player, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		candidates = append(candidates, testPlayer(id, 4.0))
	}

	assert.Len(t, matching.RankSuggestions(candidates, &user, 4), 4)
	// Limit <= 0 falls back to the default of 8.
	assert.Len(t, matching.RankSuggestions(candidates, &user, 0), 8)
}

func TestRankSuggestionsFallbackWithoutUser(t *testing.T) {
	strong := testPlayer("a", 5.0)
	strong.Stats = roster.PlayerStats{MatchesPlayed: 100, MatchesWon: 80}
	weak := testPlayer("b", 5.0)
	weak.Stats = roster.PlayerStats{MatchesPlayed: 100, MatchesWon: 50}
	offline := testPlayer("c", 5.0)
	offline.IsOnline = false
	offline.Stats = roster.PlayerStats{MatchesPlayed: 100, MatchesWon: 90}

	suggestions := matching.RankSuggestions([]roster.Player{strong, weak, offline}, nil, 0)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "a", suggestions[0].Player.ID)
	// 80% win rate maps to 75 + round(25 * 20 / 40) = 88.
	assert.Equal(t, 88, suggestions[0].Score)
	assert.Equal(t, matching.QualityGood, suggestions[0].Quality)
}

func TestRankSuggestionsFallbackCapsAtFive(t *testing.T) {
	candidates := make([]roster.Player, 0, 8)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		p := testPlayer(id, 5.0)
		p.Stats = roster.PlayerStats{MatchesPlayed: 10, MatchesWon: 9}
		candidates = append(candidates, p)
	}

	suggestions := matching.RankSuggestions(candidates, nil, 0)

	require.Len(t, suggestions, 5)
	// Roster order, not score order, decides who makes the cut.
	assert.Equal(t, "a", suggestions[0].Player.ID)
	assert.Equal(t, "e", suggestions[4].Player.ID)
}

func TestFeaturedPlayers(t *testing.T) {
	mk := func(id string, rating float64, won int, online bool) roster.Player {
		p := testPlayer(id, rating)
		p.IsOnline = online
		p.Stats = roster.PlayerStats{MatchesPlayed: 100, MatchesWon: won}
		return p
	}
	players := []roster.Player{
		mk("a", 4.0, 80, true),
		mk("b", 6.0, 90, true),
		mk("c", 5.0, 75, true),
		mk("d", 7.0, 95, false),
		mk("e", 3.0, 72, true),
		mk("f", 2.0, 50, true),
	}

	featured := matching.FeaturedPlayers(players)

	require.Len(t, featured, 3)
	assert.Equal(t, "b", featured[0].ID)
	assert.Equal(t, "c", featured[1].ID)
	assert.Equal(t, "a", featured[2].ID)
}

func TestQualityBuckets(t *testing.T) {
	assert.Equal(t, matching.QualityExcellent, matching.QualityFor(80))
	assert.Equal(t, matching.QualityGood, matching.QualityFor(79))
	assert.Equal(t, matching.QualityGood, matching.QualityFor(60))
	assert.Equal(t, matching.QualityFair, matching.QualityFor(59))
}

func TestValidateFilters(t *testing.T) {
	assert.NoError(t, matching.ValidateFilters(matching.Filters{}))

	var vErr *matching.ValidationError

	err := matching.ValidateFilters(matching.Filters{RatingRange: &matching.RatingRange{Min: 5, Max: 3}})
	require.ErrorAs(t, err, &vErr)

	err = matching.ValidateFilters(matching.Filters{RatingRange: &matching.RatingRange{Min: 0.5, Max: 8}})
	require.ErrorAs(t, err, &vErr)

	err = matching.ValidateFilters(matching.Filters{AgeRange: &matching.AgeRange{Min: 40, Max: 20}})
	require.ErrorAs(t, err, &vErr)

	err = matching.ValidateFilters(matching.Filters{MaxDistanceKm: -1})
	require.ErrorAs(t, err, &vErr)
}
