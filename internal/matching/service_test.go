package matching_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlkr-dev/courtline/internal/matching"
	"github.com/vlkr-dev/courtline/internal/metrics"
	"github.com/vlkr-dev/courtline/internal/roster"
)

func TestSearchRunsAndCaches(t *testing.T) {
	provider := roster.NewMock()
	provider.GetAllFunc = func() ([]roster.Player, error) {
		return []roster.Player{testPlayer("p1", 4.0), testPlayer("p2", 6.0)}, nil
	}
	metricsSvc := metrics.NewMock()
	svc := matching.NewService(provider, metricsSvc)

	f := matching.Filters{RatingRange: &matching.RatingRange{Min: 3.5, Max: 4.5}}

	first, err := svc.Search(f)
	require.NoError(t, err)
	require.Len(t, first.Players, 1)
	assert.Equal(t, 1, first.TotalCount)
	assert.Equal(t, 1, metricsSvc.SearchRuns())
	assert.Equal(t, 0, metricsSvc.SearchCacheHits())

	// Structurally equal filters hit the cache.
	second, err := svc.Search(matching.Filters{RatingRange: &matching.RatingRange{Min: 3.5, Max: 4.5}})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, metricsSvc.SearchRuns())
	assert.Equal(t, 1, metricsSvc.SearchCacheHits())

	// Different filters miss.
	_, err = svc.Search(matching.Filters{OnlineOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, metricsSvc.SearchRuns())
}

func TestSearchRejectsInvalidFilters(t *testing.T) {
	svc := matching.NewService(roster.NewMock(), metrics.NewMock())

	_, err := svc.Search(matching.Filters{RatingRange: &matching.RatingRange{Min: 6, Max: 2}})

	var vErr *matching.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	provider := roster.NewMock()
	provider.GetAllFunc = func() ([]roster.Player, error) { return nil, nil }
	svc := matching.NewService(provider, metrics.NewMock())

	result, err := svc.Search(matching.Filters{})
	require.NoError(t, err)
	assert.Empty(t, result.Players)
	assert.Zero(t, result.TotalCount)
	assert.Empty(t, result.Suggestions)
}

func TestSearchPropagatesProviderError(t *testing.T) {
	provider := roster.NewMock()
	provider.GetAllFunc = func() ([]roster.Player, error) {
		return nil, errors.New("db gone")
	}
	svc := matching.NewService(provider, metrics.NewMock())

	_, err := svc.Search(matching.Filters{})
	require.Error(t, err)
}

func TestRefreshDropsCache(t *testing.T) {
	calls := 0
	provider := roster.NewMock()
	provider.GetAllFunc = func() ([]roster.Player, error) {
		calls++
		return []roster.Player{testPlayer("p1", 4.0)}, nil
	}
	svc := matching.NewService(provider, metrics.NewMock())

	_, err := svc.Search(matching.Filters{})
	require.NoError(t, err)
	_, err = svc.Search(matching.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	svc.Refresh()

	_, err = svc.Search(matching.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSuggestionsForRanksAgainstUser(t *testing.T) {
	user := testPlayer("u", 4.0)
	provider := roster.NewMock()
	provider.GetAllFunc = func() ([]roster.Player, error) {
		return []roster.Player{user, testPlayer("a", 4.0), testPlayer("b", 7.0)}, nil
	}
	provider.GetFunc = func(playerID string) (*roster.Player, error) {
		require.Equal(t, "u", playerID)
		return &user, nil
	}
	svc := matching.NewService(provider, metrics.NewMock())

	suggestions, err := svc.SuggestionsFor("u", matching.Filters{}, 0)
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "a", suggestions[0].Player.ID)
	assert.Equal(t, "b", suggestions[1].Player.ID)
}

func TestSuggestionsForWithoutUserUsesFallback(t *testing.T) {
	strong := testPlayer("a", 5.0)
	strong.Stats = roster.PlayerStats{MatchesPlayed: 10, MatchesWon: 9}
	provider := roster.NewMock()
	provider.GetAllFunc = func() ([]roster.Player, error) {
		return []roster.Player{strong, testPlayer("b", 4.0)}, nil
	}
	svc := matching.NewService(provider, metrics.NewMock())

	suggestions, err := svc.SuggestionsFor("", matching.Filters{}, 0)
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "a", suggestions[0].Player.ID)
}

func TestFeaturedComesFromFullRoster(t *testing.T) {
	strong := testPlayer("a", 5.0)
	strong.Stats = roster.PlayerStats{MatchesPlayed: 10, MatchesWon: 8}
	provider := roster.NewMock()
	provider.GetAllFunc = func() ([]roster.Player, error) {
		return []roster.Player{strong, testPlayer("b", 4.0)}, nil
	}
	svc := matching.NewService(provider, metrics.NewMock())

	featured, err := svc.Featured()
	require.NoError(t, err)

	require.Len(t, featured, 1)
	assert.Equal(t, "a", featured[0].ID)
}
