package matching

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vlkr-dev/courtline/internal/metrics"
	"github.com/vlkr-dev/courtline/internal/roster"
	"github.com/vmihailenco/msgpack/v5"
)

// Service runs roster searches on top of a Provider snapshot and caches
// results keyed by the exact filter specification. The roster is treated as
// static input per call, so cached entries need no invalidation beyond an
// explicit refresh.
type Service struct {
	provider roster.Provider
	metrics  metrics.Metrics
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]*SearchResult
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the reference clock used for availability filters.
// Tests inject a fixed time here.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new search Service.
func NewService(provider roster.Provider, m metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		metrics:  m,
		now:      time.Now,
		cache:    make(map[string]*SearchResult),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search filters the roster and ranks suggestions for it. Filters are
// validated before the engine runs; an empty result is a valid result, not
// an error.
func (s *Service) Search(f Filters) (*SearchResult, error) {
	if err := ValidateFilters(f); err != nil {
		return nil, err
	}

	key, err := cacheKey(f)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		s.metrics.IncSearchCacheHits()
		log.Debug("Search served from cache")
		return cached, nil
	}

	start := time.Now()
	s.metrics.IncSearchRuns()

	players, err := s.provider.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	filtered := FilterPlayers(players, f, s.now())
	result := &SearchResult{
		Players:     filtered,
		TotalCount:  len(filtered),
		Suggestions: RankSuggestions(filtered, nil, DefaultSuggestionLimit),
		Filters:     f,
	}

	s.mu.Lock()
	s.cache[key] = result
	s.mu.Unlock()

	s.metrics.ObserveSearchDuration(time.Since(start).Seconds())
	log.Info("Search completed", "matched", len(filtered), "total", len(players))
	return result, nil
}

// SuggestionsFor filters the roster and ranks candidates against the given
// user. An empty userID selects the deterministic popularity fallback.
func (s *Service) SuggestionsFor(userID string, f Filters, limit int) ([]SuggestedMatch, error) {
	if err := ValidateFilters(f); err != nil {
		return nil, err
	}

	players, err := s.provider.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var currentUser *roster.Player
	if userID != "" {
		currentUser, err = s.provider.Get(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load current user: %w", err)
		}
	}

	filtered := FilterPlayers(players, f, s.now())
	return RankSuggestions(filtered, currentUser, limit), nil
}

// Featured returns the current featured players from the full roster.
func (s *Service) Featured() ([]roster.Player, error) {
	players, err := s.provider.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return FeaturedPlayers(players), nil
}

// Refresh drops all cached search results, e.g. after the roster changed.
func (s *Service) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*SearchResult)
}

// cacheKey encodes the filter specification so structurally equal filters
// share a cache entry.
func cacheKey(f Filters) (string, error) {
	b, err := msgpack.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode filter cache key: %w", err)
	}
	return string(b), nil
}
