package matching

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vlkr-dev/courtline/internal/roster"
)

// Compatibility score weights. The four-factor structure is fixed; the
// weights themselves are tunable.
const (
	weightRating   = 0.40
	weightLocation = 0.25
	weightClub     = 0.20
	weightStyle    = 0.15
)

// DefaultSuggestionLimit caps ranked suggestions when the caller does not
// ask for a specific limit.
const DefaultSuggestionLimit = 8

// styleCompatibility scores how well two play styles pair up. The matrix is
// intentionally not symmetric everywhere and not complete; unlisted pairs
// score the neutral 50. Tunable.
var styleCompatibility = map[roster.PlayStyle]map[roster.PlayStyle]int{
	roster.StyleAggressive: {
		roster.StyleDefensive:    100,
		roster.StyleAllCourt:     90,
		roster.StyleBaseline:     70,
		roster.StyleAggressive:   60,
		roster.StyleRecreational: 50,
	},
	roster.StyleDefensive: {
		roster.StyleAggressive:   100,
		roster.StyleBaseline:     90,
		roster.StyleAllCourt:     80,
		roster.StyleRecreational: 70,
		roster.StyleDefensive:    60,
	},
	roster.StyleAllCourt: {
		roster.StyleAllCourt:     100,
		roster.StyleAggressive:   90,
		roster.StyleBaseline:     85,
		roster.StyleDefensive:    80,
		roster.StyleRecreational: 75,
	},
	roster.StyleBaseline: {
		roster.StyleBaseline:     90,
		roster.StyleDefensive:    90,
		roster.StyleAllCourt:     85,
		roster.StyleRecreational: 80,
		roster.StyleAggressive:   70,
	},
	roster.StyleRecreational: {
		roster.StyleRecreational: 100,
		roster.StyleBaseline:     80,
		roster.StyleAllCourt:     75,
		roster.StyleDefensive:    70,
		roster.StyleAggressive:   50,
	},
}

// StyleScore looks up the pairing score for two play styles, defaulting to
// the neutral 50 for unlisted pairs.
func StyleScore(a, b roster.PlayStyle) int {
	if row, ok := styleCompatibility[a]; ok {
		if score, ok := row[b]; ok {
			return score
		}
	}
	return 50
}

// FilterPlayers applies every active predicate to the roster snapshot and
// returns the survivors in roster order. The roster is never mutated; the
// predicates are commutative. Availability days are resolved at the given
// reference time, in each candidate's own declared timezone.
func FilterPlayers(players []roster.Player, f Filters, now time.Time) []roster.Player {
	rr := f.EffectiveRatingRange()
	out := make([]roster.Player, 0, len(players))

	for _, p := range players {
		if f.OnlineOnly && !p.IsOnline {
			continue
		}
		if len(f.SkillLevels) > 0 && !containsLevel(f.SkillLevels, p.Level) {
			continue
		}
		if p.Rating < rr.Min || p.Rating > rr.Max {
			continue
		}
		if len(f.Locations) > 0 && !containsString(f.Locations, p.Location) {
			continue
		}
		if f.AgeRange != nil {
			if p.Age == 0 || p.Age < f.AgeRange.Min || p.Age > f.AgeRange.Max {
				continue
			}
		}
		if len(f.PlayStyles) > 0 && !containsStyle(f.PlayStyles, p.PlayStyle) {
			continue
		}
		if f.AvailableToday && !p.AvailableOn(localWeekday(&p, now)) {
			continue
		}
		if f.AvailableThisWeek && !availableAnyDay(&p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// localWeekday returns the lowercase weekday name at the reference time in
// the player's declared timezone, falling back to UTC for unknown zones.
func localWeekday(p *roster.Player, now time.Time) string {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		log.Warn("Unknown player timezone, falling back to UTC", "playerID", p.ID, "timezone", p.Timezone)
		loc = time.UTC
	}
	return strings.ToLower(now.In(loc).Weekday().String())
}

func availableAnyDay(p *roster.Player) bool {
	for _, day := range p.Schedule {
		if day.Available && len(day.TimeSlots) > 0 {
			return true
		}
	}
	return false
}

// ScoreCompatibility computes the weighted compatibility of two players as
// an integer in [0,100]. Factors: rating similarity (0.40), same location
// (0.25), shared club (0.20), play-style pairing (0.15).
func ScoreCompatibility(a, b *roster.Player) int {
	ratingDiff := math.Abs(a.Rating - b.Rating)
	ratingScore := math.Max(0, 100-ratingDiff*25)

	locationScore := 50.0
	if a.Location == b.Location {
		locationScore = 100
	}

	clubScore := 0.0
	if len(a.SharedClubs(b)) > 0 {
		clubScore = 100
	}

	styleScore := float64(StyleScore(a.PlayStyle, b.PlayStyle))

	score := ratingScore*weightRating +
		locationScore*weightLocation +
		clubScore*weightClub +
		styleScore*weightStyle
	return int(math.Round(score))
}

// GenerateReasons produces up to three human-readable justifications for a
// pairing, in fixed priority order.
func GenerateReasons(user, candidate *roster.Player) []string {
	var reasons []string

	if math.Abs(user.Rating-candidate.Rating) <= 0.5 {
		reasons = append(reasons, "similar skill level")
	}
	if user.Location == candidate.Location {
		reasons = append(reasons, "same location")
	}
	if shared := user.SharedClubs(candidate); len(shared) > 0 {
		reasons = append(reasons, "plays at "+shared[0])
	}
	if candidate.IsOnline {
		reasons = append(reasons, "online now")
	}
	if candidate.Stats.WinRate() > 70 {
		reasons = append(reasons, "strong win rate")
	}
	if candidate.Verified {
		reasons = append(reasons, "verified player")
	}
	if StyleScore(user.PlayStyle, candidate.PlayStyle) > 80 {
		reasons = append(reasons, "compatible play style")
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

// RankSuggestions scores every candidate against the current user and
// returns the top suggestions, sorted by descending score with ties broken
// by candidate ID for determinism. A limit <= 0 uses the default of 8.
//
// With no current user a deterministic popularity fallback applies: online
// candidates with a win rate above 60%, in roster order, capped at 5, with
// a score derived from the win rate into [75,100].
func RankSuggestions(candidates []roster.Player, currentUser *roster.Player, limit int) []SuggestedMatch {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	if currentUser == nil {
		return popularitySuggestions(candidates)
	}

	suggestions := make([]SuggestedMatch, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.ID == currentUser.ID {
			continue
		}
		score := ScoreCompatibility(currentUser, c)
		suggestions = append(suggestions, SuggestedMatch{
			Player:  *c,
			Score:   score,
			Reasons: GenerateReasons(currentUser, c),
			Quality: QualityFor(score),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Player.ID < suggestions[j].Player.ID
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func popularitySuggestions(candidates []roster.Player) []SuggestedMatch {
	const fallbackCap = 5
	suggestions := make([]SuggestedMatch, 0, fallbackCap)
	for i := range candidates {
		c := &candidates[i]
		winRate := c.Stats.WinRate()
		if !c.IsOnline || winRate <= 60 {
			continue
		}
		suggestions = append(suggestions, SuggestedMatch{
			Player:  *c,
			Score:   popularityScore(winRate),
			Reasons: []string{"strong record", "online now", "active player"},
			Quality: QualityGood,
		})
		if len(suggestions) == fallbackCap {
			break
		}
	}
	return suggestions
}

// popularityScore maps a win rate above 60% onto [75,100]. Deterministic by
// construction so the fallback path is testable.
func popularityScore(winRate float64) int {
	score := 75 + math.Round(25*(winRate-60)/40)
	if score > 100 {
		score = 100
	}
	if score < 75 {
		score = 75
	}
	return int(score)
}

// FeaturedPlayers returns the top online players with a win rate above 70%,
// sorted by rating descending, capped at 3.
func FeaturedPlayers(players []roster.Player) []roster.Player {
	featured := make([]roster.Player, 0, len(players))
	for _, p := range players {
		if p.IsOnline && p.Stats.WinRate() > 70 {
			featured = append(featured, p)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].Rating > featured[j].Rating
	})
	if len(featured) > 3 {
		featured = featured[:3]
	}
	return featured
}

func containsLevel(set []roster.SkillLevel, l roster.SkillLevel) bool {
	for _, s := range set {
		if s == l {
			return true
		}
	}
	return false
}

func containsStyle(set []roster.PlayStyle, st roster.PlayStyle) bool {
	for _, s := range set {
		if s == st {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
