package matching

import (
	"github.com/vlkr-dev/courtline/internal/roster"
)

// Rating scale bounds for the NTRP-style rating.
const (
	RatingMin = 1.0
	RatingMax = 7.0
)

// RatingRange bounds the accepted ratings, inclusive.
type RatingRange struct {
	Min float64 `json:"min" msgpack:"min"`
	Max float64 `json:"max" msgpack:"max"`
}

// AgeRange bounds the accepted ages, inclusive.
type AgeRange struct {
	Min int `json:"min" msgpack:"min"`
	Max int `json:"max" msgpack:"max"`
}

// Filters is the search specification applied to the roster. Empty sets mean
// no restriction; the rating range always applies, defaulting to the full
// scale when unset.
type Filters struct {
	SkillLevels       []roster.SkillLevel `json:"skill_levels" msgpack:"skill_levels"`
	RatingRange       *RatingRange        `json:"rating_range,omitempty" msgpack:"rating_range"`
	Locations         []string            `json:"locations" msgpack:"locations"`
	MatchTypes        []string            `json:"match_types" msgpack:"match_types"`
	OnlineOnly        bool                `json:"online_only" msgpack:"online_only"`
	AvailableToday    bool                `json:"available_today" msgpack:"available_today"`
	AvailableThisWeek bool                `json:"available_this_week" msgpack:"available_this_week"`
	AgeRange          *AgeRange           `json:"age_range,omitempty" msgpack:"age_range"`
	PlayStyles        []roster.PlayStyle  `json:"play_styles,omitempty" msgpack:"play_styles"`
	MaxDistanceKm     float64             `json:"max_distance_km,omitempty" msgpack:"max_distance_km"`
}

// EffectiveRatingRange returns the rating bounds with the full scale as the
// default when no range was supplied.
func (f Filters) EffectiveRatingRange() RatingRange {
	if f.RatingRange == nil {
		return RatingRange{Min: RatingMin, Max: RatingMax}
	}
	return *f.RatingRange
}

// MatchQuality is the qualitative bucket of a compatibility score.
type MatchQuality string

const (
	QualityExcellent MatchQuality = "excellent"
	QualityGood      MatchQuality = "good"
	QualityFair      MatchQuality = "fair"
)

// QualityFor buckets a compatibility score: excellent >= 80, good >= 60,
// fair below.
func QualityFor(score int) MatchQuality {
	switch {
	case score >= 80:
		return QualityExcellent
	case score >= 60:
		return QualityGood
	default:
		return QualityFair
	}
}

// SuggestedMatch is a scored candidate pairing.
type SuggestedMatch struct {
	Player         roster.Player `json:"player"`
	Score          int           `json:"compatibility_score"`
	Reasons        []string      `json:"reasons"`
	Quality        MatchQuality  `json:"quality"`
	AvailableSlots []string      `json:"available_slots,omitempty"`
}

// SearchResult is the output of one roster search.
type SearchResult struct {
	Players     []roster.Player  `json:"players"`
	TotalCount  int              `json:"total_count"`
	Suggestions []SuggestedMatch `json:"suggested_matches"`
	Filters     Filters          `json:"filters"`
}

// ValidationError reports invalid filter values. It is always recoverable:
// the caller fixes the filters and retries.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	msg := "invalid filters"
	for i, f := range e.Fields {
		if i == 0 {
			msg += ": " + f
		} else {
			msg += ", " + f
		}
	}
	return msg
}

// ValidateFilters rejects filter specifications the engine must never see,
// such as an inverted rating or age range. Inverted input is an error, never
// silently accepted.
func ValidateFilters(f Filters) error {
	var fields []string
	if f.RatingRange != nil {
		if f.RatingRange.Min > f.RatingRange.Max {
			fields = append(fields, "rating_range: min exceeds max")
		}
		if f.RatingRange.Min < RatingMin || f.RatingRange.Max > RatingMax {
			fields = append(fields, "rating_range: outside rating scale")
		}
	}
	if f.AgeRange != nil && f.AgeRange.Min > f.AgeRange.Max {
		fields = append(fields, "age_range: min exceeds max")
	}
	if f.MaxDistanceKm < 0 {
		fields = append(fields, "max_distance_km: negative")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
