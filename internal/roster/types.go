package roster

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the player roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// SkillLevel is the categorical skill of a player. Levels are ordered:
// beginner < lower-intermediate < intermediate < advanced < expert < professional.
type SkillLevel string

const (
	LevelBeginner          SkillLevel = "beginner"
	LevelLowerIntermediate SkillLevel = "lower-intermediate"
	LevelIntermediate      SkillLevel = "intermediate"
	LevelAdvanced          SkillLevel = "advanced"
	LevelExpert            SkillLevel = "expert"
	LevelProfessional      SkillLevel = "professional"
)

// skillOrder maps each level to its rank for ordered comparisons.
var skillOrder = map[SkillLevel]int{
	LevelBeginner:          0,
	LevelLowerIntermediate: 1,
	LevelIntermediate:      2,
	LevelAdvanced:          3,
	LevelExpert:            4,
	LevelProfessional:      5,
}

// Rank returns the ordinal position of the level, or -1 for unknown levels.
func (l SkillLevel) Rank() int {
	if r, ok := skillOrder[l]; ok {
		return r
	}
	return -1
}

// PlayStyle is a player's preferred style of play.
type PlayStyle string

const (
	StyleAggressive   PlayStyle = "aggressive"
	StyleDefensive    PlayStyle = "defensive"
	StyleAllCourt     PlayStyle = "all-court"
	StyleServeVolley  PlayStyle = "serve-volley"
	StyleBaseline     PlayStyle = "baseline"
	StyleRecreational PlayStyle = "recreational"
)

// Outcome is a single win/loss entry in a player's recent form.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
)

// PlayerStats holds a player's cumulative match statistics.
// The win rate is intentionally not stored: it is always derived from
// MatchesWon/MatchesPlayed so the two can never drift apart.
type PlayerStats struct {
	MatchesPlayed int       `json:"matches_played"`
	MatchesWon    int       `json:"matches_won"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	RecentForm    []Outcome `json:"recent_form"`
}

// WinRate returns the percentage of matches won, in [0,100].
func (s PlayerStats) WinRate() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.MatchesWon) / float64(s.MatchesPlayed) * 100
}

// TimeRange is a start/end interval within a day, "HH:MM" format.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayAvailability is a player's self-reported availability for one weekday.
type DayAvailability struct {
	Available bool        `json:"available"`
	TimeSlots []TimeRange `json:"time_slots"`
}

// WeeklySchedule maps lowercase weekday names ("monday" .. "sunday") to
// availability. Days are evaluated in the player's own declared timezone
// since availability is self-reported.
type WeeklySchedule map[string]DayAvailability

// Player is a searchable club member. Records are immutable during a search
// session: the matching engine only ever reads them.
type Player struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Level      SkillLevel     `json:"skill_level"`
	Rating     float64        `json:"rating"`
	PlayStyle  PlayStyle      `json:"play_style"`
	Location   string         `json:"location"`
	Age        int            `json:"age,omitempty"`
	Timezone   string         `json:"timezone"`
	Clubs      []string       `json:"clubs"`
	IsOnline   bool           `json:"is_online"`
	LastActive time.Time      `json:"last_active"`
	Verified   bool           `json:"verified"`
	Stats      PlayerStats    `json:"stats"`
	Schedule   WeeklySchedule `json:"schedule,omitempty"`
}

// AvailableOn reports whether the player's schedule has at least one
// time-slot interval on the given weekday.
func (p *Player) AvailableOn(weekday string) bool {
	day, ok := p.Schedule[weekday]
	return ok && day.Available && len(day.TimeSlots) > 0
}

// SharedClubs returns the clubs both players belong to, in p's club order.
func (p *Player) SharedClubs(other *Player) []string {
	var shared []string
	for _, c := range p.Clubs {
		for _, oc := range other.Clubs {
			if c == oc {
				shared = append(shared, c)
				break
			}
		}
	}
	return shared
}
