package roster

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new roster Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const playerColumns = `
	p.id, p.name, p.skill_level, p.rating, p.play_style, p.location, p.age,
	p.timezone, p.is_online, p.last_active, p.verified, p.clubs_json, p.schedule_json,
	COALESCE(ps.matches_played, 0), COALESCE(ps.matches_won, 0),
	COALESCE(ps.current_streak, 0), COALESCE(ps.longest_streak, 0),
	COALESCE(ps.recent_form, '')
`

// GetAll returns a read-only snapshot of the full roster in insertion order.
func (s *store) GetAll() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN player_stats ps ON p.id = ps.player_id
		ORDER BY p.rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *player)
	}
	return players, nil
}

// Get retrieves a single player by ID.
func (s *store) Get(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT `+playerColumns+`
		FROM players p
		LEFT JOIN player_stats ps ON p.id = ps.player_id
		WHERE p.id = ?
	`, playerID)

	player, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player not found: %s", playerID)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var age sql.NullInt64
	var isOnline, verified int
	var lastActive int64
	var clubsJSON, scheduleJSON sql.NullString
	var recentForm string

	err := scanner.Scan(
		&p.ID, &p.Name, &p.Level, &p.Rating, &p.PlayStyle, &p.Location, &age,
		&p.Timezone, &isOnline, &lastActive, &verified, &clubsJSON, &scheduleJSON,
		&p.Stats.MatchesPlayed, &p.Stats.MatchesWon,
		&p.Stats.CurrentStreak, &p.Stats.LongestStreak,
		&recentForm,
	)
	if err != nil {
		return nil, err
	}

	p.Age = int(age.Int64)
	p.IsOnline = isOnline != 0
	p.Verified = verified != 0
	p.LastActive = time.Unix(lastActive, 0)

	if clubsJSON.Valid && clubsJSON.String != "" {
		if err := json.Unmarshal([]byte(clubsJSON.String), &p.Clubs); err != nil {
			log.Error("Failed to unmarshal clubs_json", "error", err, "playerID", p.ID)
		}
	}
	if scheduleJSON.Valid && scheduleJSON.String != "" {
		if err := json.Unmarshal([]byte(scheduleJSON.String), &p.Schedule); err != nil {
			log.Error("Failed to unmarshal schedule_json", "error", err, "playerID", p.ID)
		}
	}
	for _, c := range strings.Split(recentForm, "") {
		if c == "W" || c == "L" {
			p.Stats.RecentForm = append(p.Stats.RecentForm, Outcome(c))
		}
	}

	return &p, nil
}

// UpsertPlayer inserts a new player or updates an existing one.
func (s *store) UpsertPlayer(p Player) error {
	return s.UpsertPlayers([]Player{p})
}

// UpsertPlayers inserts or updates players in a single transaction.
func (s *store) UpsertPlayers(players []Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, skill_level, rating, play_style, location, age, timezone, is_online, last_active, verified, clubs_json, schedule_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			skill_level = excluded.skill_level,
			rating = excluded.rating,
			play_style = excluded.play_style,
			location = excluded.location,
			age = excluded.age,
			timezone = excluded.timezone,
			is_online = excluded.is_online,
			last_active = excluded.last_active,
			verified = excluded.verified,
			clubs_json = excluded.clubs_json,
			schedule_json = excluded.schedule_json;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare player upsert: %w", err)
	}
	defer stmt.Close()

	statsStmt, err := tx.Prepare(`
		INSERT INTO player_stats (player_id, matches_played, matches_won, current_streak, longest_streak, recent_form)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			matches_played = excluded.matches_played,
			matches_won = excluded.matches_won,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			recent_form = excluded.recent_form;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare stats upsert: %w", err)
	}
	defer statsStmt.Close()

	for _, p := range players {
		clubsJSON, err := json.Marshal(p.Clubs)
		if err != nil {
			return fmt.Errorf("failed to marshal clubs for %s: %w", p.ID, err)
		}
		scheduleJSON, err := json.Marshal(p.Schedule)
		if err != nil {
			return fmt.Errorf("failed to marshal schedule for %s: %w", p.ID, err)
		}

		var age any
		if p.Age > 0 {
			age = p.Age
		}

		_, err = stmt.Exec(
			p.ID, p.Name, string(p.Level), p.Rating, string(p.PlayStyle), p.Location, age,
			p.Timezone, boolToInt(p.IsOnline), p.LastActive.Unix(), boolToInt(p.Verified),
			string(clubsJSON), string(scheduleJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}

		_, err = statsStmt.Exec(
			p.ID, p.Stats.MatchesPlayed, p.Stats.MatchesWon,
			p.Stats.CurrentStreak, p.Stats.LongestStreak, formString(p.Stats.RecentForm),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert stats for %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player upsert: %w", err)
	}
	log.Info("Upserted players", "count", len(players))
	return nil
}

// SetOnline flips a player's presence flag and refreshes last_active.
func (s *store) SetOnline(playerID string, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE players SET is_online = ?, last_active = ? WHERE id = ?",
		boolToInt(online), time.Now().Unix(), playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to set online flag: %w", err)
	}
	return nil
}

// RecordResult appends one match outcome to a player's cumulative stats.
// Streaks and recent form are maintained here so the stored counters stay
// consistent; the win rate itself is never stored.
func (s *store) RecordResult(playerID string, won bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var played, wins, streak, longest int
	var form string
	row := tx.QueryRow(`
		SELECT matches_played, matches_won, current_streak, longest_streak, recent_form
		FROM player_stats WHERE player_id = ?
	`, playerID)
	if err := row.Scan(&played, &wins, &streak, &longest, &form); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	played++
	if won {
		wins++
		streak++
		if streak > longest {
			longest = streak
		}
		form += "W"
	} else {
		streak = 0
		form += "L"
	}
	// Recent form keeps the last five outcomes.
	if len(form) > 5 {
		form = form[len(form)-5:]
	}

	_, err = tx.Exec(`
		INSERT INTO player_stats (player_id, matches_played, matches_won, current_streak, longest_streak, recent_form)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			matches_played = excluded.matches_played,
			matches_won = excluded.matches_won,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			recent_form = excluded.recent_form;
	`, playerID, played, wins, streak, longest, form)
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats update: %w", err)
	}
	log.Info("Recorded match result", "playerID", playerID, "won", won)
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing roster", "error", err)
		return
	}
	if _, err := tx.Exec("DELETE FROM player_stats"); err != nil {
		log.Error("Failed to clear player_stats table", "error", err)
		tx.Rollback()
		return
	}
	if _, err := tx.Exec("DELETE FROM players"); err != nil {
		log.Error("Failed to clear players table", "error", err)
		tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing roster", "error", err)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formString(form []Outcome) string {
	var b strings.Builder
	for _, o := range form {
		b.WriteString(string(o))
	}
	return b.String()
}
