package club

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new club Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// GetAll returns every club with its full court list.
func (s *store) GetAll() ([]Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, location, amenities_json, distance_km, price_per_hour
		FROM clubs ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			log.Error("Failed to scan club row", "error", err)
			continue
		}
		clubs = append(clubs, *c)
	}

	for i := range clubs {
		courts, err := s.courtsForClub(clubs[i].ID)
		if err != nil {
			return nil, err
		}
		clubs[i].Courts = courts
	}
	return clubs, nil
}

// GetByID retrieves a single club, or a not-found error.
func (s *store) GetByID(clubID string) (*Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, location, amenities_json, distance_km, price_per_hour
		FROM clubs WHERE id = ?
	`, clubID)

	c, err := scanClub(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("club not found: %s", clubID)
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	courts, err := s.courtsForClub(c.ID)
	if err != nil {
		return nil, err
	}
	c.Courts = courts
	return c, nil
}

// GetCourt retrieves a single court by ID across all clubs.
func (s *store) GetCourt(courtID string) (*Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, club_id, number, surface, indoor, available, price_per_hour
		FROM courts WHERE id = ?
	`, courtID)

	court, err := scanCourt(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("court not found: %s", courtID)
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}
	return court, nil
}

func scanClub(scanner interface{ Scan(...any) error }) (*Club, error) {
	var c Club
	var amenitiesJSON sql.NullString
	var distance sql.NullFloat64

	err := scanner.Scan(&c.ID, &c.Name, &c.Location, &amenitiesJSON, &distance, &c.PricePerHour)
	if err != nil {
		return nil, err
	}

	c.DistanceKm = distance.Float64
	if amenitiesJSON.Valid && amenitiesJSON.String != "" {
		if err := json.Unmarshal([]byte(amenitiesJSON.String), &c.Amenities); err != nil {
			log.Error("Failed to unmarshal amenities_json", "error", err, "clubID", c.ID)
		}
	}
	return &c, nil
}

func scanCourt(scanner interface{ Scan(...any) error }) (*Court, error) {
	var court Court
	var indoor, available int
	err := scanner.Scan(&court.ID, &court.ClubID, &court.Number, &court.Surface, &indoor, &available, &court.PricePerHour)
	if err != nil {
		return nil, err
	}
	court.Indoor = indoor != 0
	court.IsAvailable = available != 0
	return &court, nil
}

func (s *store) courtsForClub(clubID string) ([]Court, error) {
	rows, err := s.db.Query(`
		SELECT id, club_id, number, surface, indoor, available, price_per_hour
		FROM courts WHERE club_id = ? ORDER BY number
	`, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courts: %w", err)
	}
	defer rows.Close()

	var courts []Court
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			log.Error("Failed to scan court row", "error", err)
			continue
		}
		courts = append(courts, *court)
	}
	return courts, nil
}

// UpsertClub inserts or updates a club and all of its courts atomically.
func (s *store) UpsertClub(c Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	amenitiesJSON, err := json.Marshal(c.Amenities)
	if err != nil {
		return fmt.Errorf("failed to marshal amenities: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO clubs (id, name, location, amenities_json, distance_km, price_per_hour)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			amenities_json = excluded.amenities_json,
			distance_km = excluded.distance_km,
			price_per_hour = excluded.price_per_hour;
	`, c.ID, c.Name, c.Location, string(amenitiesJSON), c.DistanceKm, c.PricePerHour)
	if err != nil {
		return fmt.Errorf("failed to upsert club %s: %w", c.ID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO courts (id, club_id, number, surface, indoor, available, price_per_hour)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number = excluded.number,
			surface = excluded.surface,
			indoor = excluded.indoor,
			available = excluded.available,
			price_per_hour = excluded.price_per_hour;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare court upsert: %w", err)
	}
	defer stmt.Close()

	for _, court := range c.Courts {
		indoor, available := 0, 0
		if court.Indoor {
			indoor = 1
		}
		if court.IsAvailable {
			available = 1
		}
		_, err = stmt.Exec(court.ID, c.ID, court.Number, string(court.Surface), indoor, available, court.PricePerHour)
		if err != nil {
			return fmt.Errorf("failed to upsert court %s: %w", court.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit club upsert: %w", err)
	}
	log.Info("Upserted club", "clubID", c.ID, "courts", len(c.Courts))
	return nil
}

// SetCourtAvailability flips a single court's availability flag.
func (s *store) SetCourtAvailability(courtID string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag := 0
	if available {
		flag = 1
	}
	res, err := s.db.Exec("UPDATE courts SET available = ? WHERE id = ?", flag, courtID)
	if err != nil {
		return fmt.Errorf("failed to update court availability: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("court not found: %s", courtID)
	}
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing catalog", "error", err)
		return
	}
	if _, err := tx.Exec("DELETE FROM courts"); err != nil {
		log.Error("Failed to clear courts table", "error", err)
		tx.Rollback()
		return
	}
	if _, err := tx.Exec("DELETE FROM clubs"); err != nil {
		log.Error("Failed to clear clubs table", "error", err)
		tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing catalog", "error", err)
	}
}
