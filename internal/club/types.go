package club

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the club catalog.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Surface is a court surface type.
type Surface string

const (
	SurfaceHard  Surface = "hard"
	SurfaceClay  Surface = "clay"
	SurfaceGrass Surface = "grass"
)

// Court is a single bookable court at a club.
type Court struct {
	ID           string  `json:"id"`
	ClubID       string  `json:"club_id"`
	Number       int     `json:"number"`
	Surface      Surface `json:"surface"`
	Indoor       bool    `json:"indoor"`
	IsAvailable  bool    `json:"is_available"`
	PricePerHour int64   `json:"price_per_hour"`
}

// Club is a bookable venue. Courts are kept as a full array rather than a
// count summary; the summary is derivable from it.
type Club struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Courts       []Court  `json:"courts"`
	Amenities    []string `json:"amenities"`
	DistanceKm   float64  `json:"distance_km,omitempty"`
	PricePerHour int64    `json:"price_per_hour"`
}

// AvailableCourts counts the currently bookable courts. Never exceeds
// len(c.Courts).
func (c *Club) AvailableCourts() int {
	n := 0
	for _, court := range c.Courts {
		if court.IsAvailable {
			n++
		}
	}
	return n
}

// CourtByID returns the club's court with the given ID, or nil.
func (c *Club) CourtByID(courtID string) *Court {
	for i := range c.Courts {
		if c.Courts[i].ID == courtID {
			return &c.Courts[i]
		}
	}
	return nil
}
