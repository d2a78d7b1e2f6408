package availability

import (
	"fmt"
	"hash/fnv"

	"github.com/charmbracelet/log"
	"github.com/vlkr-dev/courtline/internal/club"
)

// Bookable hours run 08:00 through 21:00.
var slotTimes = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00", "21:00",
}

// Peak hours carry a price uplift.
const (
	peakStart      = "17:00"
	peakEnd        = "20:00"
	peakUpliftPerc = 20
)

// provider derives slots from the club catalog and an occupancy source.
type provider struct {
	catalog   club.Catalog
	occupancy OccupancySource
}

// New creates an availability Provider on top of the club catalog.
func New(catalog club.Catalog, occupancy OccupancySource) Provider {
	return &provider{
		catalog:   catalog,
		occupancy: occupancy,
	}
}

// GetTimeSlots returns the hourly slots for a club on a date. Prices come
// from the cheapest available court; unavailable slots carry no price.
func (p *provider) GetTimeSlots(clubID, date string) ([]TimeSlot, error) {
	c, err := p.catalog.GetByID(clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve club for slots: %w", err)
	}

	slots := make([]TimeSlot, 0, len(slotTimes))
	for _, t := range slotTimes {
		slot := TimeSlot{Time: t, PeakHour: isPeak(t)}

		if !p.occupancy.IsTaken(clubID, date, t) {
			if court := cheapestAvailableCourt(c); court != nil {
				slot.Available = true
				slot.CourtID = court.ID
				slot.Price = court.PricePerHour
				if slot.PeakHour {
					slot.Price += slot.Price * peakUpliftPerc / 100
				}
			}
		}
		slots = append(slots, slot)
	}

	log.Debug("Generated time slots", "clubID", clubID, "date", date, "count", len(slots))
	return slots, nil
}

func isPeak(t string) bool {
	return t >= peakStart && t <= peakEnd
}

func cheapestAvailableCourt(c *club.Club) *club.Court {
	var best *club.Court
	for i := range c.Courts {
		court := &c.Courts[i]
		if !court.IsAvailable {
			continue
		}
		if best == nil || court.PricePerHour < best.PricePerHour {
			best = court
		}
	}
	return best
}

// HashOccupancy is the default OccupancySource: a stable hash of the slot
// coordinates marks roughly 30% of slots as taken. It replaces randomness
// so repeated lookups of the same slot always agree.
type HashOccupancy struct{}

func (HashOccupancy) IsTaken(clubID, date, slotTime string) bool {
	h := fnv.New32a()
	h.Write([]byte(clubID + "|" + date + "|" + slotTime))
	return h.Sum32()%10 < 3
}

// StaticOccupancy answers from a fixed set of taken slots. Tests use it to
// pin availability outcomes.
type StaticOccupancy struct {
	Taken map[string]bool
}

func (s StaticOccupancy) IsTaken(clubID, date, slotTime string) bool {
	return s.Taken[clubID+"|"+date+"|"+slotTime]
}
