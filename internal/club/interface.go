package club

// Catalog defines read access to the bookable venues.
type Catalog interface {
	GetAll() ([]Club, error)
	GetByID(clubID string) (*Club, error)
	GetCourt(courtID string) (*Court, error)
}

// Store extends Catalog with the write operations used by the seeder and
// the booking pipeline.
type Store interface {
	Catalog
	UpsertClub(c Club) error
	SetCourtAvailability(courtID string, available bool) error
	Clear()
}
