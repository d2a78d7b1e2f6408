package roster

// Provider defines read access to the searchable player roster. The matching
// engine treats the returned snapshot as static input.
type Provider interface {
	GetAll() ([]Player, error)
	Get(playerID string) (*Player, error)
}

// Store extends Provider with the write operations used by the seeder and
// the stats pipeline.
type Store interface {
	Provider
	UpsertPlayer(p Player) error
	UpsertPlayers(players []Player) error
	SetOnline(playerID string, online bool) error
	RecordResult(playerID string, won bool) error
	Clear()
}
