package facility

// Store is the full contract over residents, locations, and the movement
// ledger. Both the GORM-backed store and the in-memory store implement it;
// handlers and tests only ever see this interface.
//
// Every method is a single atomic unit of work: a call either fully applies
// its effect or fails with one of the error kinds in errors.go and applies
// nothing.
type Store interface {
	// Residents.
	ListResidents() ([]Resident, error)
	GetResident(rfid string) (Resident, error)
	CreateResident(r Resident) (Resident, error)
	UpdateResident(rfid string, patch ResidentUpdate) (Resident, error)
	DeleteResident(rfid string) error

	// Locations.
	ListLocations() ([]Location, error)
	GetLocation(id int) (Location, error)
	CreateLocation(l Location) (Location, error)
	UpdateLocation(id int, patch LocationUpdate) (Location, error)
	DeleteLocation(id int) error

	// Movement ledger. ListTimestamps returns every event in insertion
	// order (ascending id). CreateTimestamp validates both references,
	// assigns the next id, and stamps the current instant when the event
	// carries a zero time.
	ListTimestamps() ([]Timestamp, error)
	GetTimestamp(id int64) (Timestamp, error)
	CreateTimestamp(ts Timestamp) (Timestamp, error)
	UpdateTimestamp(id int64, patch TimestampUpdate) (Timestamp, error)
	DeleteTimestamp(id int64) error

	// Range-bounded history, chronological (time, then id).
	TimestampsInRange(r DateRange) ([]Timestamp, error)
	ResidentTimestamps(rfid string) ([]Timestamp, error)
	ResidentTimestampsInRange(rfid string, r DateRange) ([]Timestamp, error)
	LocationTimestamps(id int) ([]Timestamp, error)
	LocationTimestampsInRange(id int, r DateRange) ([]Timestamp, error)

	// Derived state. CurrentLocation is the resident's latest event by
	// time, ties broken by highest id; ErrNoHistory with zero events.
	// ResidentsAt lists residents whose current location is id.
	CurrentLocation(rfid string) (Timestamp, error)
	ResidentsAt(id int) ([]Resident, error)
}
