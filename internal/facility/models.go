package facility

import (
	"time"
)

// Resident is a tracked person identified by their RFID badge. The badge
// tag is the primary key; there is no surrogate id.
type Resident struct {
	RFID      string `gorm:"column:rfid;primaryKey" json:"rfid"`
	Name      string `json:"name"`
	Doc       string `json:"doc"`
	Room      string `json:"room"`
	Unit      int    `json:"unit,omitempty"`
	Level     int    `json:"level"`
	CreatedAt time.Time
}

// Location is a place within the facility residents can be scanned into.
// Ids may be client-supplied (the facility has a fixed numbering scheme);
// a zero id is assigned by the store. No DB sequence: seeding fixed ids
// would leave a sequence behind the table and break the next zero-id
// create. Names are not required to be unique.
type Location struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `json:"name"`
}

// Timestamp is a single movement event: resident `rfid` was scanned into
// location `dest` at `time`. Events are appended in strictly increasing id
// order; the ledger of all events is the source of truth for where anyone
// is.
type Timestamp struct {
	ID   int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RFID string    `gorm:"column:rfid;index" json:"rfid"`
	Dest int       `gorm:"index" json:"dest"`
	Time time.Time `gorm:"index" json:"time"`
}

func (Resident) TableName() string {
	return "residents"
}

func (Location) TableName() string {
	return "locations"
}

func (Timestamp) TableName() string {
	return "timestamps"
}

// ResidentUpdate is a partial patch for a resident. Nil fields are left
// untouched. The rfid itself is immutable.
type ResidentUpdate struct {
	Name  *string `json:"name"`
	Doc   *string `json:"doc"`
	Room  *string `json:"room"`
	Unit  *int    `json:"unit"`
	Level *int    `json:"level"`
}

// LocationUpdate renames a location.
type LocationUpdate struct {
	Name *string `json:"name"`
}

// TimestampUpdate corrects an event's destination and/or time. The id and
// rfid of an event never change.
type TimestampUpdate struct {
	Dest *int       `json:"dest"`
	Time *time.Time `json:"time"`
}

// Apply copies the set fields of the patch onto r.
func (u ResidentUpdate) Apply(r *Resident) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Doc != nil {
		r.Doc = *u.Doc
	}
	if u.Room != nil {
		r.Room = *u.Room
	}
	if u.Unit != nil {
		r.Unit = *u.Unit
	}
	if u.Level != nil {
		r.Level = *u.Level
	}
}

func (u LocationUpdate) Apply(l *Location) {
	if u.Name != nil {
		l.Name = *u.Name
	}
}

func (u TimestampUpdate) Apply(ts *Timestamp) {
	if u.Dest != nil {
		ts.Dest = *u.Dest
	}
	if u.Time != nil {
		ts.Time = *u.Time
	}
}
