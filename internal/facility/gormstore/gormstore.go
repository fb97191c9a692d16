// Package gormstore is the database-backed facility.Store, running on
// Postgres or SQLite through GORM. Derivation reuses the pure helpers in
// the facility package so it always agrees with the in-memory store.
package gormstore

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/KMastroluca/mvscanner/internal/facility"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Init creates the residents, locations, and timestamps tables.
func (s *Store) Init() error {
	return s.db.AutoMigrate(
		&facility.Resident{},
		&facility.Location{},
		&facility.Timestamp{},
	)
}

func (s *Store) ListResidents() ([]facility.Resident, error) {
	var residents []facility.Resident
	if err := s.db.Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

func (s *Store) GetResident(rfid string) (facility.Resident, error) {
	var r facility.Resident
	err := s.db.First(&r, "rfid = ?", rfid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return facility.Resident{}, facility.ErrNotFound
	}
	return r, err
}

func (s *Store) CreateResident(r facility.Resident) (facility.Resident, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&facility.Resident{}).Where("rfid = ?", r.RFID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return facility.ErrDuplicateIdentity
		}
		return translateCreateError(tx.Create(&r).Error)
	})
	if err != nil {
		return facility.Resident{}, err
	}
	return r, nil
}

func (s *Store) UpdateResident(rfid string, patch facility.ResidentUpdate) (facility.Resident, error) {
	var r facility.Resident
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, "rfid = ?", rfid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return facility.ErrNotFound
			}
			return err
		}
		patch.Apply(&r)
		return tx.Save(&r).Error
	})
	if err != nil {
		return facility.Resident{}, err
	}
	return r, nil
}

func (s *Store) DeleteResident(rfid string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var r facility.Resident
		if err := tx.First(&r, "rfid = ?", rfid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return facility.ErrNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&facility.Timestamp{}).Where("rfid = ?", rfid).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return facility.ErrReferentialConflict
		}
		return tx.Delete(&facility.Resident{}, "rfid = ?", rfid).Error
	})
}

func (s *Store) ListLocations() ([]facility.Location, error) {
	var locations []facility.Location
	if err := s.db.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *Store) GetLocation(id int) (facility.Location, error) {
	var l facility.Location
	err := s.db.First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return facility.Location{}, facility.ErrNotFound
	}
	return l, err
}

func (s *Store) CreateLocation(l facility.Location) (facility.Location, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if l.ID == 0 {
			// Ids are assigned here, not by a DB sequence: the seeded
			// fixed-id list would leave a sequence pointing at taken
			// ids.
			var maxID int
			if err := tx.Model(&facility.Location{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
				return err
			}
			l.ID = maxID + 1
		} else {
			var count int64
			if err := tx.Model(&facility.Location{}).Where("id = ?", l.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return facility.ErrDuplicateIdentity
			}
		}
		return translateCreateError(tx.Create(&l).Error)
	})
	if err != nil {
		return facility.Location{}, err
	}
	return l, nil
}

func (s *Store) UpdateLocation(id int, patch facility.LocationUpdate) (facility.Location, error) {
	var l facility.Location
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&l, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return facility.ErrNotFound
			}
			return err
		}
		patch.Apply(&l)
		return tx.Save(&l).Error
	})
	if err != nil {
		return facility.Location{}, err
	}
	return l, nil
}

func (s *Store) DeleteLocation(id int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var l facility.Location
		if err := tx.First(&l, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return facility.ErrNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&facility.Timestamp{}).Where("dest = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return facility.ErrReferentialConflict
		}
		return tx.Delete(&facility.Location{}, "id = ?", id).Error
	})
}

func (s *Store) ListTimestamps() ([]facility.Timestamp, error) {
	var events []facility.Timestamp
	if err := s.db.Order("id asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) GetTimestamp(id int64) (facility.Timestamp, error) {
	var ts facility.Timestamp
	err := s.db.First(&ts, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return facility.Timestamp{}, facility.ErrNotFound
	}
	return ts, err
}

// CreateTimestamp appends a scan event. Both references are checked and
// the row inserted inside one transaction, so a failed check appends
// nothing and concurrent appends each get their own id.
func (s *Store) CreateTimestamp(ts facility.Timestamp) (facility.Timestamp, error) {
	ts.ID = 0
	if ts.Time.IsZero() {
		ts.Time = time.Now()
	}
	// Stored in UTC so range comparisons agree with the UTC calendar
	// date the facility helpers assign to offset-carrying times.
	ts.Time = ts.Time.UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&facility.Resident{}).Where("rfid = ?", ts.RFID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return facility.ErrInvalidReference
		}
		if err := tx.Model(&facility.Location{}).Where("id = ?", ts.Dest).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return facility.ErrInvalidReference
		}
		return translateCreateError(tx.Create(&ts).Error)
	})
	if err != nil {
		return facility.Timestamp{}, err
	}
	return ts, nil
}

func (s *Store) UpdateTimestamp(id int64, patch facility.TimestampUpdate) (facility.Timestamp, error) {
	var ts facility.Timestamp
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ts, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return facility.ErrNotFound
			}
			return err
		}
		if patch.Dest != nil {
			var count int64
			if err := tx.Model(&facility.Location{}).Where("id = ?", *patch.Dest).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return facility.ErrInvalidReference
			}
		}
		patch.Apply(&ts)
		ts.Time = ts.Time.UTC()
		return tx.Save(&ts).Error
	})
	if err != nil {
		return facility.Timestamp{}, err
	}
	return ts, nil
}

func (s *Store) DeleteTimestamp(id int64) error {
	res := s.db.Delete(&facility.Timestamp{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return facility.ErrNotFound
	}
	return nil
}

func (s *Store) TimestampsInRange(r facility.DateRange) ([]facility.Timestamp, error) {
	var events []facility.Timestamp
	err := s.db.Where("time >= ? AND time < ?", r.Start, dayAfter(r.End)).
		Order("time asc, id asc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) ResidentTimestamps(rfid string) ([]facility.Timestamp, error) {
	var events []facility.Timestamp
	err := s.db.Where("rfid = ?", rfid).Order("time asc, id asc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) ResidentTimestampsInRange(rfid string, r facility.DateRange) ([]facility.Timestamp, error) {
	var events []facility.Timestamp
	err := s.db.Where("rfid = ? AND time >= ? AND time < ?", rfid, r.Start, dayAfter(r.End)).
		Order("time asc, id asc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) LocationTimestamps(id int) ([]facility.Timestamp, error) {
	var events []facility.Timestamp
	err := s.db.Where("dest = ?", id).Order("time asc, id asc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) LocationTimestampsInRange(id int, r facility.DateRange) ([]facility.Timestamp, error) {
	var events []facility.Timestamp
	err := s.db.Where("dest = ? AND time >= ? AND time < ?", id, r.Start, dayAfter(r.End)).
		Order("time asc, id asc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) CurrentLocation(rfid string) (facility.Timestamp, error) {
	if _, err := s.GetResident(rfid); err != nil {
		return facility.Timestamp{}, err
	}
	events, err := s.ResidentTimestamps(rfid)
	if err != nil {
		return facility.Timestamp{}, err
	}
	latest, ok := facility.LatestEvent(events)
	if !ok {
		return facility.Timestamp{}, facility.ErrNoHistory
	}
	return latest, nil
}

func (s *Store) ResidentsAt(id int) ([]facility.Resident, error) {
	if _, err := s.GetLocation(id); err != nil {
		return nil, err
	}
	events, err := s.ListTimestamps()
	if err != nil {
		return nil, err
	}
	present := make([]string, 0)
	for rfid, latest := range facility.CurrentByResident(events) {
		if latest.Dest == id {
			present = append(present, rfid)
		}
	}
	residents := make([]facility.Resident, 0, len(present))
	if len(present) == 0 {
		return residents, nil
	}
	if err := s.db.Where("rfid IN ?", present).Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// dayAfter is midnight of the day after d, making the closed date interval
// an exclusive upper bound on raw times.
func dayAfter(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// translateCreateError maps driver-level constraint violations onto the
// store's error kinds. The count-then-create checks run at default
// isolation, so two concurrent creates can both pass the count and the
// loser only fails at the constraint; this keeps that failure a
// DuplicateIdentity/InvalidReference instead of a generic DB error.
// Requires TranslateError on the gorm.Config.
func translateCreateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return facility.ErrDuplicateIdentity
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return facility.ErrInvalidReference
	}
	return err
}
