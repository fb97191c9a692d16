package gormstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KMastroluca/mvscanner/internal/facility"
	"github.com/KMastroluca/mvscanner/internal/facility/gormstore"
	"github.com/KMastroluca/mvscanner/internal/seeds"
)

// newStore opens a fresh in-memory SQLite database per test. A single
// connection keeps the :memory: database alive for the store's lifetime.
func newStore(t *testing.T) *gormstore.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store := gormstore.New(db)
	if err := store.Init(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return store
}

// TestCreateLocation_AfterSeededIDs verifies a zero-id create still works
// once the fixed facility list occupies ids 1-42: the store assigns
// max(id)+1 itself instead of trusting a DB sequence the explicit-id
// seeding never advanced.
func TestCreateLocation_AfterSeededIDs(t *testing.T) {
	s := newStore(t)
	if err := seeds.SeedLocations(s); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	created, err := s.CreateLocation(facility.Location{Name: "NEW WING"})
	if err != nil {
		t.Fatalf("zero-id create after seeding failed: %v", err)
	}
	if created.ID != 43 {
		t.Errorf("expected id 43 (max seeded id + 1), got %d", created.ID)
	}

	next, err := s.CreateLocation(facility.Location{Name: "NEWER WING"})
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != 44 {
		t.Errorf("expected id 44, got %d", next.ID)
	}
}

func TestCreateLocation_ExplicitIDConflict(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateLocation(facility.Location{ID: 4, Name: "ASU"}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.CreateLocation(facility.Location{ID: 4, Name: "OTHER"}); !errors.Is(err, facility.ErrDuplicateIdentity) {
		t.Errorf("expected ErrDuplicateIdentity, got %v", err)
	}
	if _, err := s.CreateLocation(facility.Location{Name: "ASU"}); err != nil {
		t.Errorf("duplicate name should be tolerated, got %v", err)
	}
}

func TestCreateResident_Duplicate(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateResident(facility.Resident{RFID: "badge-1", Name: "First"}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.CreateResident(facility.Resident{RFID: "badge-1", Name: "Second"}); !errors.Is(err, facility.ErrDuplicateIdentity) {
		t.Errorf("expected ErrDuplicateIdentity, got %v", err)
	}
}

// TestScanScenario runs the enroll-scan-derive flow against the DB-backed
// store, mirroring the memstore test of the same name.
func TestScanScenario(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateResident(facility.Resident{
		RFID: "888888222888888", Name: "A", Doc: "1", Room: "C-3", Unit: 8,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateLocation(facility.Location{ID: 4, Name: "ASU"}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.CreateTimestamp(facility.Timestamp{RFID: "888888222888888", Dest: 4}); err != nil {
		t.Fatalf("failed to append scan: %v", err)
	}

	latest, err := s.CurrentLocation("888888222888888")
	if err != nil {
		t.Fatalf("CurrentLocation: %v", err)
	}
	if latest.Dest != 4 {
		t.Errorf("expected current location 4, got %d", latest.Dest)
	}

	present, err := s.ResidentsAt(4)
	if err != nil {
		t.Fatalf("ResidentsAt: %v", err)
	}
	if len(present) != 1 || present[0].RFID != "888888222888888" {
		t.Errorf("expected resident 888888222888888 at location 4, got %+v", present)
	}
}

func TestCreateTimestamp_InvalidReference(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateTimestamp(facility.Timestamp{RFID: "ghost", Dest: 1}); !errors.Is(err, facility.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}

	events, err := s.ListTimestamps()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("rejected scan must not be appended, ledger has %d events", len(events))
	}
}

// TestTimestampsInRange_OffsetNormalized verifies an event reported with a
// non-UTC offset lands on its UTC calendar date, matching the in-memory
// store's range semantics.
func TestTimestampsInRange_OffsetNormalized(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateResident(facility.Resident{RFID: "badge-1"}); err != nil {
		t.Fatal(err)
	}
	loc, err := s.CreateLocation(facility.Location{Name: "GYM"})
	if err != nil {
		t.Fatal(err)
	}

	// 01:30 on Nov 20 at +03:00 is 22:30 on Nov 19 in UTC.
	offset := time.FixedZone("EAT", 3*60*60)
	scan := time.Date(2023, 11, 20, 1, 30, 0, 0, offset)
	if _, err := s.CreateTimestamp(facility.Timestamp{RFID: "badge-1", Dest: loc.ID, Time: scan}); err != nil {
		t.Fatal(err)
	}

	nov19, err := facility.ParseDateRange("2023-11-19", "2023-11-19")
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.TimestampsInRange(nov19)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the offset event on its UTC date, got %+v", got)
	}

	nov20, _ := facility.ParseDateRange("2023-11-20", "2023-11-20")
	got, err = s.TimestampsInRange(nov20)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events on Nov 20 (UTC), got %+v", got)
	}
}

func TestDeleteLocation_ReferentialConflict(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateResident(facility.Resident{RFID: "badge-1"}); err != nil {
		t.Fatal(err)
	}
	loc, err := s.CreateLocation(facility.Location{Name: "LIBRARY"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTimestamp(facility.Timestamp{RFID: "badge-1", Dest: loc.ID}); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteLocation(loc.ID); !errors.Is(err, facility.ErrReferentialConflict) {
		t.Errorf("expected ErrReferentialConflict, got %v", err)
	}
}
