// Package seeds loads the facility's fixed location list and, on demand,
// a small test dataset. The location ids are the facility's badge-reader
// numbering and must stay stable across deployments.
package seeds

import (
	"errors"

	"github.com/KMastroluca/mvscanner/internal/facility"
)

var facilityLocations = []facility.Location{
	{ID: 1, Name: "ALPHA UNIT"},
	{ID: 2, Name: "ACTIVITIES"},
	{ID: 3, Name: "CHAPEL"},
	{ID: 4, Name: "ASU"},
	{ID: 5, Name: "BOOKING"},
	{ID: 6, Name: "BRAVO UNIT"},
	{ID: 7, Name: "CHARLIE UNIT"},
	{ID: 8, Name: "CHARLIE UNIT CLASSROOM"},
	{ID: 9, Name: "CHAPLAINS OFFICE"},
	{ID: 10, Name: "COLLEGE CLASSROOM"},
	{ID: 11, Name: "COMPUTER LAB"},
	{ID: 12, Name: "CULINARY"},
	{ID: 13, Name: "D BOARDS"},
	{ID: 14, Name: "DELTA UNIT"},
	{ID: 15, Name: "DELTA UNIT CLASSROOM"},
	{ID: 16, Name: "EDUCATION CONFERENCE ROOM"},
	{ID: 17, Name: "ECHO UNIT"},
	{ID: 18, Name: "FLOOR JANITOR"},
	{ID: 19, Name: "GYM"},
	{ID: 20, Name: "MCDONALD"},
	{ID: 21, Name: "HOSPITAL"},
	{ID: 22, Name: "KITCHEN"},
	{ID: 23, Name: "LAUNDRY"},
	{ID: 24, Name: "LIBRARY"},
	{ID: 25, Name: "MEDICAL"},
	{ID: 26, Name: "MUSIC ROOM"},
	{ID: 27, Name: "NCCER"},
	{ID: 28, Name: "OFF GROUNDS"},
	{ID: 30, Name: "OUTSIDE RECREATION"},
	{ID: 31, Name: "VISIT ROOM"},
	{ID: 32, Name: "SMALL ENGINES"},
	{ID: 33, Name: "WOOD SHOP"},
	{ID: 34, Name: "WORK CREW"},
	{ID: 35, Name: "CASEWORKER HEAL"},
	{ID: 36, Name: "STAFF JACKSON"},
	{ID: 37, Name: "UM HARMON"},
	{ID: 39, Name: "STAFF FRENCH"},
	{ID: 41, Name: "ANNEX"},
	{ID: 42, Name: "CASEWORKER DEVER JACOB"},
}

// SeedLocations inserts the facility location list. Already-seeded ids are
// skipped, so re-running is safe.
func SeedLocations(store facility.Store) error {
	for _, loc := range facilityLocations {
		if _, err := store.CreateLocation(loc); err != nil {
			if errors.Is(err, facility.ErrDuplicateIdentity) {
				continue
			}
			return err
		}
	}
	return nil
}

// SeedTestData populates a handful of residents and scan events for local
// development against the scan UI.
func SeedTestData(store facility.Store) error {
	residents := []facility.Resident{
		{RFID: "888888222888888", Name: "Walter Delacruz", Doc: "105621", Room: "C-3", Unit: 8, Level: 2},
		{RFID: "888888111888888", Name: "Marcus Reed", Doc: "103377", Room: "D-14", Unit: 14, Level: 2},
		{RFID: "888888333888888", Name: "Daniel Okafor", Doc: "108240", Room: "A-7", Unit: 1, Level: 3},
	}
	for _, r := range residents {
		if _, err := store.CreateResident(r); err != nil {
			if errors.Is(err, facility.ErrDuplicateIdentity) {
				continue
			}
			return err
		}
	}

	scans := []facility.Timestamp{
		{RFID: "888888222888888", Dest: 4},
		{RFID: "888888111888888", Dest: 14},
		{RFID: "888888111888888", Dest: 22},
		{RFID: "888888333888888", Dest: 1},
	}
	for _, ts := range scans {
		if _, err := store.CreateTimestamp(ts); err != nil {
			return err
		}
	}
	return nil
}
