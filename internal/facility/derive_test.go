package facility_test

import (
	"errors"
	"testing"
	"time"

	"github.com/KMastroluca/mvscanner/internal/facility"
)

func at(day string, hour int) time.Time {
	d, err := time.Parse(facility.DateFormat, day)
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}

// TestLatestEvent_LatestTimeWins verifies that the event with the maximum
// time becomes the resident's current state regardless of slice order.
func TestLatestEvent_LatestTimeWins(t *testing.T) {
	events := []facility.Timestamp{
		{ID: 2, RFID: "x", Dest: 5, Time: at("2023-11-19", 12)},
		{ID: 1, RFID: "x", Dest: 4, Time: at("2023-11-19", 10)},
		{ID: 3, RFID: "x", Dest: 7, Time: at("2023-11-18", 23)},
	}

	latest, ok := facility.LatestEvent(events)
	if !ok {
		t.Fatal("expected a latest event")
	}
	if latest.Dest != 5 {
		t.Errorf("expected dest 5, got %d", latest.Dest)
	}
}

// TestLatestEvent_TieBrokenByID verifies that equal times fall back to the
// highest id, i.e. the most recently ingested event.
func TestLatestEvent_TieBrokenByID(t *testing.T) {
	tie := at("2023-11-19", 10)
	events := []facility.Timestamp{
		{ID: 7, RFID: "x", Dest: 1, Time: tie},
		{ID: 9, RFID: "x", Dest: 2, Time: tie},
		{ID: 8, RFID: "x", Dest: 3, Time: tie},
	}

	latest, _ := facility.LatestEvent(events)
	if latest.ID != 9 || latest.Dest != 2 {
		t.Errorf("expected event 9 (dest 2), got event %d (dest %d)", latest.ID, latest.Dest)
	}
}

// TestLatestEvent_Deterministic verifies repeated calls over the same
// snapshot agree.
func TestLatestEvent_Deterministic(t *testing.T) {
	tie := at("2023-11-19", 10)
	events := []facility.Timestamp{
		{ID: 1, Dest: 1, Time: tie},
		{ID: 2, Dest: 2, Time: tie},
	}

	first, _ := facility.LatestEvent(events)
	for i := 0; i < 100; i++ {
		again, _ := facility.LatestEvent(events)
		if again != first {
			t.Fatalf("derivation not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestLatestEvent_Empty(t *testing.T) {
	if _, ok := facility.LatestEvent(nil); ok {
		t.Error("expected ok=false for an empty ledger")
	}
}

func TestCurrentByResident(t *testing.T) {
	events := []facility.Timestamp{
		{ID: 1, RFID: "a", Dest: 4, Time: at("2023-11-19", 10)},
		{ID: 2, RFID: "b", Dest: 4, Time: at("2023-11-19", 11)},
		{ID: 3, RFID: "a", Dest: 14, Time: at("2023-11-19", 12)},
	}

	current := facility.CurrentByResident(events)
	if len(current) != 2 {
		t.Fatalf("expected 2 residents, got %d", len(current))
	}
	if current["a"].Dest != 14 {
		t.Errorf("resident a: expected dest 14, got %d", current["a"].Dest)
	}
	if current["b"].Dest != 4 {
		t.Errorf("resident b: expected dest 4, got %d", current["b"].Dest)
	}
}

// TestFilterRange_InclusiveBounds verifies both range ends are inclusive
// and the day after the end date is excluded.
func TestFilterRange_InclusiveBounds(t *testing.T) {
	events := []facility.Timestamp{
		{ID: 1, Time: at("2023-11-18", 23)},
		{ID: 2, Time: at("2023-11-19", 0)},
		{ID: 3, Time: at("2023-11-19", 23)},
		{ID: 4, Time: at("2023-11-20", 0)},
	}

	r, err := facility.ParseDateRange("2023-11-19", "2023-11-19")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := facility.FilterRange(events, r)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("expected events 2 and 3, got %d and %d", got[0].ID, got[1].ID)
	}
}

// TestFilterRange_OffsetEvents verifies an event carrying a non-UTC
// offset is assigned to its UTC calendar date, not the date in its own
// zone.
func TestFilterRange_OffsetEvents(t *testing.T) {
	// 01:30 on Nov 20 at +03:00 is 22:30 on Nov 19 in UTC.
	offset := time.FixedZone("EAT", 3*60*60)
	events := []facility.Timestamp{
		{ID: 1, Time: time.Date(2023, 11, 20, 1, 30, 0, 0, offset)},
	}

	nov19, err := facility.ParseDateRange("2023-11-19", "2023-11-19")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := facility.FilterRange(events, nov19); len(got) != 1 {
		t.Errorf("expected the event on its UTC date, got %d events", len(got))
	}

	nov20, _ := facility.ParseDateRange("2023-11-20", "2023-11-20")
	if got := facility.FilterRange(events, nov20); len(got) != 0 {
		t.Errorf("expected no events on the local-zone date, got %d", len(got))
	}
}

// TestFilterRange_Chronological verifies results come back ordered by
// time, ties broken by id.
func TestFilterRange_Chronological(t *testing.T) {
	tie := at("2023-11-19", 9)
	events := []facility.Timestamp{
		{ID: 5, Time: at("2023-11-19", 12)},
		{ID: 4, Time: tie},
		{ID: 2, Time: tie},
		{ID: 3, Time: at("2023-11-19", 6)},
	}

	r, _ := facility.ParseDateRange("2023-11-19", "2023-11-19")
	got := facility.FilterRange(events, r)

	want := []int64{3, 2, 4, 5}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected event %d, got %d", i, id, got[i].ID)
		}
	}
}

// TestFilterRange_Monotonic verifies a sub-interval's results are a subset
// of the enclosing interval's results.
func TestFilterRange_Monotonic(t *testing.T) {
	events := []facility.Timestamp{
		{ID: 1, Time: at("2023-11-17", 8)},
		{ID: 2, Time: at("2023-11-19", 8)},
		{ID: 3, Time: at("2023-11-21", 8)},
	}

	inner, _ := facility.ParseDateRange("2023-11-18", "2023-11-20")
	outer, _ := facility.ParseDateRange("2023-11-16", "2023-11-22")

	innerGot := facility.FilterRange(events, inner)
	outerGot := facility.FilterRange(events, outer)

	outerIDs := make(map[int64]bool)
	for _, ts := range outerGot {
		outerIDs[ts.ID] = true
	}
	for _, ts := range innerGot {
		if !outerIDs[ts.ID] {
			t.Errorf("event %d in sub-interval but missing from enclosing interval", ts.ID)
		}
	}
}

func TestParseDateRange_StartAfterEnd(t *testing.T) {
	_, err := facility.ParseDateRange("2023-11-20", "2023-11-19")
	if !errors.Is(err, facility.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestParseDateRange_BadDate(t *testing.T) {
	_, err := facility.ParseDateRange("not-a-date", "2023-11-19")
	if !errors.Is(err, facility.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestParseDateRange_SingleDay(t *testing.T) {
	if _, err := facility.ParseDateRange("2023-11-19", "2023-11-19"); err != nil {
		t.Errorf("single-day range should be valid, got %v", err)
	}
}
