package facility

import "sort"

// The derivation helpers are pure functions over event slices so that the
// in-memory and DB-backed stores share one definition of "latest" and one
// chronological ordering. Given the same events they always produce the
// same answer.

// newer reports whether a should replace b as the latest event: later
// time wins, equal times fall back to the higher id (most recently
// ingested).
func newer(a, b Timestamp) bool {
	if !a.Time.Equal(b.Time) {
		return a.Time.After(b.Time)
	}
	return a.ID > b.ID
}

// LatestEvent picks the resident-current event out of events: maximum
// time, ties broken by maximum id. ok is false for an empty slice.
func LatestEvent(events []Timestamp) (latest Timestamp, ok bool) {
	for _, ts := range events {
		if !ok || newer(ts, latest) {
			latest = ts
			ok = true
		}
	}
	return latest, ok
}

// CurrentByResident folds the whole ledger into each resident's latest
// event. Residents with no events have no entry. One O(E) pass.
func CurrentByResident(events []Timestamp) map[string]Timestamp {
	current := make(map[string]Timestamp)
	for _, ts := range events {
		if prev, seen := current[ts.RFID]; !seen || newer(ts, prev) {
			current[ts.RFID] = ts
		}
	}
	return current
}

// FilterRange returns the events whose time falls within r, in
// chronological order (time, then id). The input slice is not modified.
func FilterRange(events []Timestamp, r DateRange) []Timestamp {
	out := make([]Timestamp, 0)
	for _, ts := range events {
		if r.Contains(ts.Time) {
			out = append(out, ts)
		}
	}
	SortChronological(out)
	return out
}

// SortChronological orders events by time, ties broken by id.
func SortChronological(events []Timestamp) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Time.Equal(events[j].Time) {
			return events[i].Time.Before(events[j].Time)
		}
		return events[i].ID < events[j].ID
	})
}
