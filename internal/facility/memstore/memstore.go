// Package memstore is an in-memory facility.Store. It backs the handler
// tests and doubles as a no-database dev mode; every instance owns an
// isolated ledger, so tests never share state.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/KMastroluca/mvscanner/internal/facility"
)

// Store keeps everything under one RWMutex. The event id counter is
// guarded by the same lock as the ledger itself, so two concurrent appends
// can never draw the same id, and readers always see either all of an
// append or none of it.
type Store struct {
	mu        sync.RWMutex
	residents map[string]facility.Resident
	locations map[int]facility.Location
	events    map[int64]facility.Timestamp
	nextEvent int64
	nextLocID int
}

func New() *Store {
	return &Store{
		residents: make(map[string]facility.Resident),
		locations: make(map[int]facility.Location),
		events:    make(map[int64]facility.Timestamp),
		nextEvent: 1,
		nextLocID: 1,
	}
}

func (s *Store) ListResidents() ([]facility.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]facility.Resident, 0, len(s.residents))
	for _, r := range s.residents {
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) GetResident(rfid string) (facility.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.residents[rfid]
	if !ok {
		return facility.Resident{}, facility.ErrNotFound
	}
	return r, nil
}

func (s *Store) CreateResident(r facility.Resident) (facility.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.residents[r.RFID]; exists {
		return facility.Resident{}, facility.ErrDuplicateIdentity
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.residents[r.RFID] = r
	return r, nil
}

func (s *Store) UpdateResident(rfid string, patch facility.ResidentUpdate) (facility.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.residents[rfid]
	if !ok {
		return facility.Resident{}, facility.ErrNotFound
	}
	patch.Apply(&r)
	s.residents[rfid] = r
	return r, nil
}

func (s *Store) DeleteResident(rfid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.residents[rfid]; !ok {
		return facility.ErrNotFound
	}
	for _, ts := range s.events {
		if ts.RFID == rfid {
			return facility.ErrReferentialConflict
		}
	}
	delete(s.residents, rfid)
	return nil
}

func (s *Store) ListLocations() ([]facility.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]facility.Location, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, l)
	}
	return out, nil
}

func (s *Store) GetLocation(id int) (facility.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locations[id]
	if !ok {
		return facility.Location{}, facility.ErrNotFound
	}
	return l, nil
}

func (s *Store) CreateLocation(l facility.Location) (facility.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		for {
			if _, taken := s.locations[s.nextLocID]; !taken {
				break
			}
			s.nextLocID++
		}
		l.ID = s.nextLocID
		s.nextLocID++
	} else if _, exists := s.locations[l.ID]; exists {
		return facility.Location{}, facility.ErrDuplicateIdentity
	}
	s.locations[l.ID] = l
	return l, nil
}

func (s *Store) UpdateLocation(id int, patch facility.LocationUpdate) (facility.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locations[id]
	if !ok {
		return facility.Location{}, facility.ErrNotFound
	}
	patch.Apply(&l)
	s.locations[id] = l
	return l, nil
}

func (s *Store) DeleteLocation(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[id]; !ok {
		return facility.ErrNotFound
	}
	for _, ts := range s.events {
		if ts.Dest == id {
			return facility.ErrReferentialConflict
		}
	}
	delete(s.locations, id)
	return nil
}

func (s *Store) ListTimestamps() ([]facility.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eventsByID(), nil
}

func (s *Store) GetTimestamp(id int64) (facility.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.events[id]
	if !ok {
		return facility.Timestamp{}, facility.ErrNotFound
	}
	return ts, nil
}

func (s *Store) CreateTimestamp(ts facility.Timestamp) (facility.Timestamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.residents[ts.RFID]; !ok {
		return facility.Timestamp{}, facility.ErrInvalidReference
	}
	if _, ok := s.locations[ts.Dest]; !ok {
		return facility.Timestamp{}, facility.ErrInvalidReference
	}
	if ts.Time.IsZero() {
		ts.Time = time.Now()
	}
	ts.ID = s.nextEvent
	s.nextEvent++
	s.events[ts.ID] = ts
	return ts, nil
}

func (s *Store) UpdateTimestamp(id int64, patch facility.TimestampUpdate) (facility.Timestamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.events[id]
	if !ok {
		return facility.Timestamp{}, facility.ErrNotFound
	}
	if patch.Dest != nil {
		if _, ok := s.locations[*patch.Dest]; !ok {
			return facility.Timestamp{}, facility.ErrInvalidReference
		}
	}
	patch.Apply(&ts)
	s.events[id] = ts
	return ts, nil
}

func (s *Store) DeleteTimestamp(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return facility.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *Store) TimestampsInRange(r facility.DateRange) ([]facility.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return facility.FilterRange(s.eventsByID(), r), nil
}

func (s *Store) ResidentTimestamps(rfid string) ([]facility.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]facility.Timestamp, 0)
	for _, ts := range s.events {
		if ts.RFID == rfid {
			out = append(out, ts)
		}
	}
	facility.SortChronological(out)
	return out, nil
}

func (s *Store) ResidentTimestampsInRange(rfid string, r facility.DateRange) ([]facility.Timestamp, error) {
	events, _ := s.ResidentTimestamps(rfid)
	return facility.FilterRange(events, r), nil
}

func (s *Store) LocationTimestamps(id int) ([]facility.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]facility.Timestamp, 0)
	for _, ts := range s.events {
		if ts.Dest == id {
			out = append(out, ts)
		}
	}
	facility.SortChronological(out)
	return out, nil
}

func (s *Store) LocationTimestampsInRange(id int, r facility.DateRange) ([]facility.Timestamp, error) {
	events, _ := s.LocationTimestamps(id)
	return facility.FilterRange(events, r), nil
}

func (s *Store) CurrentLocation(rfid string) (facility.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.residents[rfid]; !ok {
		return facility.Timestamp{}, facility.ErrNotFound
	}
	var own []facility.Timestamp
	for _, ts := range s.events {
		if ts.RFID == rfid {
			own = append(own, ts)
		}
	}
	latest, ok := facility.LatestEvent(own)
	if !ok {
		return facility.Timestamp{}, facility.ErrNoHistory
	}
	return latest, nil
}

func (s *Store) ResidentsAt(id int) ([]facility.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.locations[id]; !ok {
		return nil, facility.ErrNotFound
	}
	out := make([]facility.Resident, 0)
	for rfid, latest := range facility.CurrentByResident(s.eventsByID()) {
		if latest.Dest != id {
			continue
		}
		if r, ok := s.residents[rfid]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// eventsByID snapshots the ledger in insertion order. Callers hold at
// least the read lock.
func (s *Store) eventsByID() []facility.Timestamp {
	out := make([]facility.Timestamp, 0, len(s.events))
	for _, ts := range s.events {
		out = append(out, ts)
	}
	// Ids are assigned monotonically, so ascending id is insertion order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
