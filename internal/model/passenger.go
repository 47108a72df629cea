package model

import "time"

// Lounge entry states.  An entry is created "active" and moves to "exited"
// exactly once; there is no transition out of "exited".
const (
	EntryStatusActive = "active"
	EntryStatusExited = "exited"
)

// Passenger identifies a traveller context as a (name, flight number) pair.
// The pair is used as a natural lookup key at check-in but carries no
// uniqueness constraint, so duplicates are tolerated and reused when found.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – passenger name.
//	FlightNumber – flight the passenger is travelling on.
type Passenger struct {
	ID           uint64 // passengers.id
	Name         string // passengers.name
	FlightNumber string // passengers.flight_number
}

// LoungeEntry records one physical lounge visit from check-in to exit.
// Status is "exited" iff ExitTime is set.
//
// Fields:
//
//	ID          – primary key identifier.
//	PassengerID – owning passenger.
//	EntryTime   – check-in instant (UTC).
//	ExitTime    – exit instant, nil while the visit is active.
//	Status      – "active" or "exited".
type LoungeEntry struct {
	ID          uint64     // lounge_entries.id
	PassengerID uint64     // lounge_entries.passenger_id
	EntryTime   time.Time  // lounge_entries.entry_time
	ExitTime    *time.Time // lounge_entries.exit_time (nullable)
	Status      string     // lounge_entries.status
}
