// Package queue defines message payloads exchanged over the message broker.
package queue

// CheckinQueueName is the durable queue carrying check-in announcements.
const CheckinQueueName = "lounge.checkin"

// CheckinEvent is published after a passenger check-in commits.  It carries
// enough for downstream consumers (occupancy displays, shift logs) without
// querying the primary database.
type CheckinEvent struct {
	EntryID       uint64 `json:"entry_id"`
	PassengerName string `json:"passenger_name"`
	FlightNumber  string `json:"flight_number"`
	EntryTime     string `json:"entry_time"`
	CheckedInAt   string `json:"checked_in_at"`
}
