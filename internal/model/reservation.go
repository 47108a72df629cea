package model

// Reservation statuses.  Any status may be set from any other via the
// status-update operation; only membership in this set is validated.
const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// ValidReservationStatus reports whether s is an allowed reservation status.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Reservation is a booked future (or past) lounge visit, independent of any
// actual check-in.  Date and time are stored as their SQL DATE and TIME
// column text ("2006-01-02" and "15:04:05") since no timezone applies.
//
// Fields:
//
//	ID             – primary key identifier.
//	PassengerName  – name the booking was made under.
//	FlightNumber   – flight associated with the booking.
//	Date           – reservation date, "YYYY-MM-DD".
//	Time           – reservation time truncated to minute precision, "HH:MM:SS".
//	NumberOfGuests – party size, defaults to 1.
//	Status         – one of confirmed/cancelled/completed.
type Reservation struct {
	ID             uint64 // reservations.id
	PassengerName  string // reservations.passenger_name
	FlightNumber   string // reservations.flight_number
	Date           string // reservations.reservation_date
	Time           string // reservations.reservation_time
	NumberOfGuests int    // reservations.number_of_guests
	Status         string // reservations.status
}
