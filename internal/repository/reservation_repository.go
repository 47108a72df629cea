package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/primavista/lounge-backend/internal/model"
)

// ReservationRepo provides CRUD operations for lounge reservations.  Dates
// and times are DATE and TIME columns with no timezone; the repo exposes
// them as their column text ("2006-01-02" / "15:04:05").
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a new reservation and returns it with its generated ID.
// Status should already be a valid enumeration value.
func (r *ReservationRepo) Create(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	const q = `INSERT INTO reservations
	           (passenger_name, flight_number, reservation_date, reservation_time, number_of_guests, status)
	           VALUES (?,?,?,?,?,?)`
	result, err := r.db.ExecContext(ctx, q,
		res.PassengerName, res.FlightNumber, res.Date, res.Time, res.NumberOfGuests, res.Status)
	if err != nil {
		return model.Reservation{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Reservation{}, err
	}
	res.ID = uint64(id)
	return res, nil
}

// List returns reservations ordered by date descending then time descending.
// Filter semantics:
//
//	"upcoming"  – date >= today and status confirmed
//	"past"      – date < today, any status
//	"cancelled" – status cancelled
//	other/empty – everything
//
// today is the caller's UTC calendar date.
func (r *ReservationRepo) List(ctx context.Context, filter string, today time.Time) ([]model.Reservation, error) {
	q := `SELECT id, passenger_name, flight_number, reservation_date, reservation_time, number_of_guests, status
	      FROM reservations`
	args := []interface{}{}
	day := today.Format("2006-01-02")
	switch filter {
	case "upcoming":
		q += ` WHERE reservation_date >= ? AND status = ?`
		args = append(args, day, model.ReservationConfirmed)
	case "past":
		q += ` WHERE reservation_date < ?`
		args = append(args, day)
	case "cancelled":
		q += ` WHERE status = ?`
		args = append(args, model.ReservationCancelled)
	}
	q += ` ORDER BY reservation_date DESC, reservation_time DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetByID fetches a single reservation.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, passenger_name, flight_number, reservation_date, reservation_time, number_of_guests, status
		 FROM reservations WHERE id=? LIMIT 1`, id)
	return scanReservation(row)
}

// UpdateStatus overwrites a reservation's status unconditionally.  It returns
// sql.ErrNoRows when the id does not resolve to a reservation.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Reservation, error) {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", status, id); err != nil {
		return model.Reservation{}, err
	}
	res.Status = status
	return res, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation reads one reservation row.  With parseTime enabled the
// DATE column scans as time.Time while TIME stays raw bytes; both are
// normalized to the column text the API round-trips.
func scanReservation(row rowScanner) (model.Reservation, error) {
	var res model.Reservation
	var date time.Time
	var tm []byte
	err := row.Scan(&res.ID, &res.PassengerName, &res.FlightNumber, &date, &tm, &res.NumberOfGuests, &res.Status)
	if err != nil {
		return model.Reservation{}, err
	}
	res.Date = date.Format("2006-01-02")
	res.Time = string(tm)
	return res, nil
}
