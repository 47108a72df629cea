package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// PassengerRepo serves the passenger directory: passengers that have visited
// the lounge at least once, with their full visit history.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo returns a new PassengerRepo bound to the given database.
func NewPassengerRepo(db *sql.DB) *PassengerRepo { return &PassengerRepo{db: db} }

// PassengerEntries is a passenger with their lounge visits, newest first.
type PassengerEntries struct {
	ID           uint64         `json:"id"`
	Name         string         `json:"name"`
	FlightNumber string         `json:"flight_number"`
	Entries      []VisitSummary `json:"lounge_entries"`
}

// VisitSummary is one visit in a passenger's history.
type VisitSummary struct {
	ID        uint64     `json:"id"`
	EntryTime time.Time  `json:"-"`
	ExitTime  *time.Time `json:"-"`
	Status    string     `json:"status"`
}

// Search returns passengers having at least one lounge entry, optionally
// narrowed by a case-insensitive substring match on name or flight number,
// ordered by name.  Each passenger carries their entries ordered by
// entry_time descending.  Entries for all matched passengers are loaded in a
// single IN query.
func (r *PassengerRepo) Search(ctx context.Context, query string) ([]PassengerEntries, error) {
	q := `SELECT DISTINCT p.id, p.name, p.flight_number
	      FROM passengers p
	      JOIN lounge_entries e ON e.passenger_id = p.id`
	args := []interface{}{}
	if query != "" {
		q += ` WHERE p.name LIKE ? OR p.flight_number LIKE ?`
		pat := "%" + query + "%"
		args = append(args, pat, pat)
	}
	q += ` ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]PassengerEntries, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var p PassengerEntries
		if err := rows.Scan(&p.ID, &p.Name, &p.FlightNumber); err != nil {
			return nil, err
		}
		p.Entries = []VisitSummary{}
		index[p.ID] = len(passengers)
		passengers = append(passengers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(passengers) == 0 {
		return passengers, nil
	}

	ids := make([]interface{}, 0, len(passengers))
	placeholders := make([]string, 0, len(passengers))
	for _, p := range passengers {
		ids = append(ids, p.ID)
		placeholders = append(placeholders, "?")
	}
	entryQ := `SELECT passenger_id, id, entry_time, exit_time, status
	           FROM lounge_entries
	           WHERE passenger_id IN (` + strings.Join(placeholders, ",") + `)
	           ORDER BY entry_time DESC`
	erows, err := r.db.QueryContext(ctx, entryQ, ids...)
	if err != nil {
		return nil, err
	}
	defer erows.Close()
	for erows.Next() {
		var pid uint64
		var v VisitSummary
		var exit sql.NullTime
		if err := erows.Scan(&pid, &v.ID, &v.EntryTime, &exit, &v.Status); err != nil {
			return nil, err
		}
		if exit.Valid {
			t := exit.Time
			v.ExitTime = &t
		}
		idx, ok := index[pid]
		if !ok {
			continue
		}
		passengers[idx].Entries = append(passengers[idx].Entries, v)
	}
	if err := erows.Err(); err != nil {
		return nil, err
	}
	return passengers, nil
}
