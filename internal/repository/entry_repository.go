package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/primavista/lounge-backend/internal/model"
)

// EntryRepo owns the lounge entry lifecycle: the check-in transaction, the
// single active→exited transition, and the aggregate queries behind the
// dashboard and the usage report.  All timestamps are stored in UTC.
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo returns a new EntryRepo bound to the given database.
func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{db: db} }

// EntrySummary is a lounge entry joined with its passenger, as shown on the
// dashboard feed and returned from check-in.
type EntrySummary struct {
	ID            uint64    `json:"id"`
	PassengerName string    `json:"passenger_name"`
	FlightNumber  string    `json:"flight_number"`
	EntryTime     time.Time `json:"-"`
	Status        string    `json:"status"`
}

// StayWindow is the (entry, exit) pair of a completed visit, used to compute
// average stay duration.
type StayWindow struct {
	EntryTime time.Time
	ExitTime  time.Time
}

// CheckIn resolves the passenger by exact (name, flight) match, creating one
// when absent, and records a new active entry.  Both writes commit in a
// single transaction; on any failure the transaction is rolled back and the
// error returned, so no partial check-in is ever visible.
func (r *EntryRepo) CheckIn(ctx context.Context, name, flight string, entryTime time.Time) (EntrySummary, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return EntrySummary{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var passengerID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM passengers WHERE name=? AND flight_number=? LIMIT 1",
		name, flight).Scan(&passengerID)
	if err == sql.ErrNoRows {
		res, ierr := tx.ExecContext(ctx,
			"INSERT INTO passengers (name, flight_number) VALUES (?,?)", name, flight)
		if ierr != nil {
			return EntrySummary{}, ierr
		}
		id, ierr := res.LastInsertId()
		if ierr != nil {
			return EntrySummary{}, ierr
		}
		passengerID = uint64(id)
	} else if err != nil {
		return EntrySummary{}, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO lounge_entries (passenger_id, entry_time, status) VALUES (?,?,?)",
		passengerID, entryTime, model.EntryStatusActive)
	if err != nil {
		return EntrySummary{}, err
	}
	entryID, err := res.LastInsertId()
	if err != nil {
		return EntrySummary{}, err
	}
	if err := tx.Commit(); err != nil {
		return EntrySummary{}, err
	}
	return EntrySummary{
		ID:            uint64(entryID),
		PassengerName: name,
		FlightNumber:  flight,
		EntryTime:     entryTime,
		Status:        model.EntryStatusActive,
	}, nil
}

// Exit moves an entry from active to exited, recording the exit time.  It
// returns sql.ErrNoRows when the entry does not exist and ErrAlreadyExited
// when the entry is already terminal.  The returned entry reflects the
// updated row.
func (r *EntryRepo) Exit(ctx context.Context, entryID uint64, exitTime time.Time) (model.LoungeEntry, error) {
	var e model.LoungeEntry
	var exit sql.NullTime
	err := r.db.QueryRowContext(ctx,
		"SELECT id, passenger_id, entry_time, exit_time, status FROM lounge_entries WHERE id=? LIMIT 1",
		entryID).Scan(&e.ID, &e.PassengerID, &e.EntryTime, &exit, &e.Status)
	if err != nil {
		return model.LoungeEntry{}, err
	}
	if e.Status == model.EntryStatusExited {
		return model.LoungeEntry{}, ErrAlreadyExited
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE lounge_entries SET exit_time=?, status=? WHERE id=?",
		exitTime, model.EntryStatusExited, entryID); err != nil {
		return model.LoungeEntry{}, err
	}
	e.ExitTime = &exitTime
	e.Status = model.EntryStatusExited
	return e, nil
}

// CountActive counts entries still in the lounge, regardless of the day they
// entered.
func (r *EntryRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM lounge_entries WHERE status=?",
		model.EntryStatusActive).Scan(&n)
	return n, err
}

// CountEntriesBetween counts entries whose entry_time falls inside
// [start, end] inclusive.
func (r *EntryRepo) CountEntriesBetween(ctx context.Context, start, end time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM lounge_entries WHERE entry_time >= ? AND entry_time <= ?",
		start, end).Scan(&n)
	return n, err
}

// CompletedStaysBetween returns the (entry, exit) windows of exited entries
// whose exit_time falls inside [start, end] inclusive.
func (r *EntryRepo) CompletedStaysBetween(ctx context.Context, start, end time.Time) ([]StayWindow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entry_time, exit_time FROM lounge_entries
		 WHERE status=? AND exit_time >= ? AND exit_time <= ?`,
		model.EntryStatusExited, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stays := make([]StayWindow, 0)
	for rows.Next() {
		var s StayWindow
		if err := rows.Scan(&s.EntryTime, &s.ExitTime); err != nil {
			return nil, err
		}
		stays = append(stays, s)
	}
	return stays, rows.Err()
}

// Recent returns the most recent entries joined with their passengers,
// ordered by entry_time descending and truncated to limit.
func (r *EntryRepo) Recent(ctx context.Context, limit int) ([]EntrySummary, error) {
	const q = `SELECT e.id, p.name, p.flight_number, e.entry_time, e.status
	           FROM lounge_entries e
	           JOIN passengers p ON p.id = e.passenger_id
	           ORDER BY e.entry_time DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]EntrySummary, 0, limit)
	for rows.Next() {
		var s EntrySummary
		if err := rows.Scan(&s.ID, &s.PassengerName, &s.FlightNumber, &s.EntryTime, &s.Status); err != nil {
			return nil, err
		}
		entries = append(entries, s)
	}
	return entries, rows.Err()
}

// DailyCounts groups entries with entry_time inside [start, end] inclusive
// by calendar date and returns a date("2006-01-02") → count map.  Days with
// no entries are absent; the report layer fills the gaps.
func (r *EntryRepo) DailyCounts(ctx context.Context, start, end time.Time) (map[string]int, error) {
	const q = `SELECT DATE(entry_time) AS d, COUNT(*) AS n
	           FROM lounge_entries
	           WHERE entry_time >= ? AND entry_time <= ?
	           GROUP BY DATE(entry_time)`
	rows, err := r.db.QueryContext(ctx, q, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var d time.Time
		var n int
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		counts[d.Format("2006-01-02")] = n
	}
	return counts, rows.Err()
}
