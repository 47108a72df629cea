package repository

import (
	"context"
	"database/sql"

	"github.com/primavista/lounge-backend/internal/model"
)

// SettingRepo reads and writes the single lounge_settings row.  Reads take
// the first row; the first write creates it.
type SettingRepo struct{ DB *sql.DB }

func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{DB: db} }

// Get returns the first stored settings row, or sql.ErrNoRows when the table
// is empty.
func (r *SettingRepo) Get(ctx context.Context) (model.LoungeSetting, error) {
	var s model.LoungeSetting
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, lounge_name, lounge_address, lounge_capacity, entry_tracking_method
		 FROM lounge_settings ORDER BY id LIMIT 1`).
		Scan(&s.ID, &s.LoungeName, &s.LoungeAddress, &s.LoungeCapacity, &s.EntryTrackingMethod)
	return s, err
}

// Save persists the settings row: an insert when s.ID is zero (first write),
// otherwise an update of the existing row.
func (r *SettingRepo) Save(ctx context.Context, s model.LoungeSetting) error {
	if s.ID == 0 {
		_, err := r.DB.ExecContext(ctx,
			`INSERT INTO lounge_settings (lounge_name, lounge_address, lounge_capacity, entry_tracking_method)
			 VALUES (?,?,?,?)`,
			s.LoungeName, s.LoungeAddress, s.LoungeCapacity, s.EntryTrackingMethod)
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE lounge_settings SET lounge_name=?, lounge_address=?, lounge_capacity=?, entry_tracking_method=?
		 WHERE id=?`,
		s.LoungeName, s.LoungeAddress, s.LoungeCapacity, s.EntryTrackingMethod, s.ID)
	return err
}
