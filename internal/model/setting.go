package model

// LoungeSetting is the singleton configuration row for the lounge.  Reads
// always take the first row; the first admin write creates it.
//
// Fields:
//
//	ID                  – primary key identifier (only one row is ever used).
//	LoungeName          – display name of the lounge.
//	LoungeAddress       – street address.
//	LoungeCapacity      – seat capacity.
//	EntryTrackingMethod – how entries are recorded, e.g. "manual" or "qr_scan".
type LoungeSetting struct {
	ID                  uint64 // lounge_settings.id
	LoungeName          string // lounge_settings.lounge_name
	LoungeAddress       string // lounge_settings.lounge_address
	LoungeCapacity      int    // lounge_settings.lounge_capacity
	EntryTrackingMethod string // lounge_settings.entry_tracking_method
}

// DefaultLoungeSetting is returned (not persisted) when no settings row
// exists yet.
func DefaultLoungeSetting() LoungeSetting {
	return LoungeSetting{
		LoungeName:          "Prima Vista Lounge",
		LoungeAddress:       "",
		LoungeCapacity:      0,
		EntryTrackingMethod: "manual",
	}
}
