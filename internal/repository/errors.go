// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values let handlers distinguish failure
// scenarios without inspecting driver errors: ErrUsernameExists maps to the
// duplicate-registration response and ErrAlreadyExited to the terminal-state
// conflict on a lounge entry.  "Row not found" is always sql.ErrNoRows.
package repository

import "errors"

// ErrUsernameExists is returned when an insert would duplicate a username.
// Handlers translate this into an HTTP 400 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrAlreadyExited is returned when an exit is attempted on a lounge entry
// that is already in the terminal "exited" state.  Handlers translate this
// into an HTTP 400 response.
var ErrAlreadyExited = errors.New("already exited")
