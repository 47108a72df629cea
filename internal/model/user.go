package model

import "time"

// Role values form a closed set; the authorization middleware only ever
// compares against these two constants so a typo in stored data can deny
// access but never grant it.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleStaff
}

// User represents an operator account as stored in the `users` table.
// Passwords are only ever stored as bcrypt hashes.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name (case-sensitive).
//	PasswordHash – bcrypt hashed password.
//	Role         – authorization tier: "admin" or "staff".
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each token
// belongs to a user; only the SHA-256 hash of the token value is stored.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
