package user

import "time"

// User is an account holder. PasswordHash is empty for Google-only accounts.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	GoogleID     string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated identity attached to a request context.
type Principal struct {
	UserID string
	Email  string
}
