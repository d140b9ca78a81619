package user

import "time"

// User is an account holder. Email is unique across all users and doubles as
// the login and the token subject. PasswordHash is never serialized.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	LastLogin    *time.Time
}
