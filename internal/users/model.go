package users

import "time"

// User is a registered guardian.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	CreatedAt    time.Time
}
