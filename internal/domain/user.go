package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Account is the public view of a user returned by signup and login.
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
