package models

import "time"

type User struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	// Never serialized; only the db and the auth flow see it.
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
