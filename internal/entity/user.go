package entity

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsHost       bool      `json:"is_host" db:"is_host"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PublicUser is the profile shape exposed over the API, credential excluded.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsHost   bool   `json:"is_host"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsHost:   u.IsHost,
	}
}
