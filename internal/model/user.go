package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"date"`
}

// TokenResponse is the body returned by registration and login.
type TokenResponse struct {
	Token string `json:"token"`
}
