package model

import "time"

type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"-"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post carries the author's name and avatar denormalized at creation time,
// so post listings never join back to the users table. A deleted account
// therefore leaves its posts (and their author fields) behind.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}
