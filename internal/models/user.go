package models

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Blogs        []BlogRef `json:"blogs"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRef is the public projection of a user attached to blogs
// (owner and likers).
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}
