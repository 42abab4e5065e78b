package models

import "time"

// Blog represents a single blog post.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	OwnerID   string    `json:"-"` // Internal use; clients see User
	User      *UserRef  `json:"user,omitempty"`
	LikedBy   []UserRef `json:"likedBy"`
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogRef is the projection of a blog attached to its owner's user record.
type BlogRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
}
