package models

import "time"

type Blog struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Image    string   `json:"image,omitempty"`
	Category string   `json:"category"`
	Summary  string   `json:"summary"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	// Author is the id of the user who created the blog; immutable after creation.
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
}
