package model

import "time"

type Post struct {
	ID       int64     `json:"id"`
	AuthorID string    `json:"author_id"`
	Created  time.Time `json:"created"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Slug     string    `json:"slug"`
}
