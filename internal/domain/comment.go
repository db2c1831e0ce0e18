package domain

import "time"

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
