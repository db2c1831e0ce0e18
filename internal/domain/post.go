package domain

import "time"

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Private     bool      `json:"private"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VisibleTo indica si el post puede ser leído por el usuario dado.
func (p Post) VisibleTo(userID string) bool {
	if !p.Private {
		return true
	}
	return p.AuthorID == userID
}

// OwnedBy indica si el usuario dado puede mutar el post.
func (p Post) OwnedBy(userID string) bool {
	return p.AuthorID == userID
}
