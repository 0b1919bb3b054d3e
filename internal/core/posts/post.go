package posts

import "time"

// Post is the entity comments attach to. The comment engine holds only a
// foreign reference (post_id) with no integrity enforcement; posts live in
// their own relational store.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
