package posts

import "context"

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post, assigning an id when the caller left it
	// empty, and returns the stored row
	Create(ctx context.Context, post *Post) (*Post, error)

	// GetByID retrieves a single post
	GetByID(ctx context.Context, id string) (*Post, error)

	// GetByIDs retrieves all posts matching the given ids in a single query.
	// Missing ids are silently absent from the result; no order guarantee.
	GetByIDs(ctx context.Context, ids []string) ([]*Post, error)
}
