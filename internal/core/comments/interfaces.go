package comments

import (
	"context"
	"time"
)

// ThreadFilter narrows store-side queries over thread root documents.
// The zero value matches every thread.
type ThreadFilter struct {
	// PostIDs restricts to threads owned by any of these posts
	PostIDs []string

	// Since restricts to threads published at or after this instant
	Since *time.Time
}

// Repository defines the data access interface for comment threads: a thin
// adapter over a search-indexed document store. One document per root
// thread; replies live embedded inside it, so document-level operations
// cascade over the whole tree.
type Repository interface {
	// GetThread retrieves a thread document by its store-assigned id,
	// including the concurrency tokens needed for ReplaceThread
	GetThread(ctx context.Context, id string) (*Thread, error)

	// CreateThread indexes a brand-new root document and returns the
	// store-assigned id. The write is searchable before the call returns.
	CreateThread(ctx context.Context, root *Comment) (string, error)

	// ReplaceThread writes the whole document back, guarded by the thread's
	// concurrency tokens. Returns ErrConcurrentModification if the stored
	// document changed since it was fetched.
	ReplaceThread(ctx context.Context, t *Thread) error

	// DeleteThread removes a thread document and, with it, every nested reply
	DeleteThread(ctx context.Context, id string) error

	// DeleteByPostID removes every thread owned by a post and returns how
	// many were deleted. Idempotent: deleting again removes zero, no error.
	DeleteByPostID(ctx context.Context, postID string) (int64, error)

	// CountThreads counts thread documents matching the filter
	CountThreads(ctx context.Context, f ThreadFilter) (int64, error)

	// SearchThreads returns up to size matching threads sorted by
	// published_at; descending when sortDesc is set
	SearchThreads(ctx context.Context, f ThreadFilter, sortDesc bool, size int) ([]*Thread, error)

	// ScanThreads exhaustively retrieves every matching thread through
	// repeated cursor continuation, regardless of result set size
	ScanThreads(ctx context.Context, f ThreadFilter) ([]*Thread, error)

	// AggregateStats computes the per-post top buckets and the time-bucketed
	// histogram for matching threads. Missing aggregations come back as
	// empty slices, never nil.
	AggregateStats(ctx context.Context, f ThreadFilter, interval string) (*StatsBuckets, error)
}
