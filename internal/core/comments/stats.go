package comments

import (
	"time"

	"Talkback/internal/core/posts"
)

// DefaultStatsInterval is the histogram granularity used when the caller
// doesn't pick one. Intervals are calendar units understood by the store's
// date histogram: "minute", "hour", "day", "week", "month", "quarter", "year".
const DefaultStatsInterval = "day"

// StatsRequest selects which slice of the corpus to aggregate over.
// Zero value covers everything.
type StatsRequest struct {
	PostID    string
	StartDate *time.Time
	Interval  string
}

// Stats is the aggregate view over matching comment threads
type Stats struct {
	CommentsByDate     []DateBucket        `json:"comments_by_date"`
	MostCommentedPosts []MostCommentedPost `json:"most_commented_posts"`
	RecentComments     []*Comment          `json:"recent_comments"`
	CommentsCount      int64               `json:"comments_count"`
}

// DateBucket is one histogram bucket: the bucket's start instant and how
// many threads were published inside it
type DateBucket struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// PostBucket is one term-aggregation bucket keyed by post id
type PostBucket struct {
	PostID string
	Count  int64
}

// MostCommentedPost joins a term-aggregation bucket against the post store
type MostCommentedPost struct {
	Post          *posts.Post `json:"post"`
	CommentsCount int64       `json:"comments_count"`
}

// StatsBuckets carries the raw index-side aggregation results before the
// service joins them against the post store
type StatsBuckets struct {
	ByDate   []DateBucket
	TopPosts []PostBucket
}
