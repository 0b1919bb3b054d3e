package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"Talkback/internal/core/posts"
)

const (
	// defaultTimeout bounds every store round-trip sequence; the store
	// client applies no deadline of its own
	defaultTimeout = 10 * time.Second

	// replyWriteAttempts is how many times a reply write is retried when a
	// concurrent writer replaces the thread document first
	replyWriteAttempts = 3

	// recentCommentsSize is how many recent threads the stats view includes
	recentCommentsSize = 10
)

// Service defines the business logic interface for comment operations
type Service interface {
	// CreateComment stores a new comment. Without a reply path it starts a
	// new thread; with one it attaches a reply at the addressed node.
	CreateComment(ctx context.Context, req CreateCommentRequest) (*CreateCommentResponse, error)

	// ListByPostIDs retrieves the visible comment trees for a set of posts,
	// oldest thread first
	ListByPostIDs(ctx context.Context, postIDs []string) ([]*Comment, error)

	// GetAllComments retrieves every thread, unfiltered. Administrative
	// export path: spam and unapproved nodes are included deliberately.
	GetAllComments(ctx context.Context) ([]*Comment, error)

	// DeleteComment removes a thread document by id, cascading over every
	// nested reply
	DeleteComment(ctx context.Context, threadID string) error

	// DeletePostComments removes every thread owned by a post and returns
	// how many were deleted
	DeletePostComments(ctx context.Context, postID string) (int64, error)

	// GetStats computes aggregate statistics over matching threads
	GetStats(ctx context.Context, req StatsRequest) (*Stats, error)
}

// commentService implements the Service interface
// Coordinates the document store adapter, the tree mutation logic and the
// post store joins for stats
type commentService struct {
	repo     Repository       // Thread document access
	postRepo posts.Repository // Post lookup for stats enrichment
	logger   *slog.Logger     // Structured logger
	now      func() time.Time // Clock, injectable for tests
}

// NewCommentService creates a new comment service instance
func NewCommentService(repo Repository, postRepo posts.Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:     repo,
		postRepo: postRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateComment stores a new comment or reply
// Algorithm:
// 1. Validate every field up front, reporting all violations at once
// 2. Assign the server-side fields (comment_id, approved, published_at)
// 3. Without a reply path, index a brand-new root document
// 4. With one, fetch the root, snapshot the target, append and replace the
//    whole document under a version guard, retrying on conflict
func (s *commentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*CreateCommentResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	node := &Comment{
		CommentID:       newCommentID(),
		PostID:          req.PostID,
		Author:          req.Author,
		Content:         req.Content,
		UserHostAddress: req.UserHostAddress,
		UserAgent:       req.UserAgent,
		Spam:            *req.Spam,
		Approved:        !*req.Spam,
		PublishedAt:     s.now().UTC(),
		Replies:         []*Comment{},
	}

	if req.ReplyPath == nil {
		id, err := s.repo.CreateThread(ctx, node)
		if err != nil {
			return nil, fmt.Errorf("failed to create thread: %w", err)
		}
		node.ID = id
		s.logger.Info("thread created", "thread_id", id, "post_id", node.PostID)
		return &CreateCommentResponse{NewComment: node}, nil
	}

	// The read-append-replace sequence has no cross-request mutual
	// exclusion; the store's version tokens catch the lost-update race and
	// force a refetch against the winner's document.
	var lastErr error
	for attempt := 1; attempt <= replyWriteAttempts; attempt++ {
		thread, err := s.repo.GetThread(ctx, req.ReplyPath.ThreadID)
		if err != nil {
			return nil, err
		}

		target, err := ResolveReplyPath(thread, *req.ReplyPath)
		if err != nil {
			return nil, err
		}

		// Snapshot before mutation: the response carries the replied-to
		// node as it stood, pre-existing replies included
		repliedTo := target.Clone()

		target.Replies = append(target.Replies, node)

		err = s.repo.ReplaceThread(ctx, thread)
		if err == nil {
			s.logger.Info("reply created",
				"thread_id", thread.ID, "post_id", node.PostID, "depth", len(req.ReplyPath.Indices))
			return &CreateCommentResponse{NewComment: node, RepliedTo: repliedTo}, nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			return nil, fmt.Errorf("failed to persist reply: %w", err)
		}
		lastErr = err
		s.logger.Warn("reply write conflict, retrying",
			"thread_id", thread.ID, "attempt", attempt)
	}
	return nil, lastErr
}

// ListByPostIDs retrieves visible comment trees for a set of posts
func (s *commentService) ListByPostIDs(ctx context.Context, postIDs []string) ([]*Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	threads, err := s.repo.ScanThreads(ctx, ThreadFilter{PostIDs: postIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to scan threads: %w", err)
	}

	visible := FilterVisible(rootsOf(threads))
	sortByPublishedAt(visible)
	return visible, nil
}

// GetAllComments retrieves every thread without visibility filtering
func (s *commentService) GetAllComments(ctx context.Context) ([]*Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	threads, err := s.repo.ScanThreads(ctx, ThreadFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan threads: %w", err)
	}

	roots := rootsOf(threads)
	sortByPublishedAt(roots)
	return roots, nil
}

// DeleteComment removes one thread document by id
func (s *commentService) DeleteComment(ctx context.Context, threadID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.repo.DeleteThread(ctx, threadID); err != nil {
		return err
	}
	s.logger.Info("thread deleted", "thread_id", threadID)
	return nil
}

// DeletePostComments removes every thread owned by a post
func (s *commentService) DeletePostComments(ctx context.Context, postID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	deleted, err := s.repo.DeleteByPostID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete threads for post %s: %w", postID, err)
	}
	s.logger.Info("post threads deleted", "post_id", postID, "count", deleted)
	return deleted, nil
}

// GetStats computes aggregate statistics over matching threads
// Algorithm:
// 1. Build the filter from the request (post id and/or start date)
// 2. Count matching threads and fetch the most recent ones
// 3. Run the index-side aggregations (top posts, date histogram)
// 4. Join the top-post buckets against the post store
func (s *commentService) GetStats(ctx context.Context, req StatsRequest) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	interval := req.Interval
	if interval == "" {
		interval = DefaultStatsInterval
	}

	filter := ThreadFilter{Since: req.StartDate}
	if req.PostID != "" {
		filter.PostIDs = []string{req.PostID}
	}

	total, err := s.repo.CountThreads(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count threads: %w", err)
	}

	recent, err := s.repo.SearchThreads(ctx, filter, true, recentCommentsSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent threads: %w", err)
	}

	buckets, err := s.repo.AggregateStats(ctx, filter, interval)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	mostCommented, err := s.joinTopPosts(ctx, buckets.TopPosts)
	if err != nil {
		return nil, err
	}

	return &Stats{
		CommentsByDate:     buckets.ByDate,
		MostCommentedPosts: mostCommented,
		RecentComments:     rootsOf(recent),
		CommentsCount:      total,
	}, nil
}

// joinTopPosts enriches term-aggregation buckets with post metadata.
// Buckets whose post no longer resolves are skipped, not failed: stale ids
// can linger in the index after a post is removed.
func (s *commentService) joinTopPosts(ctx context.Context, topPosts []PostBucket) ([]MostCommentedPost, error) {
	mostCommented := make([]MostCommentedPost, 0, len(topPosts))
	if len(topPosts) == 0 {
		return mostCommented, nil
	}

	ids := make([]string, 0, len(topPosts))
	for _, bucket := range topPosts {
		ids = append(ids, bucket.PostID)
	}

	found, err := s.postRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts for stats: %w", err)
	}
	byID := make(map[string]*posts.Post, len(found))
	for _, post := range found {
		byID[post.ID] = post
	}

	// Bucket order is the store's: count descending, then post id ascending
	for _, bucket := range topPosts {
		post, ok := byID[bucket.PostID]
		if !ok {
			s.logger.Warn("skipping most-commented bucket for unknown post", "post_id", bucket.PostID)
			continue
		}
		mostCommented = append(mostCommented, MostCommentedPost{
			Post:          post,
			CommentsCount: bucket.Count,
		})
	}
	return mostCommented, nil
}

// rootsOf extracts root comments from threads, tagging each with its
// store-assigned document id
func rootsOf(threads []*Thread) []*Comment {
	roots := make([]*Comment, 0, len(threads))
	for _, t := range threads {
		root := t.Root
		root.ID = t.ID
		roots = append(roots, root)
	}
	return roots
}

func sortByPublishedAt(nodes []*Comment) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].PublishedAt.Before(nodes[j].PublishedAt)
	})
}
