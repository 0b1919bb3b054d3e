package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// maxImportBody caps how much of a remote document the importer reads
	maxImportBody = 1 << 20 // 1 MiB

	importTimeout = 10 * time.Second
)

// CreatePostRequest carries caller-supplied fields for a new post
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates and stores a new post
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPost retrieves a single post by id
	GetPost(ctx context.Context, id string) (*Post, error)

	// GetPostsByIDs retrieves posts in a single batch query
	GetPostsByIDs(ctx context.Context, ids []string) ([]*Post, error)

	// ImportFromURL fetches a remote JSON document describing a post and
	// stores it as a new post
	ImportFromURL(ctx context.Context, rawURL string) (*Post, error)
}

type postService struct {
	repo       Repository
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPostService creates a new post service instance
func NewPostService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:       repo,
		httpClient: &http.Client{Timeout: importTimeout},
		logger:     logger,
	}
}

// CreatePost validates and stores a new post
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidPost)
	}

	post, err := s.repo.Create(ctx, &Post{
		Title:   req.Title,
		Content: req.Content,
		URL:     req.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "post_id", post.ID)
	return post, nil
}

// GetPost retrieves a single post by id
func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPostsByIDs retrieves posts in a single batch query
func (s *postService) GetPostsByIDs(ctx context.Context, ids []string) ([]*Post, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// importedPost is the shape the importer expects from the remote document
type importedPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// ImportFromURL fetches a remote JSON document and stores it as a post.
// The body read is size-capped and the request carries the service timeout.
func (s *postService) ImportFromURL(ctx context.Context, rawURL string) (*Post, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: source must be an http(s) URL", ErrInvalidPost)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: remote returned status %d", ErrImportFailed, resp.StatusCode)
	}

	var doc importedPost
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxImportBody)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON document: %v", ErrImportFailed, err)
	}

	post, err := s.CreatePost(ctx, CreatePostRequest(doc))
	if err != nil {
		return nil, err
	}

	s.logger.Info("post imported", "post_id", post.ID, "source", rawURL)
	return post, nil
}
