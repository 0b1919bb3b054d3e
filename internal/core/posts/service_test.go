package posts

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPostRepo is a mock implementation of the Repository interface
type mockPostRepo struct {
	posts  map[string]*Post
	nextID int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]*Post)}
}

func (m *mockPostRepo) Create(ctx context.Context, post *Post) (*Post, error) {
	if post.ID == "" {
		m.nextID++
		post.ID = "post-" + string(rune('0'+m.nextID))
	}
	m.posts[post.ID] = post
	return post, nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*Post, error) {
	if p, ok := m.posts[id]; ok {
		return p, nil
	}
	return nil, ErrPostNotFound
}

func (m *mockPostRepo) GetByIDs(ctx context.Context, ids []string) ([]*Post, error) {
	result := make([]*Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.posts[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreatePost_RequiresTitle(t *testing.T) {
	service := NewPostService(newMockPostRepo(), testLogger())

	_, err := service.CreatePost(context.Background(), CreatePostRequest{Content: "body"})

	assert.True(t, IsValidationError(err))
}

func TestCreatePost_StoresAndReturnsPost(t *testing.T) {
	repo := newMockPostRepo()
	service := NewPostService(repo, testLogger())

	post, err := service.CreatePost(context.Background(), CreatePostRequest{
		Title:   "Hello",
		Content: "World",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Hello", repo.posts[post.ID].Title)
}

func TestImportFromURL_CreatesPostFromRemoteDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": "Imported", "content": "From afar", "url": "https://example.com/original"}`))
	}))
	defer server.Close()

	repo := newMockPostRepo()
	service := NewPostService(repo, testLogger())

	post, err := service.ImportFromURL(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Imported", post.Title)
	assert.Equal(t, "From afar", post.Content)
	assert.Len(t, repo.posts, 1)
}

func TestImportFromURL_RejectsNonHTTPSchemes(t *testing.T) {
	service := NewPostService(newMockPostRepo(), testLogger())

	_, err := service.ImportFromURL(context.Background(), "file:///etc/passwd")

	assert.True(t, IsValidationError(err))
}

func TestImportFromURL_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewPostService(newMockPostRepo(), testLogger())

	_, err := service.ImportFromURL(context.Background(), server.URL)

	assert.ErrorIs(t, err, ErrImportFailed)
}

func TestImportFromURL_MalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	service := NewPostService(newMockPostRepo(), testLogger())

	_, err := service.ImportFromURL(context.Background(), server.URL)

	assert.ErrorIs(t, err, ErrImportFailed)
}
