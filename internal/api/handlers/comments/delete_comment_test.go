package comments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"Talkback/internal/core/comments"
)

func deleteRouter(handler *DeleteCommentHandler) chi.Router {
	r := chi.NewRouter()
	r.Delete("/api/comments/{threadID}", handler.HandleDelete)
	return r
}

func TestHandleDelete_Success(t *testing.T) {
	var deleted string
	handler := NewDeleteCommentHandler(&stubService{
		deleteFunc: func(ctx context.Context, threadID string) error {
			deleted = threadID
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/comments/t1", nil)
	rec := httptest.NewRecorder()

	deleteRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "t1", deleted)
}

func TestHandleDelete_MissingThreadIs404(t *testing.T) {
	handler := NewDeleteCommentHandler(&stubService{
		deleteFunc: func(ctx context.Context, threadID string) error {
			return comments.ErrThreadNotFound
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/comments/missing", nil)
	rec := httptest.NewRecorder()

	deleteRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NotFound")
}
