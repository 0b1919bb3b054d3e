package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Talkback/internal/core/comments"
)

// DeletePostCommentsHandler handles bulk deletion of a post's threads
type DeletePostCommentsHandler struct {
	service comments.Service
}

// NewDeletePostCommentsHandler creates a new handler for bulk deletion
func NewDeletePostCommentsHandler(service comments.Service) *DeletePostCommentsHandler {
	return &DeletePostCommentsHandler{service: service}
}

// deletePostCommentsOutput reports how many threads were removed
type deletePostCommentsOutput struct {
	Deleted int64 `json:"deleted"`
}

// HandleDelete handles bulk deletion requests
// DELETE /api/posts/{postID}/comments
//
// Idempotent: deleting a post's comments twice removes zero the second time
// and still succeeds.
func (h *DeletePostCommentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Post id is required")
		return
	}

	deleted, err := h.service.DeletePostComments(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deletePostCommentsOutput{Deleted: deleted})
}
