package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Talkback/internal/core/comments"
)

// DeleteCommentHandler handles single-thread deletion requests
type DeleteCommentHandler struct {
	service comments.Service
}

// NewDeleteCommentHandler creates a new handler for deleting comments
func NewDeleteCommentHandler(service comments.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{service: service}
}

// HandleDelete handles thread deletion requests
// DELETE /api/comments/{threadID}
//
// Removes the thread document; every nested reply cascades with it.
func (h *DeleteCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	if threadID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Thread id is required")
		return
	}

	if err := h.service.DeleteComment(r.Context(), threadID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
