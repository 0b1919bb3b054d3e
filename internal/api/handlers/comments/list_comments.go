package comments

import (
	"net/http"

	"Talkback/internal/core/comments"
)

// ListCommentsHandler handles public comment listing requests
type ListCommentsHandler struct {
	service comments.Service
}

// NewListCommentsHandler creates a new handler for listing comments
func NewListCommentsHandler(service comments.Service) *ListCommentsHandler {
	return &ListCommentsHandler{service: service}
}

// listCommentsOutput wraps the visible comment trees
type listCommentsOutput struct {
	Comments []*comments.Comment `json:"comments"`
}

// HandleList handles comment listing requests
// GET /api/comments?postId=a&postId=b
//
// Returns only approved, non-spam trees; an unapproved node hides its
// whole subtree.
func (h *ListCommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	postIDs := r.URL.Query()["postId"]
	if len(postIDs) == 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "At least one postId is required")
		return
	}

	visible, err := h.service.ListByPostIDs(r.Context(), postIDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listCommentsOutput{Comments: visible})
}
