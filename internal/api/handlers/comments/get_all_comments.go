package comments

import (
	"net/http"

	"Talkback/internal/core/comments"
)

// GetAllCommentsHandler handles the administrative full export
type GetAllCommentsHandler struct {
	service comments.Service
}

// NewGetAllCommentsHandler creates a new handler for the full export
func NewGetAllCommentsHandler(service comments.Service) *GetAllCommentsHandler {
	return &GetAllCommentsHandler{service: service}
}

// getAllCommentsOutput wraps the unfiltered threads
type getAllCommentsOutput struct {
	Comments []*comments.Comment `json:"comments"`
	Count    int                 `json:"count"`
}

// HandleGetAll handles full-export requests
// GET /api/admin/comments
//
// Bypasses the visibility filter on purpose: moderation needs to see spam
// and unapproved nodes.
func (h *GetAllCommentsHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.GetAllComments(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, getAllCommentsOutput{Comments: all, Count: len(all)})
}
