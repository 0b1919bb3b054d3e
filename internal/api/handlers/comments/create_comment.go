package comments

import (
	"encoding/json"
	"net/http"

	"Talkback/internal/core/comments"
)

// CreateCommentHandler handles comment creation requests
type CreateCommentHandler struct {
	service comments.Service
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(service comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreate handles comment creation requests
// POST /api/comments
//
// Request body: the comment fields plus an optional recipient_path
// ["<threadID>", 0, 2, ...] addressing the node being replied to.
// Response: { "new_comment": {...}, "replied_to_comment": {...} }
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// Comments are short; cap the body well above any legitimate payload
	r.Body = http.MaxBytesReader(w, r.Body, 100*1024)

	var req comments.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	response, err := h.service.CreateComment(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}
