package posts

import (
	"encoding/json"
	"net/http"

	"Talkback/internal/core/posts"
)

// CreatePostHandler handles post creation requests
type CreatePostHandler struct {
	service posts.Service
}

// NewCreatePostHandler creates a new handler for creating posts
func NewCreatePostHandler(service posts.Service) *CreatePostHandler {
	return &CreatePostHandler{service: service}
}

// HandleCreate handles post creation requests
// POST /api/posts
func (h *CreatePostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)

	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}
