package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Talkback/internal/core/posts"
)

// GetPostHandler handles single-post retrieval requests
type GetPostHandler struct {
	service posts.Service
}

// NewGetPostHandler creates a new handler for retrieving posts
func NewGetPostHandler(service posts.Service) *GetPostHandler {
	return &GetPostHandler{service: service}
}

// HandleGet handles post retrieval requests
// GET /api/posts/{postID}
func (h *GetPostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Post id is required")
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
