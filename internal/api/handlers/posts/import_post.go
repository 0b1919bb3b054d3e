package posts

import (
	"encoding/json"
	"net/http"

	"Talkback/internal/core/posts"
)

// ImportPostHandler handles one-shot remote post imports
type ImportPostHandler struct {
	service posts.Service
}

// NewImportPostHandler creates a new handler for importing posts
func NewImportPostHandler(service posts.Service) *ImportPostHandler {
	return &ImportPostHandler{service: service}
}

// importPostInput names the remote JSON document to import
type importPostInput struct {
	URL string `json:"url"`
}

// HandleImport handles post import requests
// POST /api/admin/import
//
// Request body: { "url": "https://example.com/post.json" }
func (h *ImportPostHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4*1024)

	var input importPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.URL == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "A source url is required")
		return
	}

	post, err := h.service.ImportFromURL(r.Context(), input.URL)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}
