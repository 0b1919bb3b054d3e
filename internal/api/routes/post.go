package routes

import (
	"github.com/go-chi/chi/v5"

	"Talkback/internal/api/handlers/posts"
	postsCore "Talkback/internal/core/posts"
)

// RegisterPostRoutes registers post endpoints on the router
func RegisterPostRoutes(r chi.Router, service postsCore.Service) {
	createHandler := posts.NewCreatePostHandler(service)
	getHandler := posts.NewGetPostHandler(service)
	importHandler := posts.NewImportPostHandler(service)

	r.Post("/api/posts", createHandler.HandleCreate)
	r.Get("/api/posts/{postID}", getHandler.HandleGet)

	// one-shot import of a remote JSON post document
	r.Post("/api/admin/import", importHandler.HandleImport)
}
