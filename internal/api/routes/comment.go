package routes

import (
	"github.com/go-chi/chi/v5"

	"Talkback/internal/api/handlers/comments"
	commentsCore "Talkback/internal/core/comments"
)

// RegisterCommentRoutes registers comment endpoints on the router.
// The admin endpoints are unauthenticated by design here; access control is
// expected at the deployment boundary.
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service) {
	createHandler := comments.NewCreateCommentHandler(service)
	listHandler := comments.NewListCommentsHandler(service)
	deleteHandler := comments.NewDeleteCommentHandler(service)
	deletePostHandler := comments.NewDeletePostCommentsHandler(service)
	statsHandler := comments.NewGetStatsHandler(service)
	exportHandler := comments.NewGetAllCommentsHandler(service)

	// create a new thread or attach a reply at a recipient path
	r.Post("/api/comments", createHandler.HandleCreate)

	// visible comment trees for one or more posts
	r.Get("/api/comments", listHandler.HandleList)

	// delete one thread (cascades over its reply tree)
	r.Delete("/api/comments/{threadID}", deleteHandler.HandleDelete)

	// delete every thread owned by a post
	r.Delete("/api/posts/{postID}/comments", deletePostHandler.HandleDelete)

	// aggregate statistics
	r.Get("/api/stats", statsHandler.HandleStats)

	// unfiltered administrative export
	r.Get("/api/admin/comments", exportHandler.HandleGetAll)
}
