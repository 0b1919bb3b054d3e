package comments

import (
	"net/http"
	"time"

	"Talkback/internal/core/comments"
)

// GetStatsHandler handles comment statistics requests
type GetStatsHandler struct {
	service comments.Service
}

// NewGetStatsHandler creates a new handler for comment statistics
func NewGetStatsHandler(service comments.Service) *GetStatsHandler {
	return &GetStatsHandler{service: service}
}

// HandleStats handles statistics requests
// GET /api/stats?postId=...&startDate=2026-01-01T00:00:00Z&interval=day
//
// All parameters are optional; without them the stats cover the whole
// corpus at daily granularity.
func (h *GetStatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	req := comments.StatsRequest{
		PostID:   r.URL.Query().Get("postId"),
		Interval: r.URL.Query().Get("interval"),
	}

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest",
				"startDate must be an RFC 3339 timestamp")
			return
		}
		req.StartDate = &startDate
	}

	stats, err := h.service.GetStats(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
