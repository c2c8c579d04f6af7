package api

import (
	"context"
	"net/http"

	"github.com/okian/matchscore/internal/domain/types"
)

// TimelineDependencies defines the interface for the timeline summary.
type TimelineDependencies interface {
	Summary(ctx context.Context) (types.TimelineSummary, error)
}

// TimelineHandler handles timeline summary requests.
type TimelineHandler struct {
	deps TimelineDependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps TimelineDependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

// HandleGetTimeline handles GET /timeline requests.
func (h *TimelineHandler) HandleGetTimeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_timeline"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summary, err := h.deps.Summary(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
