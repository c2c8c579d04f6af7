package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/matchscore/internal/domain/types"
)

// ScoreDependencies defines the interface for single score queries.
type ScoreDependencies interface {
	Score(ctx context.Context, offset int) (types.ScoreResult, error)
}

// ScoreHandler handles single score queries.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleGetScore handles GET /score?offset=N requests.
func (h *ScoreHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_score"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("offset"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, "missing offset"))
		return
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, "offset must be an integer"))
		return
	}

	res, err := h.deps.Score(r.Context(), offset)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
