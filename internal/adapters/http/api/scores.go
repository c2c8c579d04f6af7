package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/matchscore/internal/domain/types"
)

// maxBatchBodyBytes bounds the request body of POST /scores.
const maxBatchBodyBytes = 1 << 20

// ScoresDependencies defines the interface for batch score queries.
type ScoresDependencies interface {
	ScoreBatch(ctx context.Context, offsets []int) ([]types.ScoreResult, error)
}

// ScoresHandler handles batch score queries.
type ScoresHandler struct {
	deps     ScoresDependencies
	maxBatch int
}

// NewScoresHandler creates a new batch handler. Batches larger than
// maxBatch are refused before reaching the service.
func NewScoresHandler(deps ScoresDependencies, maxBatch int) *ScoresHandler {
	return &ScoresHandler{
		deps:     deps,
		maxBatch: maxBatch,
	}
}

// HandlePostScores handles POST /scores requests.
func (h *ScoresHandler) HandlePostScores(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_scores"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req types.BatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, "empty body"))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, "invalid JSON body"))
		return
	}
	if req.Offsets == nil {
		writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, "missing offsets"))
		return
	}
	if h.maxBatch > 0 && len(req.Offsets) > h.maxBatch {
		writeError(w, http.StatusBadRequest, "batch_too_large", badRequest(op, "too many offsets"))
		return
	}

	results, err := h.deps.ScoreBatch(r.Context(), req.Offsets)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.BatchResponse{Results: results})
}
