package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"cheatsheets/internal/contextutil"
	"cheatsheets/internal/ingest"
)

// Ingester runs a batch ingestion.
type Ingester interface {
	Run(ctx context.Context, ids []string) (*ingest.Report, error)
}

// IngestHandler handles HTTP requests for triggering an ingestion run.
type IngestHandler struct {
	ingester Ingester
	// seedIDs returns the ids to ingest when the request names none.
	seedIDs func() ([]string, error)
	running atomic.Bool
	// done, when set, is called with the outcome of every background run.
	done func(*ingest.Report, error)
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingester Ingester, seedIDs func() ([]string, error)) *IngestHandler {
	return &IngestHandler{
		ingester: ingester,
		seedIDs:  seedIDs,
	}
}

// IngestResponse represents the response from the ingest endpoint.
//
// swagger:model IngestResponse
type IngestResponse struct {
	Message string   `json:"message"`
	Status  string   `json:"status"`
	IDs     []string `json:"ids"`
}

// ServeHTTP handles POST /api/ingest. The ids come from repeated "id" query
// parameters, or from the seed file when none are given. The run continues in
// the background after the response; only one run may be active at a time.
//
// swagger:route POST /api/ingest triggerIngest
//
// # Trigger an ingestion run
//
// Starts a background run over the given ids, or over the enabled entries of
// the seed file when none are given. The outcome is available from
// GET /api/runs/latest once the run finishes.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: query
//     name: id
//     type: array
//     items:
//       type: string
//     collectionFormat: multi
//     required: false
//     description: Cheatsheet ids to ingest, repeatable
//
// responses:
//
//	'202':
//	  description: Run accepted
//	  schema:
//	    "$ref": "#/definitions/IngestResponse"
//	'405':
//	  description: Method not allowed
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'409':
//	  description: A run is already in progress
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ids := make([]string, 0)
	for _, id := range r.URL.Query()["id"] {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		seeded, err := h.seedIDs()
		if err != nil {
			logger.ErrorContext(ctx, "failed to load seed ids", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load seed file")
			return
		}
		ids = seeded
	}

	if !h.running.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "An ingestion run is already in progress")
		return
	}

	logger.InfoContext(ctx, "ingestion triggered via API", "documents", len(ids))

	// Use background context so ingestion continues after HTTP request completes
	runCtx := contextutil.WithLogger(context.Background(), logger)
	go func() {
		defer h.running.Store(false)
		report, err := h.ingester.Run(runCtx, ids)
		if err != nil {
			logger.ErrorContext(runCtx, "ingestion completed with errors", "error", err)
		} else {
			logger.InfoContext(runCtx, "ingestion completed successfully", "run_id", report.RunID)
		}
		if h.done != nil {
			h.done(report, err)
		}
	}()

	// Return immediately with accepted status
	writeJSON(ctx, w, http.StatusAccepted, IngestResponse{
		Message: "Ingestion started. Check GET /api/runs/latest for the result.",
		Status:  "accepted",
		IDs:     ids,
	})
}
