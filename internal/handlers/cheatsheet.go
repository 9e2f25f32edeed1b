package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"cheatsheets/internal/service"
)

// CheatsheetHandler serves the cheatsheet read API.
type CheatsheetHandler struct {
	cheatsheets service.CheatsheetService
}

// NewCheatsheetHandler creates a new CheatsheetHandler.
func NewCheatsheetHandler(cheatsheets service.CheatsheetService) *CheatsheetHandler {
	return &CheatsheetHandler{
		cheatsheets: cheatsheets,
	}
}

// List handles GET /api/cheatsheets. It returns the metadata of every stored
// cheatsheet.
//
// swagger:route GET /api/cheatsheets listCheatsheets
//
// # List cheatsheets
//
// Returns the metadata (every field except sections) of all stored cheatsheets,
// ordered by id.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Metadata of every stored cheatsheet
//	  schema:
//	    type: array
//	    items:
//	      "$ref": "#/definitions/Meta"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *CheatsheetHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metas, err := h.cheatsheets.List(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "", "Failed to list cheatsheets")
		return
	}
	writeJSON(ctx, w, http.StatusOK, metas)
}

// Get handles GET /api/cheatsheets/{id}. An unknown id answers 404.
//
// swagger:route GET /api/cheatsheets/{id} getCheatsheet
//
// # Get a cheatsheet
//
// Returns one cheatsheet with its ordered sections.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: path
//     name: id
//     type: string
//     required: true
//     description: Cheatsheet id, the source file name without .md
//
// responses:
//
//	'200':
//	  description: The cheatsheet
//	  schema:
//	    "$ref": "#/definitions/Cheatsheet"
//	'400':
//	  description: Missing or malformed id
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'404':
//	  description: No cheatsheet is stored under this id
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *CheatsheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	sheet, err := h.cheatsheets.Get(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, id, "Failed to get cheatsheet")
		return
	}
	writeJSON(ctx, w, http.StatusOK, sheet)
}

// LatestRun handles GET /api/runs/latest.
//
// swagger:route GET /api/runs/latest latestRun
//
// # Latest ingestion run
//
// Returns the summary of the most recent ingestion run.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Summary of the latest run
//	  schema:
//	    "$ref": "#/definitions/IngestRun"
//	'404':
//	  description: No run has been recorded yet
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *CheatsheetHandler) LatestRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	run, err := h.cheatsheets.LatestRun(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "latest run", "Failed to get latest run")
		return
	}
	writeJSON(ctx, w, http.StatusOK, run)
}

// idParam reads the {id} route parameter, answering 400 when it is unusable.
func idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := url.PathUnescape(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cheatsheet id")
		return "", false
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "cheatsheet id is required")
		return "", false
	}
	return id, true
}
