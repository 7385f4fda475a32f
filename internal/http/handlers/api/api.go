// Package api contains the JSON handlers: form submission for clients that
// do not post HTML forms, and a read-only view of the attempt journal.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/pages"
	"github.com/aanand-mishra/airbear/internal/storage"
	"github.com/aanand-mishra/airbear/internal/submission"
	"github.com/aanand-mishra/airbear/internal/utils/response"
)

const (
	// defaultLimit caps GET /api/attempts when no limit is given.
	defaultLimit = 50

	// maxBodyBytes caps a JSON submission body.
	maxBodyBytes = 16 << 10
)

// Strips markup from path values before they are logged or echoed back.
var pathPolicy = bluemonday.StrictPolicy()

// ─────────────────────────────────────────────────────────────────────────────
// Submit handles POST /api/forms/{form}
// Runs a JSON object of field values through the named form.
//
// Request body (JSON):
//
//	{ "email": "user@test.com", "password": "secret" }
//
// Success response (202 Accepted):
//
//	{ "status": "accepted", "attempt_id": "5f0c…" }
//
// Error responses:
//
//	400 Bad Request               - empty body, malformed JSON, unknown field,
//	                                wrong value kind or malformed value
//	404 Not Found                 - no such form
//	413 Request Entity Too Large  - body over 16 KiB
//	422 Unprocessable Entity      - a required field is empty
//	500 Internal                  - the attempt could not be recorded
//
// ─────────────────────────────────────────────────────────────────────────────
func Submit(svc *submission.Service, mode form.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathPolicy.Sanitize(chi.URLParam(r, "form"))
		slog.Info("api form submitted", slog.String("form", name))

		def, ok := pages.Lookup(name)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound,
				response.GeneralError(errors.New("unknown form: "+name)))
			return
		}

		var body map[string]any
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteJSON(w, http.StatusRequestEntityTooLarge,
				response.GeneralError(errors.New("request body is too large")))
			return
		}
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		ctl := def.NewController(mode)
		for field, value := range body {
			if err := ctl.SetField(field, value); err != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
		}

		res, err := svc.Dispatch(r.Context(), ctl)

		var invalid form.ValidationErrors
		switch {
		case err == nil:
			response.WriteJSON(w, http.StatusAccepted, res)

		case errors.Is(err, form.ErrNotSubmittable):
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.MissingFields(ctl.Missing()))

		case errors.As(err, &invalid):
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(invalid))

		default:
			slog.Error("error dispatching form",
				slog.String("form", name),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ListAttempts handles GET /api/attempts
// Returns recorded attempts, newest first.
//
// Query parameters:
//
//	form  - only attempts of this form (optional)
//	limit - maximum number of attempts, default 50
//
// Only served in development. Attempts carry no typed-in values: every
// free-form field is masked before it is stored.
// ─────────────────────────────────────────────────────────────────────────────
func ListAttempts(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("form")

		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("invalid limit: must be a positive integer")))
				return
			}
			limit = n
		}

		attempts, err := store.ListAttempts(r.Context(), name, limit)
		if err != nil {
			slog.Error("error listing attempts", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, attempts)
	}
}

// Health handles GET /healthz
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	}
}
