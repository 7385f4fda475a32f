// Package page contains the HTML handlers: the home page, the three form
// pages and the placeholder pages.
//
// Handlers are built by factory functions that receive their dependencies
// once at route registration and return the http.HandlerFunc served on
// every request:
//
//	r.Post("/login", page.Submit(pages.Login, view.Login, deps))
package page

import (
	"errors"
	"log/slog"
	"net/http"

	g "maragu.dev/gomponents"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/metrics"
	"github.com/aanand-mishra/airbear/internal/pages"
	"github.com/aanand-mishra/airbear/internal/submission"
	"github.com/aanand-mishra/airbear/internal/utils/response"
	"github.com/aanand-mishra/airbear/internal/view"
)

// Deps are the collaborators shared by the form handlers.
type Deps struct {
	Service *submission.Service
	Metrics *metrics.Metrics
	Mode    form.Mode
}

// Renderer draws a form page for the given controller state.
type Renderer func(ctl *form.Controller, n view.Notice) g.Node

// maxFormBytes caps a posted form body. The largest form is a handful of
// short fields.
const maxFormBytes = 16 << 10

// incompleteMessage is shown when a POST arrives with required fields empty.
const incompleteMessage = "Please fill in every required field."

// Home handles GET /
func Home(m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, m, "home", http.StatusOK, view.Home())
	}
}

// Placeholder handles the routes that are linked to but not built yet,
// e.g. GET /terms.
func Placeholder(name, title string, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, m, name, http.StatusOK, view.Placeholder(title))
	}
}

// Show handles GET on a form page: a fresh, empty form.
func Show(def pages.Definition, render Renderer, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := def.NewController(deps.Mode)
		write(w, deps.Metrics, def.Name, http.StatusOK, render(ctl, view.Notice{}))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Submit handles POST on a form page.
//
// Responses (always the re-rendered page, values kept, passwords blanked):
//
//	200 OK                    - submission accepted and recorded
//	400 Bad Request           - unreadable or oversized body, malformed values
//	422 Unprocessable Entity  - a required field is empty
//	500 Internal Server Error - the attempt could not be recorded
//
// ─────────────────────────────────────────────────────────────────────────────
func Submit(def pages.Definition, render Renderer, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("form submitted", slog.String("form", def.Name))

		ctl := def.NewController(deps.Mode)

		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			write(w, deps.Metrics, def.Name, http.StatusBadRequest,
				render(ctl, view.Notice{Message: "We could not read that form. Please try again."}))
			return
		}

		if err := Bind(ctl, r); err != nil {
			slog.Error("error binding form",
				slog.String("form", def.Name),
				slog.String("error", err.Error()))
			write(w, deps.Metrics, def.Name, http.StatusBadRequest,
				render(ctl, view.Notice{Message: err.Error()}))
			return
		}

		res, err := deps.Service.Dispatch(r.Context(), ctl)

		var invalid form.ValidationErrors
		switch {
		case err == nil:
			slog.Info("form accepted",
				slog.String("form", def.Name),
				slog.String("attempt_id", res.AttemptID))
			write(w, deps.Metrics, def.Name, http.StatusOK,
				render(ctl, view.Notice{Accepted: true, AttemptID: res.AttemptID}))

		case errors.Is(err, form.ErrNotSubmittable):
			write(w, deps.Metrics, def.Name, http.StatusUnprocessableEntity,
				render(ctl, view.Notice{Message: incompleteMessage}))

		case errors.As(err, &invalid):
			write(w, deps.Metrics, def.Name, http.StatusBadRequest,
				render(ctl, view.Notice{Fields: response.FieldMessages(invalid)}))

		default:
			slog.Error("error dispatching form",
				slog.String("form", def.Name),
				slog.String("error", err.Error()))
			write(w, deps.Metrics, def.Name, http.StatusInternalServerError,
				render(ctl, view.Notice{Message: "Something went wrong. Please try again."}))
		}
	}
}

// Bind copies the parsed POST body of r into ctl. Values in the URL query
// are ignored. Checkbox fields are true when present; every other field
// takes its posted string. Fields missing from the body keep their zero
// value.
func Bind(ctl *form.Controller, r *http.Request) error {
	for _, fd := range ctl.Fields() {
		var err error
		if fd.Kind.IsBool() {
			err = ctl.SetField(fd.Name, r.PostForm.Has(fd.Name))
		} else {
			err = ctl.SetField(fd.Name, r.PostForm.Get(fd.Name))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func write(w http.ResponseWriter, m *metrics.Metrics, name string, status int, node g.Node) {
	m.ObserveRender(name, status)
	if err := response.WriteHTML(w, status, node); err != nil {
		slog.Error("error rendering page",
			slog.String("page", name),
			slog.String("error", err.Error()))
	}
}
