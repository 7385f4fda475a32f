// Package submission dispatches filled-in forms. It is the single place that
// decides whether a form goes out (required fields present, formats valid)
// and what happens when it does: a redacted diagnostic Attempt is logged and
// written to the attempt journal.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/metrics"
	"github.com/aanand-mishra/airbear/internal/storage"
	"github.com/aanand-mishra/airbear/internal/types"
)

// Service dispatches forms to the attempt journal.
type Service struct {
	store   storage.Storage
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the attempt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs overrides the attempt id generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New returns a Service writing to store. m may be nil.
func New(store storage.Storage, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:   store,
		metrics: m,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch submits ctl if it is complete and well-formed.
//
// It returns form.ErrNotSubmittable when a required field is empty and a
// form.ValidationErrors when a value has the wrong format; in both cases no
// attempt is recorded. Any other error comes from the journal.
func (s *Service) Dispatch(ctx context.Context, ctl *form.Controller) (form.Result, error) {
	name := ctl.Name()

	if !ctl.IsSubmittable() {
		s.metrics.ObserveSubmission(name, metrics.OutcomeIncomplete)
		return form.Result{}, form.ErrNotSubmittable
	}

	if err := ctl.Validate(); err != nil {
		s.metrics.ObserveSubmission(name, metrics.OutcomeInvalid)
		return form.Result{}, err
	}

	res, err := ctl.Submit(ctx, s.Record(name, ctl.Fields()))
	if err != nil {
		s.metrics.ObserveSubmission(name, metrics.OutcomeFailed)
		return form.Result{}, fmt.Errorf("dispatch %s: %w", name, err)
	}

	s.metrics.ObserveSubmission(name, metrics.OutcomeAccepted)
	return res, nil
}

// Record returns the form.Handler that turns a submission of the named form
// into a journal entry. Password fields in fields are masked before the
// values leave the handler.
func (s *Service) Record(name string, fields []form.FieldDescriptor) form.Handler {
	return func(ctx context.Context, values form.State) (form.Result, error) {
		attempt := types.Attempt{
			ID:        s.newID(),
			Form:      name,
			Fields:    form.Redact(fields, values),
			CreatedAt: s.now().UTC(),
		}

		slog.InfoContext(ctx, "submission attempt",
			slog.String("form", name),
			slog.String("attempt_id", attempt.ID),
			slog.Any("fields", attempt.Fields),
		)

		if err := s.store.RecordAttempt(ctx, attempt); err != nil {
			return form.Result{}, fmt.Errorf("record attempt: %w", err)
		}

		return form.Result{Status: form.StatusAccepted, AttemptID: attempt.ID}, nil
	}
}
