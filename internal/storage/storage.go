// Package storage defines the contract for the submission attempt journal.
//
// Handlers and the submission service depend only on this interface. The
// sqlite package writes attempts to a database file; the memory package
// keeps a bounded in-process buffer for when no storage path is configured.
package storage

import (
	"context"

	"github.com/aanand-mishra/airbear/internal/types"
)

// Storage is the attempt journal contract.
type Storage interface {
	// RecordAttempt appends one attempt to the journal.
	RecordAttempt(ctx context.Context, attempt types.Attempt) error

	// ListAttempts returns the most recent attempts first. An empty form
	// matches every form; limit <= 0 means no limit. Returns an empty
	// slice (not nil) when nothing matches.
	ListAttempts(ctx context.Context, form string, limit int) ([]types.Attempt, error)

	// Close releases the backend's resources.
	Close() error
}
