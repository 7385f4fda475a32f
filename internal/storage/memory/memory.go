// Package memory provides a bounded in-process implementation of
// storage.Storage, used when no storage path is configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/airbear/internal/types"
)

// DefaultCapacity is the number of attempts kept when New is given a
// non-positive capacity.
const DefaultCapacity = 256

// Memory keeps the most recent attempts; older ones are evicted first.
type Memory struct {
	mu       sync.Mutex
	capacity int
	attempts []types.Attempt
}

// New returns an empty journal holding at most capacity attempts.
func New(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{capacity: capacity}
}

func (m *Memory) RecordAttempt(ctx context.Context, attempt types.Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.attempts) == m.capacity {
		m.attempts = m.attempts[1:]
	}
	m.attempts = append(m.attempts, attempt)
	return nil
}

func (m *Memory) ListAttempts(ctx context.Context, form string, limit int) ([]types.Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Attempt, 0)
	for i := len(m.attempts) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if form != "" && m.attempts[i].Form != form {
			continue
		}
		out = append(out, m.attempts[i])
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
