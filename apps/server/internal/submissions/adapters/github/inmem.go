package github

import (
	"context"
	"sync"

	"github.com/crewsafe/intake/apps/server/internal/submissions"
)

// InMem is an in-memory submissions.Archiver for unit tests.
type InMem struct {
	mu   sync.Mutex
	puts []submissions.Descriptor
	err  error
}

// NewInMem creates an empty InMem archiver.
func NewInMem() *InMem {
	return &InMem{}
}

// FailWith makes every subsequent Put return err.
func (m *InMem) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Puts returns all descriptors stored so far.
func (m *InMem) Puts() []submissions.Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]submissions.Descriptor, len(m.puts))
	copy(out, m.puts)
	return out
}

// Put records the descriptor, or returns the configured error.
func (m *InMem) Put(_ context.Context, d submissions.Descriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.puts = append(m.puts, d)
	return nil
}
