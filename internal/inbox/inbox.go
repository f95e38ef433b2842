// Package inbox records contact sheet submissions locally. Nothing is ever
// delivered anywhere.
package inbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Submission is one accepted contact sheet entry.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder stores submissions.
type Recorder interface {
	Record(ctx context.Context, s *Submission) error
	List(ctx context.Context) ([]Submission, error)
	Close() error
}

// prepare fills the ID and timestamp when unset.
func prepare(s *Submission) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
}

// Memory keeps submissions for the lifetime of the process.
type Memory struct {
	mu          sync.Mutex
	submissions []Submission
}

// NewMemory returns an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(ctx context.Context, s *Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prepare(s)
	m.mu.Lock()
	m.submissions = append(m.submissions, *s)
	m.mu.Unlock()
	return nil
}

// List returns submissions oldest first.
func (m *Memory) List(ctx context.Context) ([]Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *Memory) Close() error { return nil }

// Open returns the recorder for driver ("memory" or "sqlite").
func Open(driver, path string) (Recorder, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown inbox driver %q", driver)
	}
}
