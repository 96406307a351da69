package quizstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quizgen/internal/core/quiz"
)

// Memory is a process-local Store.
type Memory struct {
	mu      sync.RWMutex
	quizzes map[string]quiz.Quiz
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{quizzes: make(map[string]quiz.Quiz), now: time.Now}
}

func (m *Memory) Create(_ context.Context, q quiz.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.quizzes[q.ID]; exists {
		return fmt.Errorf("quiz %q already exists", q.ID)
	}
	now := m.now()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
	m.quizzes[q.ID] = q.Clone()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (quiz.Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return quiz.Quiz{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return q.Clone(), nil
}

func (m *Memory) Update(ctx context.Context, id string, fn func(q *quiz.Quiz) error) (quiz.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.quizzes[id]
	if !ok {
		return quiz.Quiz{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := ctx.Err(); err != nil {
		return quiz.Quiz{}, err
	}
	edited := stored.Clone()
	if err := fn(&edited); err != nil {
		return quiz.Quiz{}, err
	}
	edited.ID = id
	edited.UpdatedAt = m.now()
	m.quizzes[id] = edited.Clone()
	return edited, nil
}
