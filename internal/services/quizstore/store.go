package quizstore

import (
	"context"
	"errors"

	"quizgen/internal/core/quiz"
)

// ErrNotFound is returned for an unknown quiz id.
var ErrNotFound = errors.New("quiz not found")

// Store keeps generated quizzes so they can be edited, exported and shared.
// Implementations hand out copies; mutating a returned Quiz never changes the
// stored one.
type Store interface {
	Create(ctx context.Context, q quiz.Quiz) error
	Get(ctx context.Context, id string) (quiz.Quiz, error)
	// Update loads the quiz, passes a copy to fn and persists the copy when fn
	// returns nil. Concurrent updates of one quiz are serialized.
	Update(ctx context.Context, id string, fn func(q *quiz.Quiz) error) (quiz.Quiz, error)
}
