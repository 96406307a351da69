package quizstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"quizgen/internal/core/quiz"
)

func newQuiz(id string) quiz.Quiz {
	return quiz.Quiz{
		ID:       id,
		FileName: "bio.pdf",
		Questions: []quiz.Question{
			{ID: "def_0", Question: "What is X?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
		},
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	q := newQuiz("q1")
	if err := s.Create(ctx, q); err != nil {
		t.Fatalf("create: %v", err)
	}
	q.Questions[0].Options[0] = "changed by caller"

	got, err := s.Get(ctx, "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Questions[0].Options[0] != "a" {
		t.Fatalf("store shares memory with the created value")
	}
	got.Questions[0].Question = "mutated"
	again, _ := s.Get(ctx, "q1")
	if again.Questions[0].Question != "What is X?" {
		t.Fatalf("store shares memory with a returned value")
	}
	if again.CreatedAt.IsZero() || again.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", again)
	}
}

func TestMemory_CreateDuplicate(t *testing.T) {
	s := NewMemory()
	if err := s.Create(context.Background(), newQuiz("q1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(context.Background(), newQuiz("q1")); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestMemory_NotFound(t *testing.T) {
	s := NewMemory()
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err := s.Update(context.Background(), "missing", func(*quiz.Quiz) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_UpdateFailureKeepsStored(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	_ = s.Create(ctx, newQuiz("q1"))

	boom := errors.New("boom")
	_, err := s.Update(ctx, "q1", func(q *quiz.Quiz) error {
		q.Questions = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	got, _ := s.Get(ctx, "q1")
	if len(got.Questions) != 1 {
		t.Fatalf("failed update must not persist, got %+v", got)
	}
}

func TestMemory_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	q := newQuiz("q1")
	q.WordCount = 0
	_ = s.Create(ctx, q)

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "q1", func(q *quiz.Quiz) error {
				q.WordCount++
				return nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := s.Get(ctx, "q1")
	if got.WordCount != workers {
		t.Fatalf("expected %d serialized updates, got %d", workers, got.WordCount)
	}
}

func TestMemory_UpdateWithCommands(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	_ = s.Create(ctx, newQuiz("q1"))

	updated, err := s.Update(ctx, "q1", func(q *quiz.Quiz) error {
		edited, err := quiz.Apply(*q, quiz.SetCorrectAnswer{Question: 0, Option: 3})
		if err != nil {
			return err
		}
		*q = edited
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Questions[0].CorrectAnswer != 3 {
		t.Fatalf("expected correct answer 3, got %d", updated.Questions[0].CorrectAnswer)
	}
}
