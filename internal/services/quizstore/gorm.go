package quizstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizgen/internal/core/quiz"
	"quizgen/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// quizRecord is the quizzes table. Questions are stored as one JSON column.
type quizRecord struct {
	ID               string          `gorm:"primaryKey;size:36"`
	FileName         string          `gorm:"size:255;not null"`
	FileType         string          `gorm:"size:128"`
	TotalSlides      int             `gorm:"not null"`
	TextPreview      string          `gorm:"type:text"`
	WordCount        int             `gorm:"not null"`
	ProcessingTimeMs int64           `gorm:"not null"`
	Questions        []quiz.Question `gorm:"serializer:json;type:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (quizRecord) TableName() string { return "quizzes" }

func recordOf(q quiz.Quiz) quizRecord {
	return quizRecord{
		ID:               q.ID,
		FileName:         q.FileName,
		FileType:         q.FileType,
		TotalSlides:      q.TotalSlides,
		TextPreview:      q.TextPreview,
		WordCount:        q.WordCount,
		ProcessingTimeMs: q.ProcessingTimeMs,
		Questions:        q.Questions,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

func (r quizRecord) quiz() quiz.Quiz {
	return quiz.Quiz{
		ID:               r.ID,
		FileName:         r.FileName,
		FileType:         r.FileType,
		TotalSlides:      r.TotalSlides,
		TextPreview:      r.TextPreview,
		WordCount:        r.WordCount,
		ProcessingTimeMs: r.ProcessingTimeMs,
		Questions:        r.Questions,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// SQL is a Store backed by the shared MySQL connection.
type SQL struct{}

// NewSQL migrates the quizzes table and returns the store.
func NewSQL(ctx context.Context) (*SQL, error) {
	if err := database.AutoMigrate(ctx, &quizRecord{}); err != nil {
		return nil, fmt.Errorf("migrate quizzes: %w", err)
	}
	return &SQL{}, nil
}

func (*SQL) Create(ctx context.Context, q quiz.Quiz) error {
	rec := recordOf(q.Clone())
	return database.CreateEntity(ctx, &rec)
}

func (*SQL) Get(ctx context.Context, id string) (quiz.Quiz, error) {
	rec, err := database.GetEntityByID[quizRecord](ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quiz.Quiz{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return quiz.Quiz{}, err
	}
	return rec.quiz(), nil
}

// lockByID selects one quiz row with SELECT ... FOR UPDATE so concurrent edits
// of the same quiz serialize.
func lockByID(tx *gorm.DB, id string) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
}

func (*SQL) Update(ctx context.Context, id string, fn func(q *quiz.Quiz) error) (quiz.Quiz, error) {
	var out quiz.Quiz
	err := database.WithTx(ctx, func(tx *gorm.DB) error {
		var rec quizRecord
		err := lockByID(tx, id).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		edited := rec.quiz()
		if err := fn(&edited); err != nil {
			return err
		}
		edited.ID = id
		updated := recordOf(edited)
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		out = updated.quiz()
		return nil
	})
	if err != nil {
		return quiz.Quiz{}, err
	}
	return out, nil
}
