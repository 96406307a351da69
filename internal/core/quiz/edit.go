package quiz

import (
	"errors"
	"fmt"
	"time"
)

// Quiz is an editable, stored copy of a generation Result plus the upload
// metadata the presentation layer shows next to it.
type Quiz struct {
	ID               string     `json:"quizId"`
	FileName         string     `json:"fileName"`
	FileType         string     `json:"fileType"`
	TotalSlides      int        `json:"totalSlides"`
	TextPreview      string     `json:"textPreview"`
	WordCount        int        `json:"wordCount"`
	ProcessingTimeMs int64      `json:"processingTime"`
	Questions        []Question `json:"questions"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Clone returns a deep copy of q.
func (q Quiz) Clone() Quiz {
	questions := make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = question.Clone()
	}
	q.Questions = questions
	return q
}

// ErrInvalidEdit is wrapped by every command that refers to a question or an
// option that does not exist.
var ErrInvalidEdit = errors.New("invalid edit")

// Command is a single edit against a quiz.
type Command interface {
	Apply(q *Quiz) error
}

// Apply runs cmds in order against a copy of q. On the first failure the
// untouched q is returned along with the error.
func Apply(q Quiz, cmds ...Command) (Quiz, error) {
	edited := q.Clone()
	for _, cmd := range cmds {
		if err := cmd.Apply(&edited); err != nil {
			return q, err
		}
	}
	return edited, nil
}

type SetCorrectAnswer struct {
	Question int
	Option   int
}

func (c SetCorrectAnswer) Apply(q *Quiz) error {
	question, err := questionAt(q, c.Question)
	if err != nil {
		return err
	}
	if c.Option < 0 || c.Option >= len(question.Options) {
		return fmt.Errorf("%w: option %d out of range [0,%d)", ErrInvalidEdit, c.Option, len(question.Options))
	}
	question.CorrectAnswer = c.Option
	return nil
}

type DeleteQuestion struct {
	Question int
}

func (c DeleteQuestion) Apply(q *Quiz) error {
	if _, err := questionAt(q, c.Question); err != nil {
		return err
	}
	q.Questions = append(q.Questions[:c.Question], q.Questions[c.Question+1:]...)
	return nil
}

type UpdateQuestionText struct {
	Question int
	Text     string
}

func (c UpdateQuestionText) Apply(q *Quiz) error {
	question, err := questionAt(q, c.Question)
	if err != nil {
		return err
	}
	question.Question = c.Text
	return nil
}

type UpdateOptionText struct {
	Question int
	Option   int
	Text     string
}

func (c UpdateOptionText) Apply(q *Quiz) error {
	question, err := questionAt(q, c.Question)
	if err != nil {
		return err
	}
	if c.Option < 0 || c.Option >= len(question.Options) {
		return fmt.Errorf("%w: option %d out of range [0,%d)", ErrInvalidEdit, c.Option, len(question.Options))
	}
	question.Options[c.Option] = c.Text
	return nil
}

func questionAt(q *Quiz, i int) (*Question, error) {
	if i < 0 || i >= len(q.Questions) {
		return nil, fmt.Errorf("%w: question %d out of range [0,%d)", ErrInvalidEdit, i, len(q.Questions))
	}
	return &q.Questions[i], nil
}
