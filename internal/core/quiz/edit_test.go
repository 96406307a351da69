package quiz

import (
	"errors"
	"testing"
)

func sampleQuiz() Quiz {
	return Quiz{
		ID:       "q1",
		FileName: "bio.pdf",
		Questions: []Question{
			{ID: "def_0", Question: "What is Photosynthesis?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
			{ID: "fact_1", Question: "Which of the following is true?", Options: []string{"True", "False", "Partially true", "Not mentioned"}, CorrectAnswer: 0},
			{ID: "app_2", Question: "What is the primary application mentioned?", Options: []string{"w", "x", "y", "z"}, CorrectAnswer: 2},
		},
	}
}

func TestApply_Commands(t *testing.T) {
	original := sampleQuiz()
	edited, err := Apply(original,
		SetCorrectAnswer{Question: 0, Option: 3},
		UpdateQuestionText{Question: 1, Text: "Is this statement true?"},
		UpdateOptionText{Question: 2, Option: 1, Text: "Robotics"},
		DeleteQuestion{Question: 0},
	)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(edited.Questions) != 2 {
		t.Fatalf("expected 2 questions after delete, got %d", len(edited.Questions))
	}
	if edited.Questions[0].Question != "Is this statement true?" {
		t.Fatalf("question text not updated: %q", edited.Questions[0].Question)
	}
	if edited.Questions[1].Options[1] != "Robotics" {
		t.Fatalf("option text not updated: %v", edited.Questions[1].Options)
	}

	// the input must be left untouched
	if original.Questions[0].CorrectAnswer != 0 || len(original.Questions) != 3 {
		t.Fatalf("original quiz mutated: %+v", original)
	}
	if original.Questions[2].Options[1] != "x" {
		t.Fatalf("original options mutated: %v", original.Questions[2].Options)
	}
}

func TestApply_SetCorrectAnswer(t *testing.T) {
	edited, err := Apply(sampleQuiz(), SetCorrectAnswer{Question: 2, Option: 0})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if edited.Questions[2].CorrectAnswer != 0 {
		t.Fatalf("expected correct answer 0, got %d", edited.Questions[2].CorrectAnswer)
	}
}

func TestApply_RejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
	}{
		{"negative question", DeleteQuestion{Question: -1}},
		{"question past end", UpdateQuestionText{Question: 3, Text: "x"}},
		{"option past end", SetCorrectAnswer{Question: 0, Option: 4}},
		{"negative option", UpdateOptionText{Question: 1, Option: -1, Text: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			original := sampleQuiz()
			got, err := Apply(original, SetCorrectAnswer{Question: 0, Option: 1}, tc.cmd)
			if !errors.Is(err, ErrInvalidEdit) {
				t.Fatalf("expected ErrInvalidEdit, got %v", err)
			}
			if got.Questions[0].CorrectAnswer != 0 {
				t.Fatalf("failed batch must not apply earlier commands")
			}
		})
	}
}
