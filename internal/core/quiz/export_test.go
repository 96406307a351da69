package quiz

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteText(t *testing.T) {
	q := Quiz{
		FileName: "bio.pdf",
		Questions: []Question{
			{
				Question:      "What is Photosynthesis?",
				Options:       []string{"Light to energy", "A type of photosynthesis system", "The opposite of photosynthesis", "A tool"},
				CorrectAnswer: 0,
				Explanation:   "Photosynthesis is defined as light to energy",
			},
			{
				Question:      "Which of the following is true?",
				Options:       []string{"False", "True", "Partially true", "Not mentioned"},
				CorrectAnswer: 1,
			},
		},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, q); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := strings.Join([]string{
		"Quiz Generated from bio.pdf",
		"Total Questions: 2",
		"",
		"1. What is Photosynthesis?",
		"A. Light to energy (Correct)",
		"B. A type of photosynthesis system",
		"C. The opposite of photosynthesis",
		"D. A tool",
		"Explanation: Photosynthesis is defined as light to energy",
		"",
		"2. Which of the following is true?",
		"A. False",
		"B. True (Correct)",
		"C. Partially true",
		"D. Not mentioned",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected export:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteJSON_FieldNames(t *testing.T) {
	q := Quiz{ID: "abc", FileName: "x.pdf", Questions: []Question{{ID: "def_0", Question: "What is X?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2}}}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, q); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["quizId"] != "abc" {
		t.Fatalf("expected quizId field, got %v", decoded)
	}
	questions := decoded["questions"].([]any)
	first := questions[0].(map[string]any)
	if first["correctAnswer"] != float64(2) {
		t.Fatalf("expected correctAnswer 2, got %v", first["correctAnswer"])
	}
}
