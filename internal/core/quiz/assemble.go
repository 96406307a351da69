package quiz

import (
	"fmt"
)

var questionCategory = map[QuestionType]string{
	TypeDefinition:  "Terminology",
	TypeProcess:     "Process",
	TypeComparison:  "Comparison",
	TypeFact:        "Fact",
	TypeApplication: "Application",
}

var questionDifficulty = map[QuestionType]Difficulty{
	TypeDefinition:  DifficultyEasy,
	TypeProcess:     DifficultyMedium,
	TypeComparison:  DifficultyMedium,
	TypeFact:        DifficultyEasy,
	TypeApplication: DifficultyMedium,
}

// Assemble shuffles the correct answer in with its distractors and records
// where it landed. Inputs are not modified.
func Assemble(correct string, distractors []string, r Random) (options []string, correctIndex int, err error) {
	if len(distractors) != DistractorCount {
		return nil, -1, fmt.Errorf("need %d distractors, got %d", DistractorCount, len(distractors))
	}
	all := make([]string, 0, OptionCount)
	all = append(all, correct)
	all = append(all, distractors...)

	options = shuffle(all, r)
	for i, o := range options {
		if o == correct {
			return options, i, nil
		}
	}
	return nil, -1, fmt.Errorf("correct answer %q lost in shuffle", correct)
}

// Build turns a candidate into a complete question. ok is false for candidates
// that cannot get three distinct distractors.
func Build(c Candidate, r Random) (Question, bool) {
	distractors, ok := Distractors(c, r)
	if !ok {
		return Question{}, false
	}
	options, idx, err := Assemble(c.Answer, distractors, r)
	if err != nil {
		return Question{}, false
	}
	return Question{
		ID:            fmt.Sprintf("%s_%d", idTag[c.Type], c.Ordinal),
		Question:      c.Question,
		Options:       options,
		CorrectAnswer: idx,
		Explanation:   c.Explanation,
		Type:          c.Type,
		Difficulty:    questionDifficulty[c.Type],
		Category:      questionCategory[c.Type],
	}, true
}
