package quiz

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// WriteText renders q as a printable answer sheet with the correct option of
// each question marked.
func WriteText(w io.Writer, q Quiz) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Quiz Generated from %s\n", q.FileName)
	fmt.Fprintf(bw, "Total Questions: %d\n", len(q.Questions))
	for i, question := range q.Questions {
		fmt.Fprintf(bw, "\n%d. %s\n", i+1, question.Question)
		for j, opt := range question.Options {
			marker := ""
			if j == question.CorrectAnswer {
				marker = " (Correct)"
			}
			fmt.Fprintf(bw, "%s. %s%s\n", optionLabel(j), opt, marker)
		}
		if question.Explanation != "" {
			fmt.Fprintf(bw, "Explanation: %s\n", question.Explanation)
		}
	}
	return bw.Flush()
}

// WriteJSON renders q as indented JSON.
func WriteJSON(w io.Writer, q Quiz) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(q)
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}
