package main

import (
	"fmt"
	"strings"

	"quizgen/internal/core/quiz"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	questionStyle = lipgloss.NewStyle().Bold(true)
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// renderColor is the terminal version of quiz.WriteText.
func renderColor(q quiz.Quiz) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Quiz Generated from "+q.FileName) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Total Questions: %d", len(q.Questions))) + "\n")
	for i, question := range q.Questions {
		b.WriteString("\n" + questionStyle.Render(fmt.Sprintf("%d. %s", i+1, question.Question)) + "\n")
		for j, opt := range question.Options {
			line := fmt.Sprintf("%c. %s", 'A'+j, opt)
			if j == question.CorrectAnswer {
				line = correctStyle.Render(line + " (Correct)")
			}
			b.WriteString(line + "\n")
		}
		if question.Explanation != "" {
			b.WriteString(mutedStyle.Render("Explanation: "+question.Explanation) + "\n")
		}
	}
	return b.String()
}
