package quiz

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minSentenceChars  = 20
	minSentenceTokens = 5
)

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// Segment splits text on runs of terminal punctuation and keeps the trimmed
// fragments longer than 20 characters with at least 5 tokens.
func Segment(text string) []Sentence {
	fragments := sentenceTerminators.Split(text, -1)
	sentences := make([]Sentence, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if utf8.RuneCountInString(f) <= minSentenceChars || len(strings.Fields(f)) < minSentenceTokens {
			continue
		}
		sentences = append(sentences, Sentence{Text: f, Index: len(sentences)})
	}
	return sentences
}
