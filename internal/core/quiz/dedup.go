package quiz

import "strings"

// Dedupe drops questions whose lower-cased text was already seen, keeping the
// first occurrence.
func Dedupe(questions []Question) []Question {
	seen := make(map[string]struct{}, len(questions))
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		key := strings.ToLower(q.Question)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}

// Limit truncates questions to at most max entries.
func Limit(questions []Question, max int) []Question {
	if max < 0 || len(questions) <= max {
		return questions
	}
	return questions[:max]
}
