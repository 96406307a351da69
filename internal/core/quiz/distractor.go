package quiz

import (
	"strings"
)

// DistractorCount is how many wrong answers each question gets.
const DistractorCount = OptionCount - 1

var factDistractors = []string{"False", "Partially true", "Not mentioned"}

// distractorPool returns the fixed template pool for a candidate, with its
// captured terms interpolated.
func distractorPool(c Candidate) []string {
	switch c.Type {
	case TypeDefinition:
		term := strings.ToLower(firstTerm(c.Terms, 0))
		return []string{
			"A type of " + term + " system",
			"The process of creating " + term,
			"A tool used for " + term + " analysis",
			"The opposite of " + term,
		}
	case TypeProcess:
		return []string{
			"A completely different approach",
			"An outdated methodology",
			"A related but incorrect procedure",
			"The reverse sequence of steps",
		}
	case TypeComparison:
		first, second := firstTerm(c.Terms, 0), firstTerm(c.Terms, 1)
		return []string{
			"They are exactly the same",
			first + " is faster than " + second,
			second + " is more efficient than " + first,
			"There is no significant difference",
		}
	case TypeApplication:
		return []string{
			"Data analysis",
			"System optimization",
			"User interface design",
			"Network security",
		}
	}
	return nil
}

// Distractors picks three wrong answers for c. Templated pools are permuted
// with r and the first three usable entries win; fact candidates always get the
// fixed triple. Entries that repeat the answer or each other (ignoring case)
// are skipped. ok is false when fewer than three remain or the candidate has
// no answer to distract from.
func Distractors(c Candidate, r Random) (distractors []string, ok bool) {
	if strings.TrimSpace(c.Answer) == "" {
		return nil, false
	}
	pool := factDistractors
	if c.Type != TypeFact {
		pool = shuffle(distractorPool(c), r)
	}

	seen := map[string]bool{strings.ToLower(c.Answer): true}
	distractors = make([]string, 0, DistractorCount)
	for _, d := range pool {
		key := strings.ToLower(strings.TrimSpace(d))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		distractors = append(distractors, d)
		if len(distractors) == DistractorCount {
			return distractors, true
		}
	}
	return nil, false
}

func firstTerm(terms []string, i int) string {
	if i < len(terms) {
		return terms[i]
	}
	return ""
}
