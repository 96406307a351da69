package quiz

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Candidate is a raw question found by an extractor, before distractors and
// option shuffling. Terms holds the captured terms the distractor templates
// interpolate.
type Candidate struct {
	Type        QuestionType
	Ordinal     int
	Question    string
	Answer      string
	Explanation string
	Terms       []string
}

// Extractor scans sentences for one family of patterns. Implementations are
// stateless and safe for concurrent use.
type Extractor interface {
	Name() string
	Extract(sentences []Sentence) []Candidate
}

// DefaultExtractors returns the extractors in priority order.
func DefaultExtractors() []Extractor {
	return []Extractor{
		DefinitionExtractor{},
		ProcessExtractor{},
		ComparisonExtractor{},
		FactExtractor{},
		ApplicationExtractor{},
	}
}

const termPattern = `(\b[A-Z][a-z]+(?:\s+[A-Z]?[a-z]*)*\b)`

var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)` + termPattern + ` is (?:defined as|means) ([^.!?]+)`),
	regexp.MustCompile(`(?i)` + termPattern + ` refers to ([^.!?]+)`),
	regexp.MustCompile(`(?i)The term ` + termPattern + ` means ([^.!?]+)`),
}

// DefinitionExtractor finds "<Term> is defined as <definition>" style sentences.
type DefinitionExtractor struct{}

func (DefinitionExtractor) Name() string { return string(TypeDefinition) }

func (DefinitionExtractor) Extract(sentences []Sentence) []Candidate {
	var out []Candidate
	for _, s := range sentences {
		for _, p := range definitionPatterns {
			m := p.FindStringSubmatch(s.Text)
			if m == nil {
				continue
			}
			term := strings.TrimSpace(m[1])
			definition := strings.TrimSpace(m[2])
			if term == "" || definition == "" || startsWithDigit(term) {
				continue
			}
			out = append(out, Candidate{
				Type:        TypeDefinition,
				Ordinal:     s.Index,
				Question:    "What is " + term + "?",
				Answer:      definition,
				Explanation: term + " is defined as " + definition,
				Terms:       []string{term},
			})
		}
	}
	return out
}

var processPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)The (?:steps?|process) (?:are|is):?\s*([^.!?]+)`),
	regexp.MustCompile(`(?i)(?:First|Next|Then|Finally), ([^.!?]+)`),
	regexp.MustCompile(`(?i)The (?:main|primary) (?:purpose|function) of (\w+) is ([^.!?]+)`),
}

const processPrompt = "What is the correct description of this process?"

// ProcessExtractor finds step and purpose descriptions. The whole sentence is
// the correct answer.
type ProcessExtractor struct{}

func (ProcessExtractor) Name() string { return string(TypeProcess) }

func (ProcessExtractor) Extract(sentences []Sentence) []Candidate {
	var out []Candidate
	for _, s := range sentences {
		for _, p := range processPatterns {
			if !p.MatchString(s.Text) {
				continue
			}
			out = append(out, Candidate{
				Type:        TypeProcess,
				Ordinal:     s.Index,
				Question:    processPrompt,
				Answer:      s.Text,
				Explanation: "This describes the key aspect of the process.",
			})
		}
	}
	return out
}

var comparisonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+) differs? from (\w+) in that ([^.!?]+)`),
	regexp.MustCompile(`(?i)(\w+) (?:is|are) different from (\w+) because ([^.!?]+)`),
	regexp.MustCompile(`(?i)The main difference between (\w+) and (\w+) is ([^.!?]+)`),
}

// ComparisonExtractor finds sentences contrasting two terms.
type ComparisonExtractor struct{}

func (ComparisonExtractor) Name() string { return string(TypeComparison) }

func (ComparisonExtractor) Extract(sentences []Sentence) []Candidate {
	var out []Candidate
	for _, s := range sentences {
		for _, p := range comparisonPatterns {
			m := p.FindStringSubmatch(s.Text)
			if m == nil {
				continue
			}
			first, second, difference := m[1], m[2], strings.TrimSpace(m[3])
			if difference == "" {
				continue
			}
			out = append(out, Candidate{
				Type:        TypeComparison,
				Ordinal:     s.Index,
				Question:    "How does " + first + " differ from " + second + "?",
				Answer:      difference,
				Explanation: "The key difference is: " + difference,
				Terms:       []string{first, second},
			})
		}
	}
	return out
}

var factTrigger = regexp.MustCompile(`(?i)\b(?:is|are|was|were|can|has|have)\b`)

const (
	factMinTokens   = 6
	factMinChars    = 10
	factAnswer      = "True"
	articleStem     = "Which of the following is true?"
	defaultFactStem = "Based on the content, which statement is correct?"
)

// FactExtractor turns copula/modal statements into true-or-false style items.
type FactExtractor struct{}

func (FactExtractor) Name() string { return string(TypeFact) }

func (FactExtractor) Extract(sentences []Sentence) []Candidate {
	var out []Candidate
	for _, s := range sentences {
		if !factTrigger.MatchString(s.Text) || len(strings.Fields(s.Text)) <= factMinTokens {
			continue
		}
		stem, ok := StatementToQuestion(s.Text)
		if !ok {
			continue
		}
		out = append(out, Candidate{
			Type:        TypeFact,
			Ordinal:     s.Index,
			Question:    stem,
			Answer:      factAnswer,
			Explanation: "Based on: " + s.Text,
		})
	}
	return out
}

// StatementToQuestion picks a fixed question stem for a statement. It does no
// grammatical transformation. Statements under 10 characters have no stem.
func StatementToQuestion(statement string) (string, bool) {
	if utf8.RuneCountInString(statement) < factMinChars {
		return "", false
	}
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return "", false
	}
	switch strings.ToLower(fields[0]) {
	case "the", "a", "an":
		return articleStem, true
	}
	return defaultFactStem, true
}

var (
	applicationTrigger = regexp.MustCompile(`(?i)\b(?:used for|applied in|utilized for|employed in)\b`)
	applicationCapture = regexp.MustCompile(`(?i)(?:used for|applied in|utilized for|employed in)\s+([^.!?]+)`)
)

const applicationPrompt = "What is the primary application mentioned?"

// ApplicationExtractor finds "used for / applied in ..." sentences and asks for
// the captured application.
type ApplicationExtractor struct{}

func (ApplicationExtractor) Name() string { return string(TypeApplication) }

func (ApplicationExtractor) Extract(sentences []Sentence) []Candidate {
	var out []Candidate
	for _, s := range sentences {
		if !applicationTrigger.MatchString(s.Text) {
			continue
		}
		var application string
		if m := applicationCapture.FindStringSubmatch(s.Text); m != nil {
			application = strings.TrimSpace(m[1])
		}
		// An empty answer is kept; building the question drops it.
		out = append(out, Candidate{
			Type:        TypeApplication,
			Ordinal:     s.Index,
			Question:    applicationPrompt,
			Answer:      application,
			Explanation: "As described: " + s.Text,
		})
	}
	return out
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}
