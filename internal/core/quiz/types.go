package quiz

// QuestionType names the extractor family a question came from.
type QuestionType string

const (
	TypeDefinition  QuestionType = "definition"
	TypeProcess     QuestionType = "process"
	TypeComparison  QuestionType = "comparison"
	TypeFact        QuestionType = "fact"
	TypeApplication QuestionType = "application"
)

// idTag is the prefix used for question IDs of each type.
var idTag = map[QuestionType]string{
	TypeDefinition:  "def",
	TypeProcess:     "proc",
	TypeComparison:  "comp",
	TypeFact:        "fact",
	TypeApplication: "app",
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
)

// OptionCount is the number of options every emitted question carries.
const OptionCount = 4

// Sentence is a trimmed candidate sentence and its position among the kept sentences.
type Sentence struct {
	Text  string
	Index int
}

// Question is a single multiple-choice item. CorrectAnswer indexes Options.
type Question struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer int          `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Type          QuestionType `json:"type"`
	Difficulty    Difficulty   `json:"difficulty"`
	Category      string       `json:"category"`
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Stats describes one generation run.
type Stats struct {
	Sentences     int      `json:"sentences"`
	Candidates    int      `json:"candidates"`
	Discarded     int      `json:"discarded"`
	ExtractorsRun []string `json:"extractorsRun"`
}

// Result is the output of Generator.Generate. Questions are in discovery order.
type Result struct {
	Questions        []Question `json:"questions"`
	TotalSlides      int        `json:"totalSlides"`
	ProcessingTimeMs int64      `json:"processingTime"`
	Stats            Stats      `json:"-"`
}
