package quiz

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrGenerationFailed is returned when any stage faults. No partial result is
// returned with it.
var ErrGenerationFailed = errors.New("failed to generate quiz questions")

const (
	DefaultEarlyStop    = 15
	DefaultMaxQuestions = 10
	wordsPerSlide       = 100
)

// Config controls a Generator. Zero values fall back to the defaults.
type Config struct {
	// EarlyStop halts extractor invocation once this many candidates were
	// collected. It is checked between extractors only.
	EarlyStop int
	// MaxQuestions caps the final output after deduplication.
	MaxQuestions int
	Extractors   []Extractor
	// NewRandom is called once per Generate call.
	NewRandom func() Random
	Logger    logrus.FieldLogger
}

// Generator turns extracted document text into a quiz. It holds no mutable
// state and may be shared between goroutines.
type Generator struct {
	earlyStop    int
	maxQuestions int
	extractors   []Extractor
	newRandom    func() Random
	log          logrus.FieldLogger
}

func New(cfg Config) *Generator {
	g := &Generator{
		earlyStop:    cfg.EarlyStop,
		maxQuestions: cfg.MaxQuestions,
		extractors:   cfg.Extractors,
		newRandom:    cfg.NewRandom,
		log:          cfg.Logger,
	}
	if g.earlyStop <= 0 {
		g.earlyStop = DefaultEarlyStop
	}
	if g.maxQuestions <= 0 {
		g.maxQuestions = DefaultMaxQuestions
	}
	if len(g.extractors) == 0 {
		g.extractors = DefaultExtractors()
	}
	if g.newRandom == nil {
		g.newRandom = NewRandom
	}
	if g.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		g.log = discard
	}
	return g
}

// WithLogger returns a copy of g that logs to l.
func (g *Generator) WithLogger(l logrus.FieldLogger) *Generator {
	cp := *g
	cp.log = l
	return &cp
}

// Generate segments text, runs the extractors in priority order, builds and
// deduplicates questions and caps the output. fileName is only used to label
// log output.
func (g *Generator) Generate(text, fileName string) (res *Result, err error) {
	start := time.Now()
	log := g.log.WithField("file", fileName)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("quiz: generation aborted")
			res, err = nil, ErrGenerationFailed
		}
	}()

	r := g.newRandom()
	sentences := Segment(text)
	stats := Stats{Sentences: len(sentences)}

	var collected []Question
	for _, ex := range g.extractors {
		if len(collected) >= g.earlyStop {
			break
		}
		stats.ExtractorsRun = append(stats.ExtractorsRun, ex.Name())
		for _, c := range ex.Extract(sentences) {
			stats.Candidates++
			q, ok := Build(c, r)
			if !ok {
				stats.Discarded++
				continue
			}
			collected = append(collected, q)
		}
	}

	questions := Limit(Dedupe(collected), g.maxQuestions)
	res = &Result{
		Questions:        questions,
		TotalSlides:      EstimateSlides(text),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Stats:            stats,
	}

	log.WithFields(logrus.Fields{
		"sentences":  stats.Sentences,
		"candidates": stats.Candidates,
		"discarded":  stats.Discarded,
		"extractors": strings.Join(stats.ExtractorsRun, ","),
		"questions":  len(questions),
		"elapsed_ms": res.ProcessingTimeMs,
	}).Info("quiz: generated")
	return res, nil
}

// EstimateSlides approximates the slide count as one slide per 100 words,
// never less than one.
func EstimateSlides(text string) int {
	words := len(strings.Fields(text))
	slides := (words + wordsPerSlide - 1) / wordsPerSlide
	if slides < 1 {
		return 1
	}
	return slides
}
