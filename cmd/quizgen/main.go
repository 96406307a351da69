package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"quizgen/config"
	"quizgen/internal/core/quiz"
	"quizgen/internal/services/quizstore"
	"quizgen/internal/services/upload"
	"quizgen/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		file         = flag.String("file", "", "Document to build a quiz from: PDF, PPT, PPTX, DOC or DOCX (required)")
		format       = flag.String("format", "text", "Output format (text, json)")
		output       = flag.String("output", "", "Output file (default: stdout)")
		maxQuestions = flag.Int("questions", config.Cfg.Quiz.MaxQuestions, "Maximum number of questions")
		earlyStop    = flag.Int("early-stop", config.Cfg.Quiz.EarlyStop, "Stop running extractors after this many candidates")
		timeout      = flag.Duration("timeout", time.Duration(config.Cfg.Quiz.TimeoutMs)*time.Millisecond, "Generation timeout")
		color        = flag.Bool("color", false, "Highlight questions and correct answers in text output")
		verbose      = flag.Bool("verbose", false, "Log generation statistics to stderr")
	)
	flag.Parse()

	if *file == "" && flag.NArg() > 0 {
		*file = flag.Arg(0)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "a document is required, use -file")
		flag.Usage()
		os.Exit(2)
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(os.Stderr, "unsupported format %q\n", *format)
		os.Exit(2)
	}

	log := logger.Discard()
	if *verbose {
		if err := logger.SetLevel("debug"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log = logger.GetLogger()
		log.SetOutput(os.Stderr)
	}

	q, err := run(context.Background(), *file, *maxQuestions, *earlyStop, *timeout, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate quiz: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	switch {
	case *format == "json":
		err = quiz.WriteJSON(w, q)
	case *color && *output == "":
		_, err = io.WriteString(w, renderColor(q))
	default:
		err = quiz.WriteText(w, q)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write quiz: %v\n", err)
		os.Exit(1)
	}
}

// run pushes one local file through the same pipeline the upload endpoint uses.
func run(ctx context.Context, path string, maxQuestions, earlyStop int, timeout time.Duration, log logrus.FieldLogger) (quiz.Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return quiz.Quiz{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return quiz.Quiz{}, err
	}

	opts := upload.OptionsFromConfig()
	opts.Timeout = timeout
	generator := quiz.New(quiz.Config{
		EarlyStop:    earlyStop,
		MaxQuestions: maxQuestions,
		Logger:       log,
	})
	svc := upload.New(opts, generator, quizstore.NewMemory(), nil, log)

	return svc.Process(ctx, upload.File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Body: f,
	}, "cli")
}
