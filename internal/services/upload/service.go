package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"quizgen/config"
	"quizgen/internal/core/extract"
	"quizgen/internal/core/quiz"
	"quizgen/internal/services/archive"
	"quizgen/internal/services/quizstore"
	"quizgen/pkg/apperror/status"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoFile              = errors.New("no file uploaded")
	ErrEmptyFile           = errors.New("uploaded file is empty")
	ErrInvalidType         = errors.New("invalid file type, please upload PDF, PPT, PPTX, DOC, or DOCX files")
	ErrFileTooLarge        = errors.New("file size exceeds the upload limit")
	ErrInsufficientContent = errors.New("insufficient text content found in the file, please ensure the file contains readable text")
	ErrExtractionFailed    = errors.New("failed to extract text from the file")
	ErrGenerationTimeout   = errors.New("quiz generation timed out")
)

const (
	previewRunes = 300
	sniffBytes   = 3072
)

// Options bound what the service accepts.
type Options struct {
	MaxFileSize   int64
	AllowedTypes  []string
	MinTextLength int
	TempDir       string
	Timeout       time.Duration
}

// OptionsFromConfig reads the upload and quiz sections.
func OptionsFromConfig() Options {
	return Options{
		MaxFileSize:   config.Cfg.Upload.MaxFileSize,
		AllowedTypes:  config.Cfg.Upload.AllowedTypes,
		MinTextLength: config.Cfg.Upload.MinTextLength,
		TempDir:       config.Cfg.Upload.TempDir,
		Timeout:       time.Duration(config.Cfg.Quiz.TimeoutMs) * time.Millisecond,
	}
}

// File is one uploaded document.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Service turns uploaded documents into stored quizzes.
type Service struct {
	opts      Options
	generator *quiz.Generator
	store     quizstore.Store
	archiver  archive.Archiver
	log       logrus.FieldLogger
}

// New wires a Service. archiver may be nil.
func New(opts Options, generator *quiz.Generator, store quizstore.Store, archiver archive.Archiver, log logrus.FieldLogger) *Service {
	return &Service{opts: opts, generator: generator, store: store, archiver: archiver, log: log}
}

// Process validates f, extracts its text, generates a quiz under the
// configured timeout and stores it. Returned errors carry a status code.
func (s *Service) Process(ctx context.Context, f File, requestID string) (quiz.Quiz, error) {
	log := s.log.WithFields(logrus.Fields{"file": f.Name, "request_id": requestID})

	if f.Body == nil {
		return quiz.Quiz{}, status.New(status.NoFile, ErrNoFile)
	}
	if f.Size == 0 {
		return quiz.Quiz{}, status.New(status.InvalidFile, ErrEmptyFile)
	}
	if f.Size > s.opts.MaxFileSize {
		return quiz.Quiz{}, status.New(status.FileTooLarge, ErrFileTooLarge)
	}

	path, head, cleanup, err := s.stage(f)
	if err != nil {
		return quiz.Quiz{}, err
	}
	defer cleanup()

	kind := extract.Detect(f.ContentType, f.Name, head)
	if kind == extract.KindUnknown || !slices.Contains(s.opts.AllowedTypes, kind.Mime()) {
		return quiz.Quiz{}, status.New(status.InvalidFile, ErrInvalidType)
	}
	log = log.WithField("kind", string(kind))

	if s.archiver != nil {
		if _, err := s.archiver.Archive(ctx, path, f.Name, kind.Mime()); err != nil {
			log.WithField("module", string(config.ModuleArchive)).WithError(err).Warn("upload: archive failed")
		}
	}

	text, err := extract.Text(ctx, path, kind)
	switch {
	case errors.Is(err, extract.ErrEmpty):
		return quiz.Quiz{}, status.New(status.InsufficientContent, ErrInsufficientContent)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return quiz.Quiz{}, err
	case err != nil:
		log.WithField("module", string(config.ModuleExtract)).WithError(err).Warn("upload: extraction failed")
		return quiz.Quiz{}, status.New(status.ExtractionFailed, fmt.Errorf("%w: %v", ErrExtractionFailed, err))
	}
	if utf8.RuneCountInString(text) < s.opts.MinTextLength {
		return quiz.Quiz{}, status.New(status.InsufficientContent, ErrInsufficientContent)
	}

	res, err := s.generate(ctx, text, f.Name, log)
	if err != nil {
		return quiz.Quiz{}, err
	}

	q := quiz.Quiz{
		ID:               uuid.NewString(),
		FileName:         f.Name,
		FileType:         kind.Mime(),
		TotalSlides:      res.TotalSlides,
		TextPreview:      Preview(text),
		WordCount:        len(strings.Fields(text)),
		ProcessingTimeMs: res.ProcessingTimeMs,
		Questions:        res.Questions,
	}
	if err := s.store.Create(ctx, q); err != nil {
		return quiz.Quiz{}, status.New(status.StorageFailed, fmt.Errorf("store quiz: %w", err))
	}
	stored, err := s.store.Get(ctx, q.ID)
	if err != nil {
		return quiz.Quiz{}, status.New(status.StorageFailed, fmt.Errorf("reload quiz: %w", err))
	}
	log.WithFields(logrus.Fields{"quiz_id": q.ID, "questions": len(q.Questions)}).Info("upload: quiz stored")
	return stored, nil
}

type generation struct {
	res *quiz.Result
	err error
}

// generate runs the engine in its own goroutine so the caller can give up at
// the deadline. The engine itself is not interrupted.
func (s *Service) generate(ctx context.Context, text, fileName string, log logrus.FieldLogger) (*quiz.Result, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	done := make(chan generation, 1)
	go func() {
		res, err := s.generator.WithLogger(log).Generate(text, fileName)
		done <- generation{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, status.New(status.GenerationTimeout, ErrGenerationTimeout)
		}
		return nil, ctx.Err()
	case g := <-done:
		if g.err != nil {
			return nil, status.New(status.GenerationFailed, g.err)
		}
		return g.res, nil
	}
}

// stage copies the upload to a temp file and returns its path and leading
// bytes for type sniffing.
func (s *Service) stage(f File) (string, []byte, func(), error) {
	tmp, err := os.CreateTemp(s.opts.TempDir, "upload-*"+strings.ToLower(filepath.Ext(f.Name)))
	if err != nil {
		return "", nil, func() {}, status.New(status.Internal, fmt.Errorf("tempfile: %w", err))
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	n, err := io.Copy(tmp, io.LimitReader(f.Body, s.opts.MaxFileSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", nil, func() {}, status.New(status.Internal, fmt.Errorf("stage upload: %w", err))
	}
	if n == 0 {
		cleanup()
		return "", nil, func() {}, status.New(status.InvalidFile, ErrEmptyFile)
	}
	if n > s.opts.MaxFileSize {
		cleanup()
		return "", nil, func() {}, status.New(status.FileTooLarge, ErrFileTooLarge)
	}

	head, err := readHead(tmp.Name())
	if err != nil {
		cleanup()
		return "", nil, func() {}, status.New(status.Internal, err)
	}
	return tmp.Name(), head, cleanup, nil
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, sniffBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

// Preview is the first 300 characters of text followed by an ellipsis.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text + "..."
	}
	return string([]rune(text)[:previewRunes]) + "..."
}
