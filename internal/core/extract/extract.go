package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"quizgen/config"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupported = errors.New("unsupported document type")
	ErrEmpty       = errors.New("document contains no extractable text")
)

// Kind is a supported document format.
type Kind string

const (
	KindUnknown Kind = ""
	KindPDF     Kind = "pdf"
	KindPPTX    Kind = "pptx"
	KindDOCX    Kind = "docx"
	KindPPT     Kind = "ppt"
	KindDOC     Kind = "doc"
)

var kindByMime = map[string]Kind{
	config.MimePDF:  KindPDF,
	config.MimePPTX: KindPPTX,
	config.MimeDOCX: KindDOCX,
	config.MimePPT:  KindPPT,
	config.MimeDOC:  KindDOC,
}

var kindByExt = map[string]Kind{
	".pdf":  KindPDF,
	".pptx": KindPPTX,
	".docx": KindDOCX,
	".ppt":  KindPPT,
	".doc":  KindDOC,
}

// Mime returns the canonical content type of k.
func (k Kind) Mime() string {
	for m, kind := range kindByMime {
		if kind == k {
			return m
		}
	}
	return ""
}

// KindOfMime maps a declared content type (parameters allowed) to a Kind.
func KindOfMime(contentType string) Kind {
	base, _, _ := strings.Cut(contentType, ";")
	return kindByMime[strings.ToLower(strings.TrimSpace(base))]
}

// Detect resolves the format of an upload. The declared content type wins when
// it names a supported format, then the sniffed content, then the extension.
func Detect(declared, fileName string, head []byte) Kind {
	if k := KindOfMime(declared); k != KindUnknown {
		return k
	}
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		if k := KindOfMime(m.String()); k != KindUnknown {
			return k
		}
	}
	return kindByExt[strings.ToLower(filepath.Ext(fileName))]
}

// Text extracts the plain text of the document at path and cleans it.
func Text(ctx context.Context, path string, kind Kind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		raw string
		err error
	)
	switch kind {
	case KindPDF:
		raw, err = pdfText(ctx, path)
	case KindDOCX:
		raw, err = docxText(path)
	case KindPPTX:
		raw, err = pptxText(ctx, path)
	case KindDOC, KindPPT:
		raw, err = legacyText(path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, kind)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}

	text := CleanText(raw)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}
