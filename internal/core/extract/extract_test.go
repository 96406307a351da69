package extract

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quizgen/config"
)

func writeZip(t *testing.T, name string, parts map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for partName, body := range parts {
		w, err := zw.Create(partName)
		if err != nil {
			t.Fatalf("zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}
	return p
}

const wordDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Photosynthesis is defined as</w:t></w:r><w:r><w:t xml:space="preserve"> the process plants use.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second</w:t><w:tab/><w:t>paragraph here.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func slideXML(text string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
}

func TestText_DOCX(t *testing.T) {
	p := writeZip(t, "notes.docx", map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   wordDocument,
	})
	got, err := Text(context.Background(), p, KindDOCX)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := "Photosynthesis is defined as the process plants use. Second paragraph here."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestText_PPTXSlideOrder(t *testing.T) {
	p := writeZip(t, "deck.pptx", map[string]string{
		"ppt/slides/slide10.xml":            slideXML("Tenth."),
		"ppt/slides/slide2.xml":             slideXML("Second."),
		"ppt/slides/slide1.xml":             slideXML("First."),
		"ppt/slides/_rels/slide1.xml.rels":  `<Relationships/>`,
		"ppt/slideLayouts/slideLayout1.xml": slideXML("Layout text."),
	})
	got, err := Text(context.Background(), p, KindPPTX)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "First. Second. Tenth." {
		t.Fatalf("unexpected slide text %q", got)
	}
}

func TestText_PPTXWithoutSlides(t *testing.T) {
	p := writeZip(t, "empty.pptx", map[string]string{"[Content_Types].xml": `<Types/>`})
	if _, err := Text(context.Background(), p, KindPPTX); err == nil {
		t.Fatalf("expected an error for a presentation without slides")
	}
}

func TestText_NotAZip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(p, []byte("plain text, not a zip"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Text(context.Background(), p, KindDOCX); err == nil {
		t.Fatalf("expected an error for a non-zip docx")
	}
}

func TestText_Legacy(t *testing.T) {
	var data []byte
	data = append(data, 0xd0, 0xcf, 0x11, 0xe0, 0x00, 0x01, 0x02)
	data = append(data, []byte("Binary noise 01")...)
	data = append(data, 0x00, 0x00, 0xff, 0xff)
	for _, c := range "The cell is the basic unit of life." {
		data = append(data, byte(c), 0x00)
	}
	data = append(data, 0xff, 0xfe)

	p := filepath.Join(t.TempDir(), "old.doc")
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Text(context.Background(), p, KindDOC)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "The cell is the basic unit of life." {
		t.Fatalf("unexpected legacy text %q", got)
	}
}

func TestText_EmptyAndUnsupported(t *testing.T) {
	p := writeZip(t, "blank.docx", map[string]string{
		"word/document.xml": `<w:document xmlns:w="x"><w:body><w:p/></w:body></w:document>`,
	})
	if _, err := Text(context.Background(), p, KindDOCX); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := Text(context.Background(), p, KindUnknown); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, "unused.pdf", KindPDF); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name, declared, fileName string
		head                     []byte
		want                     Kind
	}{
		{"declared wins", config.MimePPTX + "; charset=binary", "x.pdf", []byte("%PDF-1.7"), KindPPTX},
		{"sniffed pdf", "application/octet-stream", "upload.bin", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"), KindPDF},
		{"extension fallback", "", "Lecture.DOC", []byte("hello"), KindDOC},
		{"unknown", "text/plain", "notes.txt", []byte("hello"), KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.declared, tc.fileName, tc.head); got != tc.want {
				t.Fatalf("Detect = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindMime(t *testing.T) {
	if KindDOCX.Mime() != config.MimeDOCX || KindUnknown.Mime() != "" {
		t.Fatalf("unexpected mime mapping")
	}
}

func TestCleanText(t *testing.T) {
	in := "\uFEFF  Line one.\n\n\n\tLine two \x07 ends\r\n\uFFFD"
	got := CleanText(in)
	if got != "Line one. Line two ends" {
		t.Fatalf("unexpected clean text %q", got)
	}
	if again := CleanText(got); again != got {
		t.Fatalf("CleanText is not idempotent: %q -> %q", got, again)
	}
	if CleanText(" \n\t ") != "" {
		t.Fatalf("whitespace-only input must clean to empty")
	}
}
