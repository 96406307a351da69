package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

const docxBody = "word/document.xml"

func docxText(p string) (string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == docxBody {
			return xmlPartText(f)
		}
	}
	return "", fmt.Errorf("missing %s", docxBody)
}

func pptxText(ctx context.Context, p string) (string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	slides := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if slideNumber(f.Name) > 0 {
			slides = append(slides, f)
		}
	}
	if len(slides) == 0 {
		return "", errors.New("presentation has no slides")
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i].Name) < slideNumber(slides[j].Name)
	})

	var b strings.Builder
	for _, f := range slides {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := xmlPartText(f)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f.Name, err)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// slideNumber returns N for ppt/slides/slideN.xml and 0 for any other part.
func slideNumber(name string) int {
	dir, file := path.Split(name)
	if dir != "ppt/slides/" || !strings.HasPrefix(file, "slide") || !strings.HasSuffix(file, ".xml") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(file, "slide"), ".xml"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// xmlPartText collects the character data of every <t> run (w:t in
// WordprocessingML, a:t in DrawingML) and ends each <p> paragraph with a
// newline.
func xmlPartText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "br":
				b.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
