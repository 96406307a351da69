package extract

import (
	"os"
	"strings"
)

// minRun is the shortest printable run kept from a binary document.
const minRun = 8

// legacyText scrapes readable text out of binary Office 97-2003 files (.doc,
// .ppt). Those store text either as 8-bit runs or as UTF-16LE runs; both are
// scanned and the larger harvest wins.
func legacyText(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	narrow := printableRuns(data, 1)
	wide := printableRuns(data, 2)
	if len(wide) > len(narrow) {
		return wide, nil
	}
	return narrow, nil
}

// printableRuns walks data in steps of width bytes. For width 2 a character is
// a low ASCII byte followed by a zero byte.
func printableRuns(data []byte, width int) string {
	var (
		out strings.Builder
		run []byte
	)
	flush := func() {
		if len(run) >= minRun && strings.ContainsRune(string(run), ' ') {
			out.Write(run)
			out.WriteByte('\n')
		}
		run = run[:0]
	}
	for i := 0; i+width <= len(data); i += width {
		c := data[i]
		if width == 2 && data[i+1] != 0 {
			flush()
			continue
		}
		if isTextByte(c) {
			run = append(run, c)
			continue
		}
		flush()
	}
	flush()
	return out.String()
}

func isTextByte(c byte) bool {
	return (c >= 0x20 && c < 0x7f) || c == '\t' || c == '\n' || c == '\r'
}
