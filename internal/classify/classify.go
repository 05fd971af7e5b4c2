// internal/classify/classify.go
package classify

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// maxFileSize is the largest file considered worth summarizing (50 MiB).
	maxFileSize = 50 << 20
	// sampleSize is how many leading bytes are inspected for content checks.
	sampleSize = 1024
	// printableThreshold is the printable-character fraction a decoded
	// sample must exceed to count as text.
	printableThreshold = 0.8
)

// Classifier decides whether a file's content can safely be treated as text.
// The extension allow-list is explicit configuration, not ambient state.
type Classifier struct {
	MaxFileSize int64
	Extensions  map[string]bool // lowercase, with leading dot
}

// New builds a Classifier from an extension allow-list such as
// []string{".go", ".md"}.
func New(extensions []string) *Classifier {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &Classifier{
		MaxFileSize: maxFileSize,
		Extensions:  exts,
	}
}

// IsText reports whether path looks like a text file. Allow-listed
// extensions pass without any content read; everything else is judged by a
// leading sample: a NUL byte means binary, otherwise the sample is decoded
// as UTF-8, Latin-1, then Windows-1252, and the first decoding whose
// printable fraction exceeds the threshold wins. This is a heuristic, not a
// guarantee.
func (c *Classifier) IsText(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if info.Size() > c.MaxFileSize {
		return false
	}

	if c.Extensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sampleSize)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return false
	}
	sample := buf[:n]

	if bytes.IndexByte(sample, 0) != -1 {
		return false
	}

	return looksPrintable(sample)
}

// looksPrintable tries each candidate encoding in order. A decode that
// succeeds but falls below the threshold does not end the search; the next
// encoding still gets a chance.
func looksPrintable(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	if utf8.Valid(sample) && printableRatio(string(sample)) > printableThreshold {
		return true
	}

	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(sample)
		if err != nil {
			continue
		}
		if printableRatio(string(decoded)) > printableThreshold {
			return true
		}
	}

	return false
}

func printableRatio(s string) float64 {
	var printable, total int
	for _, r := range s {
		total++
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(printable) / float64(total)
}
