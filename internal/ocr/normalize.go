package ocr

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// misreads repairs Hebrew tokens the OCR engine is known to get wrong on
// certificate scans. Each pair is "seen" then "meant".
var misreads = strings.NewReplacer(
	"משפתה", "משפחה",
	"פרטל", "פרטי",
	"שלהאם", "של האם",
	"שלהאב", "של האב",
	"שיכיר", "שכיר",
	"חברת ביטות", "חברת ביטוח",
	"חשמות", "שמות",
	"וקבה", "נקבה",
)

// byte order marks survive copy/paste out of OCR tools.
var dropBOM = runes.Remove(runes.Predicate(func(r rune) bool { return r == '\ufeff' }))

// Line is one non-empty line of certificate text.
type Line struct {
	Index int
	Raw   string // trimmed, before misread repair
	Text  string
}

// Lines is the ordered, immutable line sequence an extractor folds over.
type Lines []Line

// At returns the normalized text of line i, or "" when i is out of range.
func (l Lines) At(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i].Text
}

// Has reports whether line i exists.
func (l Lines) Has(i int) bool { return i >= 0 && i < len(l) }

// Text joins the normalized lines with newlines.
func (l Lines) Text() string {
	parts := make([]string, len(l))
	for i := range l {
		parts[i] = l[i].Text
	}
	return strings.Join(parts, "\n")
}

// ContainsAny reports whether any line contains one of subs.
func (l Lines) ContainsAny(subs ...string) bool {
	for i := range l {
		for _, s := range subs {
			if strings.Contains(l[i].Text, s) {
				return true
			}
		}
	}
	return false
}

// Normalize splits raw OCR output into trimmed non-empty lines, composes Unicode
// to NFC, collapses runs of spaces and repairs known misreads. Directional marks
// are kept. The result is stable under re-normalization of Lines.Text().
func Normalize(s string) Lines {
	if s == "" {
		return Lines{}
	}
	if out, _, err := transform.String(transform.Chain(dropBOM, norm.NFC), s); err == nil {
		s = out
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")

	raw := strings.Split(s, "\n")
	lines := make(Lines, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		lines = append(lines, Line{
			Index: len(lines),
			Raw:   r,
			Text:  misreads.Replace(r),
		})
	}
	return lines
}
