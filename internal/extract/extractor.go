// Package extract turns normalized certificate lines into records. One Extractor
// exists per template; each folds over the lines once, applying its rules to
// every line in a fixed order so that a later write to a field replaces an
// earlier one.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
	"github.com/joseph-ayodele/certificate-extractor/internal/ocr"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

// Extractor fills rec from lines. Implementations keep no state between calls.
type Extractor interface {
	Template() constants.TemplateType
	Extract(lines ocr.Lines, rec *record.Record)
}

const hebrew = `\x{0590}-\x{05FF}`

// fieldWriter is satisfied by both *record.Record and *record.Person.
type fieldWriter interface {
	Get(key string) string
	Set(key, value string)
}

// fold is the per-call state threaded through the line loop.
type fold struct {
	rec    *record.Record
	lines  ocr.Lines
	i      int
	line   string
	person constants.Role
	tr     *dictionary.Translator
	log    *slog.Logger

	// generic is false when the dictionary pass is disabled for this call.
	generic bool
}

type rule func(f *fold)

func newFold(lines ocr.Lines, rec *record.Record, tr *dictionary.Translator, log *slog.Logger) *fold {
	return &fold{rec: rec, lines: lines, tr: tr, log: log}
}

func (f *fold) run(rules []rule) {
	for i := range f.lines {
		f.i = i
		f.line = f.lines[i].Text
		for _, r := range rules {
			r(f)
		}
	}
}

// next returns the line at offset d from the current one, "" past either end.
func (f *fold) next(d int) string { return f.lines.At(f.i + d) }

// target is the active person sub-record, or the record itself when no person
// context is set.
func (f *fold) target() fieldWriter {
	if f.person != constants.RoleNone {
		if p := f.rec.Person(f.person); p != nil {
			return p
		}
	}
	return f.rec
}

func (f *fold) set(key, value string) {
	f.rec.Set(key, value)
	f.log.Debug("extract.field", "template", f.rec.Template, "line", f.i, "field", key, "value", value)
}

func (f *fold) setPerson(role constants.Role, key, value string) {
	if p := f.rec.Person(role); p != nil {
		p.Set(key, value)
		f.log.Debug("extract.field", "template", f.rec.Template, "line", f.i, "person", role, "field", key, "value", value)
	}
}

func (f *fold) has(sub string) bool { return strings.Contains(f.line, sub) }

// match returns the submatches of re in s, nil when there is none.
func match(re *regexp.Regexp, s string) []string {
	return re.FindStringSubmatch(s)
}

// remainder returns the text between the first and second occurrence of label in
// line, trimmed.
func remainder(line, label string) (string, bool) {
	parts := strings.Split(line, label)
	if len(parts) < 2 {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// shadowed reports whether the first occurrence of label in line is really the
// start of a longer label from the same table.
func shadowed(line, label string, table []string) bool {
	idx := strings.Index(line, label)
	if idx < 0 {
		return false
	}
	rest := line[idx:]
	for _, other := range table {
		if len(other) > len(label) && strings.HasPrefix(other, label) && strings.HasPrefix(rest, other) {
			return true
		}
	}
	return false
}

var reHebrewRun = regexp.MustCompile(`[` + hebrew + `]+`)

// keepHebrew drops everything that is not a Hebrew letter or a space.
func keepHebrew(s string) string {
	return strings.Join(reHebrewRun.FindAllString(s, -1), " ")
}

// onlyHebrew drops everything that is not a Hebrew letter.
func onlyHebrew(s string) string {
	return strings.Join(reHebrewRun.FindAllString(s, -1), "")
}

var reFiveDigits = regexp.MustCompile(`\d{5,}`)

// referenceRule takes the first run of five or more digits on the line.
func referenceRule(f *fold) {
	if m := reFiveDigits.FindString(f.line); m != "" {
		f.set(record.Reference, m)
	}
}
