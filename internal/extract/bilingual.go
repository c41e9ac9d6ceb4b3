package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
	"github.com/joseph-ayodele/certificate-extractor/internal/ocr"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

// marks are the right-to-left and left-to-right marks OCR leaves around
// mixed-direction cells.
const marks = `\x{200E}\x{200F}`

var (
	reHebrewTail = regexp.MustCompile(`[` + hebrew + marks + `].*$`)

	reBornIn          = regexp.MustCompile(`(?i)(נולד(?:\sב|\s*ב|\sב*)|birth)\s*[:\-]?\s*([A-Z\s]+)`)
	reBeforePlaceOf   = regexp.MustCompile(`([A-Za-z\s]+)(?:[` + hebrew + marks + `\s]+)?Place of`)
	rePlaceNoise      = regexp.MustCompile(`[^\w\s\-']`)
	reGregorianCell   = regexp.MustCompile(`התאריך\s*(\d{1,2}/\d{1,2}/\d{4})`)
	reIdentityCell    = regexp.MustCompile(`מספר הזהות\s*(\d{1,9}(?:\s*\d{1,9})*)`)
	reIdentityAnyLine = regexp.MustCompile(`מספר הזהות\s*(\d{9})`)
	reDigitRuns       = regexp.MustCompile(`\d+`)
	reRegistryYear    = regexp.MustCompile(`Birth Registry of the year (\d{4})`)
	reAuthorityIn     = regexp.MustCompile(`Authority in\s*([\w\s-]+)$`)
	reEnglishDate     = regexp.MustCompile(`Date\s+(\d{1,2}\s+\w+\s+\d{4})`)
)

const (
	placeNoise        = "NPopONR"
	registrationPlace = "At the office of the Population and Immigration Authority in"
	idLength          = 9
)

// englishLabel is an English cell label whose value runs up to the first
// Hebrew letter or directional mark.
type englishLabel struct {
	dictionary.Entry
	re *regexp.Regexp
}

func newEnglishLabel(label, field string) englishLabel {
	return englishLabel{
		Entry: dictionary.Entry{Label: label, Field: field},
		re:    regexp.MustCompile(regexp.QuoteMeta(label) + `\s+(.+?)(?:\s*[` + hebrew + marks + `]|$)`),
	}
}

// value returns the English value after the label, or "" when the line has none.
func (l englishLabel) value(line string) (string, bool) {
	m := match(l.re, line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(reHebrewTail.ReplaceAllString(strings.TrimSpace(m[1]), "")), true
}

// BilingualExtractor reads birth certificates printed with Hebrew and English
// columns side by side. Values are taken from the English column.
type BilingualExtractor struct {
	pass        *genericPass
	tr          *dictionary.Translator
	log         *slog.Logger
	labels      []englishLabel
	names       []string
	anchors     []englishLabel
	anchorNames []string
}

func NewBilingualExtractor(d *dictionary.Dictionary, logger *slog.Logger) *BilingualExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &BilingualExtractor{pass: newGenericPass(d), tr: d.Translator(), log: logger}
	for _, en := range d.EnglishLabels() {
		e.labels = append(e.labels, newEnglishLabel(en.Label, en.Field))
		e.names = append(e.names, en.Label)
	}
	e.anchors = []englishLabel{
		newEnglishLabel("of father", record.FathersName),
		newEnglishLabel("of mother's father", record.MotherFather),
		newEnglishLabel("of mother", record.MothersName),
		newEnglishLabel("grandfather", record.GrandfatherName),
		newEnglishLabel("hospital", record.HospitalName),
	}
	for _, a := range e.anchors {
		e.anchorNames = append(e.anchorNames, a.Label)
	}
	return e
}

func (e *BilingualExtractor) Template() constants.TemplateType {
	return constants.BilingualBirthCertificate
}

func (e *BilingualExtractor) Extract(lines ocr.Lines, rec *record.Record) {
	f := newFold(lines, rec, e.tr, e.log)
	f.generic = genericEnabled(constants.BilingualBirthCertificate, lines)
	f.run([]rule{
		e.pass.apply,
		e.englishCells,
		e.anchorCells,
		bilingualPlace,
		bilingualDate,
		bilingualID,
		bilingualRegistration,
		referenceRule,
	})
}

func (e *BilingualExtractor) englishCells(f *fold) {
	for _, l := range e.labels {
		if shadowed(f.line, l.Label, e.names) {
			continue
		}
		if v, ok := l.value(f.line); ok {
			f.set(l.Field, v)
		}
	}
}

func (e *BilingualExtractor) anchorCells(f *fold) {
	for _, a := range e.anchors {
		if !f.has(a.Label) || shadowed(f.line, a.Label, e.anchorNames) {
			continue
		}
		if v, ok := a.value(f.line); ok {
			f.set(a.Field, v)
		}
	}
}

func bilingualPlace(f *fold) {
	if !f.has("Place") {
		return
	}
	var value string
	if m := match(reBornIn, f.line); m != nil {
		value = m[2]
	} else if m := match(reBeforePlaceOf, f.line); m != nil {
		value = m[1]
	} else {
		f.log.Debug("extract.bilingual.place_unmatched", "line", f.i)
		return
	}
	value = reHebrewTail.ReplaceAllString(strings.TrimSpace(value), "")
	value = strings.TrimSpace(rePlaceNoise.ReplaceAllString(strings.ReplaceAll(value, placeNoise, ""), ""))
	if value == "" {
		f.log.Warn("extract.bilingual.place_empty", "line", f.i)
		return
	}
	f.set(record.PlaceOfBirth, value)
}

func bilingualDate(f *fold) {
	if !f.has("Gregorian date") {
		return
	}
	if m := match(reGregorianCell, f.line); m != nil {
		f.set(record.DateOfBirth, m[1])
	}
}

// bilingualID tries the cell on the trigger line, then the label anywhere in the
// text, then the digits of the trigger line and the two lines after it.
func bilingualID(f *fold) {
	if !f.has("dentity number") {
		return
	}
	if m := match(reIdentityCell, f.line); m != nil {
		f.set(record.IDNumber, strings.Join(strings.Fields(m[1]), ""))
		return
	}
	if m := match(reIdentityAnyLine, f.lines.Text()); m != nil {
		f.set(record.IDNumber, m[1])
		return
	}
	var digits strings.Builder
	for d := 0; d <= 2; d++ {
		for _, run := range reDigitRuns.FindAllString(f.next(d), -1) {
			digits.WriteString(run)
		}
	}
	id := digits.String()
	f.set(record.IDNumber, id)
	if len(id) != idLength {
		f.log.Warn("extract.bilingual.id_length", "line", f.i, "idnumber", id, "digits", len(id))
		f.rec.Note(fmt.Sprintf("identity number %q is %d digits, expected %d", id, len(id), idLength))
	}
}

func bilingualRegistration(f *fold) {
	if m := match(reRegistryYear, f.line); m != nil {
		f.set(record.DateOfRegistration, m[1])
	}
	if f.has(registrationPlace) {
		if m := match(reAuthorityIn, f.line); m != nil {
			f.set(record.PlaceOfRegistration, strings.TrimSpace(m[1]))
		}
	}
	if m := match(reEnglishDate, f.line); m != nil {
		f.set(record.DateIssued, m[1])
	}
}
