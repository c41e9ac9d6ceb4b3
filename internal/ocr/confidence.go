package ocr

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reSlashDate   = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	reWrittenDate = regexp.MustCompile(`\d{1,2}\s*ב\S+\s*\d{4}`)
	reIDNumber    = regexp.MustCompile(`\b\d{9}\b`)
)

// registryWords are words nearly every certificate layout prints somewhere.
var registryWords = []string{"תאריך", "שם", "מספר", "לידה", "רישום", "Date", "name"}

func hasDatePattern(s string) bool { return reSlashDate.MatchString(s) || reWrittenDate.MatchString(s) }
func hasIDPattern(s string) bool   { return reIDNumber.MatchString(s) }

func hasHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

// HeuristicConfidence scores 0..1 how much txt looks like readable registry text.
func HeuristicConfidence(txt string) float32 {
	score := float32(0.2) // base
	if hasDatePattern(txt) {
		score += 0.2
	}
	if hasIDPattern(txt) {
		score += 0.15
	}
	if hasHebrew(txt) {
		score += 0.15
	}
	hits := 0
	for _, w := range registryWords {
		if strings.Contains(txt, w) {
			hits++
		}
	}
	if hits >= 2 {
		score += 0.2
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
