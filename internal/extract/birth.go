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

var (
	reBirthFamily      = regexp.MustCompile(`(?i)שם המשפחה\s*[:\-]?[\s\\]*([^\s\\|]+)`)
	reBirthFirst       = regexp.MustCompile(`(?i)השם הפרטי\s*[:\-]?\s*([^\s\\|]+)`)
	reBirthFather      = regexp.MustCompile(`של האב\s+(\S+)`)
	reBirthMother      = regexp.MustCompile(`של האם\s*(\S+)`)
	reBirthGrandfather = regexp.MustCompile(`שלאבי האב\s*(\S+)`)
	reBirthID          = regexp.MustCompile(`מספר הזהות\s*(\d{7,9}|\d+\s*\d*)`)
	reBirthPlace       = regexp.MustCompile(`שם הישוב\s*(.+)`)
	reBirthHospital    = regexp.MustCompile(`שם בית החולים\s*(.+)`)
	reReligion         = regexp.MustCompile(`הדת\s*(\S+)`)
	reIssuingOffice    = regexp.MustCompile(`בלשכת\s*(.+)`)
)

// BirthExtractor reads Hebrew-only birth certificates. The dictionary pass
// always runs first for this template.
type BirthExtractor struct {
	pass *genericPass
	tr   *dictionary.Translator
	log  *slog.Logger
}

func NewBirthExtractor(d *dictionary.Dictionary, logger *slog.Logger) *BirthExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BirthExtractor{pass: newGenericPass(d), tr: d.Translator(), log: logger}
}

func (e *BirthExtractor) Template() constants.TemplateType { return constants.BirthCertificate }

func (e *BirthExtractor) Extract(lines ocr.Lines, rec *record.Record) {
	f := newFold(lines, rec, e.tr, e.log)
	f.generic = genericEnabled(constants.BirthCertificate, lines)
	f.run([]rule{
		e.pass.apply,
		birthNames,
		birthParents,
		birthGenderAndID,
		birthPlace,
		birthDate,
		birthNationality,
		birthOffice,
		referenceRule,
	})
	if rec.Get(record.Nationality) == "" {
		rec.Fill(record.Nationality, defaultNationality)
	}
}

// birthNames keeps the first family and first name seen; the certificate
// repeats both labels in the parents' block.
func birthNames(f *fold) {
	if f.rec.Get(record.FamilyName) == "" && f.has("שם המשפחה") {
		if m := match(reBirthFamily, f.line); m != nil {
			f.set(record.FamilyName, strings.TrimSpace(m[1]))
		}
	}
	if f.rec.Get(record.FirstName) == "" && f.has("השם הפרטי") {
		if m := match(reBirthFirst, f.line); m != nil {
			f.set(record.FirstName, strings.TrimSpace(m[1]))
		}
	}
}

func birthParents(f *fold) {
	if f.has("של האב ") {
		if m := match(reBirthFather, f.line); m != nil {
			f.set(record.FathersName, m[1])
		}
	}
	if f.has("של האם") {
		if m := match(reBirthMother, f.line); m != nil {
			f.set(record.MothersName, m[1])
		}
	}
	if f.has("שלאבי האב ") {
		if m := match(reBirthGrandfather, f.line); m != nil {
			f.set(record.GrandfatherName, m[1])
		} else {
			f.set(record.GrandfatherName, strings.TrimSpace(strings.Replace(f.line, "שלאבי האב ", "", 1)))
		}
	}
}

func birthGenderAndID(f *fold) {
	if !f.has("המין") {
		return
	}
	if m := match(rePopGender, f.line); m != nil {
		f.set(record.Gender, f.tr.Translate(m[1]))
	}
	if m := match(reBirthID, f.line); m != nil {
		f.set(record.IDNumber, rotateID(m[1]))
	}
}

// rotateID undoes the right-to-left scan of the ID box: the first digit read is
// really the last one. Inputs that do not follow that layout come out wrong.
func rotateID(s string) string {
	s = strings.Join(strings.Fields(s), "")
	if len(s) < 2 {
		return s
	}
	return s[1:] + s[:1]
}

func birthPlace(f *fold) {
	if f.has("שם הישוב") {
		if m := match(reBirthPlace, f.line); m != nil {
			place, _, _ := strings.Cut(m[1], "שם בית")
			f.set(record.PlaceOfBirth, strings.TrimSpace(place))
		}
	}
	if f.has("שם בית החולים") {
		if m := match(reBirthHospital, f.line); m != nil {
			f.set(record.HospitalName, keepHebrew(m[1]))
		}
	}
}

func birthDate(f *fold) {
	if !f.has("תאריך הלידה") {
		return
	}
	if m := match(reGregorianDOB, f.next(1)); m != nil {
		f.set(record.DateOfBirth, fmt.Sprintf("%s %s %s", m[1], f.tr.Month(m[2]), m[3]))
	}
}

func birthNationality(f *fold) {
	if f.has("הלאום") {
		if m := match(reNationality, f.line); m != nil {
			f.set(record.Nationality, onlyHebrew(m[1]))
		}
	}
	// Read on every line, including after a nationality line.
	if m := match(reReligion, f.line); m != nil {
		f.set(record.Religion, f.tr.Translate(m[1]))
	}
}

func birthOffice(f *fold) {
	if f.has("הוצאה בלשכת") {
		if m := match(reIssuingOffice, f.line); m != nil {
			f.set(record.PlaceOfRegistration, strings.TrimSpace(m[1]))
		}
	}
}
