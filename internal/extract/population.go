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
	populationFixups = strings.NewReplacer(
		"שלהאב", "שם האב",
		"להודי", "יהודי",
		"שלהאם", "שם האם",
		"המשפתה", "המשפחה",
	)

	rePopFamily       = regexp.MustCompile(`(?i)שם המשפחה\s*(\S+)`)
	rePopFirst        = regexp.MustCompile(`(?i) השם הפרטי\s*(\S+)`)
	rePopLawyer       = regexp.MustCompile(`(?i)לכבוד\s*(\S+)`)
	rePopFather       = regexp.MustCompile(`שם האב\s+(\S+)`)
	rePopMotherField  = regexp.MustCompile(`שם האם\s*(\S+)`)
	rePopIDDigits     = regexp.MustCompile(`\d{6,9}(?:\s*\d)?`)
	rePopMother       = regexp.MustCompile(`של האם\s*(\S+)`)
	rePopGender       = regexp.MustCompile(`(?i)המין\s*(נקבה|זכר)`)
	rePopStatus       = regexp.MustCompile(`המצב האישי\s*(\S+)`)
	rePopCountry      = regexp.MustCompile(`ארץ הלידה\s*(\S+)`)
	reGregorianDOB    = regexp.MustCompile(`הגריגוריאני\s*(\d{1,2})\s*ב(\S+)\s*(\d{4})`)
	reHebrewDOB       = regexp.MustCompile(`העברי\s*(\S+\s+\S+\s+\S+)`)
	rePopRegistration = regexp.MustCompile(`תאריך רישום\s*כעולה/ישיבת קבע\s*(\S+)\s*(\d{4})`)
	reNationality     = regexp.MustCompile(`(?i)הלאום\s*[:\-]?\s*(\S+)`)
	rePopDeath        = regexp.MustCompile(`נפטר\s*(\d{1,2})\s*ב(\S+)\s*(\d{4})`)
	rePopAddress      = regexp.MustCompile(`המען\s*:\s*(.+)`)
	rePopAddressEntry = regexp.MustCompile(`תאריך הכניסה למען\s*:\s*(\d{1,2})\s*ב(\S+)`)
	reYear            = regexp.MustCompile(`(\d{4})`)
	rePopPreviousName = regexp.MustCompile(`(\S+)\s+שינוי\s+(\d{1,2})\s+ב(\S+)\s+(\d{4})`)
	reHebrewDate      = regexp.MustCompile(`(\d{1,2})\s*ב(\S+)\s*(\d{4})`)
	rePopOffice       = regexp.MustCompile(`בלשכת רשות האוכלוסין וההגירה ב(.+)`)
)

// defaultNationality is written when no nationality line is found.
const defaultNationality = "יהודי"

// PopulationExtractor reads population-registry extracts. The record is flat.
type PopulationExtractor struct {
	pass *genericPass
	tr   *dictionary.Translator
	log  *slog.Logger
}

func NewPopulationExtractor(d *dictionary.Dictionary, logger *slog.Logger) *PopulationExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PopulationExtractor{pass: newGenericPass(d), tr: d.Translator(), log: logger}
}

func (e *PopulationExtractor) Template() constants.TemplateType {
	return constants.PopulationRegistryCertificate
}

func (e *PopulationExtractor) Extract(lines ocr.Lines, rec *record.Record) {
	f := newFold(lines, rec, e.tr, e.log)
	f.generic = genericEnabled(constants.PopulationRegistryCertificate, lines)
	f.run([]rule{
		e.pass.apply,
		populationFixup,
		populationNames,
		populationLawyer,
		populationParents,
		populationPersonal,
		populationDates,
		populationAddress,
		populationIssue,
		referenceRule,
	})
	if rec.Get(record.Nationality) == "" {
		rec.Fill(record.Nationality, defaultNationality)
	}
}

// populationFixup repairs misreads seen only on registry extracts. It runs after
// the dictionary pass and changes the line for every later rule.
func populationFixup(f *fold) {
	f.line = populationFixups.Replace(f.line)
}

func populationNames(f *fold) {
	if f.has("שם המשפחה") {
		if m := match(rePopFamily, f.line); m != nil {
			f.set(record.FamilyName, f.tr.Translate(m[1]))
		}
	}
	if f.has(" השם הפרטי ") {
		if m := match(rePopFirst, f.line); m != nil {
			f.set(record.FirstName, f.tr.Translate(m[1]))
		}
	}
}

func populationLawyer(f *fold) {
	if !f.has("לכבוד") {
		return
	}
	if m := match(rePopLawyer, f.line); m != nil {
		f.set(record.Lawyer, m[1])
	} else if next := f.next(1); next != "" && !strings.Contains(next, "לכבוד") {
		f.set(record.Lawyer, next)
	}
}

// populationParents reads the parents' names. The mother's column shares a line
// with the ID number, which is pulled out of the mother's-name capture.
func populationParents(f *fold) {
	if f.has("שם האב") {
		if m := match(rePopFather, f.line); m != nil {
			f.set(record.FathersName, m[1])
		}
	}
	if !f.has("של האם") {
		return
	}
	if m := match(rePopMotherField, f.line); m != nil {
		if ids := rePopIDDigits.FindAllString(m[1], -1); len(ids) > 0 {
			f.set(record.IDNumber, strings.Join(strings.Fields(ids[len(ids)-1]), ""))
		}
	} else if next := f.next(1); next != "" && !strings.Contains(next, "שם") {
		f.set(record.IDNumber, f.tr.Translate(next))
	}
	if m := match(rePopMother, f.line); m != nil {
		f.set(record.MothersName, m[1])
	} else if next := f.next(1); next != "" && !strings.Contains(next, "שם") {
		f.set(record.MothersName, f.tr.Translate(next))
	}
}

func populationPersonal(f *fold) {
	if f.has("המין") {
		if m := match(rePopGender, f.line); m != nil {
			f.set(record.Gender, f.tr.Translate(m[1]))
		}
	}
	if f.has("המצב האישי") {
		if m := match(rePopStatus, f.line); m != nil {
			f.set(record.MaritalStatus, m[1])
		}
	}
	if f.has("ארץ הלידה") {
		if m := match(rePopCountry, f.line); m != nil {
			f.set(record.CountryOfBirth, m[1])
		}
	}
	if f.has("הלאום") {
		if m := match(reNationality, f.line); m != nil {
			f.set(record.Nationality, m[1])
		}
	}
}

func populationDates(f *fold) {
	if f.has("הגריגוריאני") {
		// The value usually wraps onto the next line.
		for _, candidate := range []string{f.next(1), f.line} {
			if m := match(reGregorianDOB, candidate); m != nil {
				f.set(record.DateOfBirth, fmt.Sprintf("%s %s %s", m[1], f.tr.Month(m[2]), m[3]))
				break
			}
		}
		for _, candidate := range []string{f.next(1), f.line} {
			if m := match(reHebrewDOB, candidate); m != nil {
				f.set(record.DateOfBirthHebrew, strings.TrimSpace(m[1]))
				break
			}
		}
	}
	if f.has("תאריך רישום") {
		if m := match(rePopRegistration, f.line); m != nil {
			date := f.tr.Month(m[1]) + " " + m[2]
			f.set(record.DateOfRegistration, date)
			f.set(record.AliyahDate, date)
		}
	}
	if f.has("נפטר") {
		if m := match(rePopDeath, f.line); m != nil {
			f.set(record.DateOfDeath, fmt.Sprintf("%s %s %s", m[1], f.tr.Month(m[2]), m[3]))
		}
	}
}

func populationAddress(f *fold) {
	if f.has("המען") {
		if m := match(rePopAddress, f.line); m != nil {
			address := strings.TrimSpace(m[1])
			if parts := strings.Fields(address); len(parts) >= 4 {
				address = fmt.Sprintf("%s, %s %s, %s", f.tr.Translate(parts[0]), parts[1], parts[2], f.tr.Translate(parts[3]))
			}
			f.set(record.Address, address)
		}
	}
	if f.has("תאריך הכניסה למען") {
		if m := match(rePopAddressEntry, f.line); m != nil {
			year := ""
			if y := match(reYear, f.next(1)); y != nil {
				year = y[1]
			} else if y := match(reYear, f.next(-1)); y != nil {
				year = y[1]
			}
			f.set(record.AddressEntryDate, strings.TrimSpace(fmt.Sprintf("%s %s %s", m[1], f.tr.Month(m[2]), year)))
		}
	}
	if f.has("שמות משפחה קודמים") {
		if m := match(rePopPreviousName, f.next(2)); m != nil {
			f.set(record.PreviousFamilyName, fmt.Sprintf("%s (changed on %s %s %s)",
				f.tr.Translate(m[1]), m[2], f.tr.Month(m[3]), m[4]))
		}
	}
}

func populationIssue(f *fold) {
	if f.has("בתאריך") {
		if m := match(reHebrewDate, f.line); m != nil {
			f.set(record.DateIssued, fmt.Sprintf("%s %s %s", m[1], f.tr.Month(m[2]), m[3]))
		}
	}
	if f.has("בלשכת רשות האוכלוסין") {
		if m := match(rePopOffice, f.line); m != nil {
			f.set(record.PlaceOfRegistration, f.tr.Translate(strings.TrimSpace(m[1])))
		}
	}
}
