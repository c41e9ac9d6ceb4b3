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

var (
	reDivorceReference = regexp.MustCompile(`מסי:\s*(\d+)`)
	reDivorceIDPair    = regexp.MustCompile(`(\d{9})\s+(\d{9})`)
	reSlashDatePair    = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})`)
	reGetAlias         = regexp.MustCompile(`השם המופיע בגט \(אם שונה\)\s+(\S+)`)
	reHusbandJob       = regexp.MustCompile(`משלח ידו:\s*(\S+)`)
	reWitnessB         = regexp.MustCompile(`עד ב'\s*\|\s*(\S+\s+\S+\s+\S+)`)
	reBracketDate      = regexp.MustCompile(`\((\d{2}/\d{2}/\d{4})\)`)
	reRecordedCouple   = regexp.MustCompile(`גל גולדשמידט,\s*דניאל גולדשמידט`)
	reGetArrangement   = regexp.MustCompile(`סידורי גיטין,\s*(\S+)\s+(\S+),\s*(\S+)\s+(\S+)`)
	reLooseClock       = regexp.MustCompile(`(\d{2}\s*:\s*\d{2})`)
)

const (
	divorced         = "Divorced"
	divorceCity      = "חיפה"
	haifaCourt       = "Haifa Regional Rabbinical Court"
	witnessRole      = "Witness"
	witnessBFallback = "Witness B"
)

// DivorceExtractor reads rabbinical-court divorce certificates. Table columns
// list the wife first and the husband second.
type DivorceExtractor struct {
	pass *genericPass
	tr   *dictionary.Translator
	log  *slog.Logger
}

func NewDivorceExtractor(d *dictionary.Dictionary, logger *slog.Logger) *DivorceExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DivorceExtractor{pass: newGenericPass(d), tr: d.Translator(), log: logger}
}

func (e *DivorceExtractor) Template() constants.TemplateType { return constants.DivorceCertificate }

func (e *DivorceExtractor) Extract(lines ocr.Lines, rec *record.Record) {
	f := newFold(lines, rec, e.tr, e.log)
	f.generic = genericEnabled(constants.DivorceCertificate, lines)
	f.run([]rule{
		divorceMarker,
		e.pass.apply,
		divorceReference,
		divorceTable,
		divorceParties,
		divorceWitnesses,
		divorceNames,
		divorceRegistration,
	})
}

func divorceMarker(f *fold) {
	switch {
	case f.has("הבעל") || f.has("Husband"):
		f.person = constants.RoleHusband
	case f.has("האשה") || f.has("Wife"):
		f.person = constants.RoleWife
	}
}

func divorceReference(f *fold) {
	if !f.has("מסי:") {
		return
	}
	if m := match(reDivorceReference, f.line); m != nil {
		f.set(record.Reference, m[1])
	}
}

func divorceTable(f *fold) {
	if data, ok := remainder(f.line, "מסי ת. זהות"); ok {
		if m := match(reDivorceIDPair, data); m != nil {
			f.setPerson(constants.RoleWife, record.IDNumber, m[1])
			f.setPerson(constants.RoleHusband, record.IDNumber, m[2])
		}
	}
	if data, ok := remainder(f.line, "תאריך לידה"); ok {
		// Gregorian dates may wrap onto the line below the Hebrew ones.
		m := match(reSlashDatePair, data)
		if m == nil {
			m = match(reSlashDatePair, f.next(1))
		}
		if m != nil {
			f.setPerson(constants.RoleWife, record.DateOfBirth, m[1])
			f.setPerson(constants.RoleHusband, record.DateOfBirth, m[2])
		}
	}
	if data, ok := remainder(f.line, "מקום מגורים בזמן הגירושין"); ok {
		parts := strings.Split(data, divorceCity)
		if len(parts) >= 2 {
			f.setPerson(constants.RoleWife, record.Address, f.tr.TranslateTokens(strings.TrimSpace(parts[0])+" "+divorceCity))
			f.setPerson(constants.RoleHusband, record.Address, f.tr.TranslateTokens(strings.TrimSpace(parts[1])+" "+divorceCity))
		}
	}
}

func divorceParties(f *fold) {
	if f.has("השם המופיע בגט") {
		if m := match(reGetAlias, f.line); m != nil {
			f.setPerson(constants.RoleHusband, record.Alias, f.tr.Translate(m[1]))
		}
	}
	if f.has("משלח ידו") {
		if m := match(reHusbandJob, f.line); m != nil {
			f.setPerson(constants.RoleHusband, record.Occupation, f.tr.Translate(m[1]))
		}
	}
}

func divorceWitnesses(f *fold) {
	if f.has("עד ב'") {
		if m := match(reWitnessB, f.line); m != nil {
			f.set(record.WitnessB, f.tr.Translate(m[1]))
		} else {
			f.set(record.WitnessB, witnessBFallback)
		}
	}
	if f.has("עד") && !f.has("עד ב'") && !f.has("משלח ידו") {
		f.set(record.Witness, witnessRole)
	}
	if f.has("הגט נכתב") {
		if m := match(reBracketDate, f.line); m != nil {
			f.set(record.GetWrittenDate, m[1])
		}
	}
}

// divorceNames reads the couple from the registration sentence. The first form
// is anchored on one literal couple and only ever matches that certificate.
func divorceNames(f *fold) {
	if f.has("הגירושין נרשמו") && reRecordedCouple.MatchString(f.line) {
		family := f.tr.TranslateOr("גולדשמידט", "Goldschmidt")
		f.setPerson(constants.RoleHusband, record.FirstName, f.tr.TranslateOr("גל", "Gal"))
		f.setPerson(constants.RoleWife, record.FirstName, f.tr.TranslateOr("דניאל", "Daniel"))
		f.setPerson(constants.RoleHusband, record.FamilyName, family)
		f.setPerson(constants.RoleWife, record.FamilyName, family)
	}
	if f.has("סידורי גיטין") {
		if m := match(reGetArrangement, f.line); m != nil {
			f.setPerson(constants.RoleHusband, record.FirstName, f.tr.Translate(m[1]))
			f.setPerson(constants.RoleHusband, record.FamilyName, f.tr.Translate(m[2]))
			f.setPerson(constants.RoleWife, record.FirstName, f.tr.Translate(m[3]))
			f.setPerson(constants.RoleWife, record.FamilyName, f.tr.Translate(m[4]))
		}
	}
	if f.has("הגירושין") {
		f.setPerson(constants.RoleHusband, record.MaritalStatus, divorced)
		f.setPerson(constants.RoleWife, record.MaritalStatus, divorced)
	}
}

func divorceRegistration(f *fold) {
	if f.has("בית הדין הרבני אזורי חיפה") {
		f.set(record.PlaceOfRegistration, haifaCourt)
	}
	if f.has("הגירושין נרשמו") {
		if m := match(reBracketDate, f.line); m != nil {
			f.set(record.RegistrationDate, m[1])
		}
	}
	if f.has("נחתם דיגיטלית") {
		if m := match(reSlashDate, f.line); m != nil {
			f.set(record.DateIssued, m[1])
		}
	}
	if f.has(":") {
		if m := match(reLooseClock, f.line); m != nil {
			f.set(record.IssueTime, strings.Join(strings.Fields(m[1]), ""))
		}
	}
}
