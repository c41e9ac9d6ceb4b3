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
	reTokenPair        = regexp.MustCompile(`(\S+)\s+(\S+)`)
	reMarriageIDPair   = regexp.MustCompile(`(\d{9})\s*(?:וה|\s+)\s*(\d{9})`)
	reMarriageDOBPair  = regexp.MustCompile(`.*?(\d{2}/\d{2}/\d{4})\s+.*?(?:\S+\s+)?(\d{2}/\d{2}/\d{4})`)
	reHeadAndRest      = regexp.MustCompile(`(.+?)\s+(.+)`)
	reOccupationPair   = regexp.MustCompile(`(\S+)\s+(\S+\s+\S+)`)
	reFatherNames      = regexp.MustCompile(`([` + hebrew + `]+(?:\s+[` + hebrew + `]+)?)\s+([` + hebrew + `]+)`)
	reMotherNames      = regexp.MustCompile(`([` + hebrew + `]+)\s+([` + hebrew + `]+)`)
	reParentAddresses  = regexp.MustCompile(`(.+?\d+\s+\S+)\s+(.+)`)
	reFirstToken       = regexp.MustCompile(`(\S+)`)
	reApostropheSplit  = regexp.MustCompile(`(.+?)\s*['‘]\s*(.+)`)
	reNameSeparators   = regexp.MustCompile(`[|:\-]`)
	reHeaderSeparators = regexp.MustCompile(`[|.\-:\\]`)
	reSpaces           = regexp.MustCompile(`\s+`)

	reGroomFamily      = regexp.MustCompile(`(?i)(שם המשפחה\s+הבעל|הבעל\s+שם המשפחה|Groom\s+Family Name|Family Name\s+Groom)\s+([` + hebrew + `]+)`)
	reGroomFamilyLoose = regexp.MustCompile(`הבעל\s+([` + hebrew + `]+)`)
	reBrideFamily      = regexp.MustCompile(`(?i)(שם המשפחה\s+האישה|האישה\s+שם המשפחה|Bride\s+Family Name|Family Name\s+Bride)\s+([` + hebrew + `]+)`)
	reBrideFamilyLoose = regexp.MustCompile(`האישה\s+([` + hebrew + `]+)`)
	reGroomFirst       = regexp.MustCompile(`(?i)(השם הפרטי\s+הבעל|הבעל\s+השם הפרטי|Groom\s+First Name|First Name\s+Groom)\s+([` + hebrew + `]+)`)
	reBrideFirst       = regexp.MustCompile(`(?i)(השם הפרטי\s+האישה|האישה\s+השם הפרטי|Bride\s+First Name|First Name\s+Bride)\s+([` + hebrew + `]+)`)

	reMarriageCert  = regexp.MustCompile(`(?i)תעודת\s+נישואין\s*[:\-]?\s*(\d+)`)
	reWitnessLabels = regexp.MustCompile(`פרטי העדים\s+(\S+)\s+(\S+)`)
	reWitnessNames  = regexp.MustCompile(`שם פרטי ושם משפחה\s+(.+?)\s*\.\s*(.+)`)
	reWitnessJobs   = regexp.MustCompile(`משלח היד\s+(.+?)\s+(.+)`)
	reHeldAt        = regexp.MustCompile(`נערכו ב(\S+\s+\S+)`)
	reForeignDate   = regexp.MustCompile(`תאריך לועזי:\s*(\d{2}/\d{2}/\d{4})`)
	reRegisteredAt  = regexp.MustCompile(`נרשמו ב(.+)`)
	reSlashDate     = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	reClockTime     = regexp.MustCompile(`(\d{2}:\d{2})`)
	reCaseFile      = regexp.MustCompile(`מספר תיק:\s*(\S+)`)
	reCouncilNumber = regexp.MustCompile(`מספר מועצה:\s*(\d+)`)
)

const married = "Married"

type parslet struct {
	label string
	parse func(f *fold, data string)
}

// MarriageExtractor reads two-column marriage certificates: groom on one side,
// bride on the other.
type MarriageExtractor struct {
	pass   *genericPass
	tr     *dictionary.Translator
	log    *slog.Logger
	table  []parslet
	labels []string
}

func NewMarriageExtractor(d *dictionary.Dictionary, logger *slog.Logger) *MarriageExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &MarriageExtractor{pass: newGenericPass(d), tr: d.Translator(), log: logger}
	e.table = []parslet{
		{"השמות הפרטיים", pairTo(record.FirstName, reTokenPair)},
		{"שם המשפחה לפני הנישואין", pairTo(record.PreviousFamilyName, reTokenPair)},
		{"מספר הזהות", parseMarriageIDs},
		{"תאריך הלידה", parseMarriageDOBs},
		{"יוחסין", pairTo(record.Religion, reTokenPair)},
		{"מקום המגורים", parseMarriageAddresses},
		{"משלח היד", pairTo(record.Occupation, reOccupationPair)},
		{"האב - שם פרטי ושם משפחה", parseFatherNames},
		{"האב - שם פרטי ומשפחה", parseFatherNames},
		{"האם - שם פרטי ושם משפחה", parseMotherNames},
		{"האם - שם פרטי ומשפחה", parseMotherNames},
		{"מקום מגורי האב", parseParentAddresses(func(p *record.Person) *record.Parent { return &p.Father })},
		{"מקום מגורי האם", parseParentAddresses(func(p *record.Person) *record.Parent { return &p.Mother })},
		{"משלח היד של האב", parseFatherOccupation},
		{"משלח היד של האם", parseMotherOccupations},
	}
	for _, p := range e.table {
		e.labels = append(e.labels, p.label)
	}
	return e
}

func (e *MarriageExtractor) Template() constants.TemplateType { return constants.MarriageCertificate }

func (e *MarriageExtractor) Extract(lines ocr.Lines, rec *record.Record) {
	f := newFold(lines, rec, e.tr, e.log)
	f.generic = genericEnabled(constants.MarriageCertificate, lines)
	f.run([]rule{
		marriageMarker,
		marriageHeader,
		marriageCertNumber,
		e.tableRow,
		witnessBlock,
		marriagePlaceAndDates,
		marriedBoth,
		e.pass.apply,
	})
}

func marriageMarker(f *fold) {
	switch {
	case f.has("חתן") || f.has("Groom"):
		f.person = constants.RoleGroom
	case f.has("כלה") || f.has("Bride"):
		f.person = constants.RoleBride
	}
}

// marriageHeader reads names printed in the personal-details header, where
// the party is named by its role word rather than by column.
func marriageHeader(f *fold) {
	if !(f.has("פרטים אישיים") || f.has("הבעל") || f.has("האישה") ||
		f.has("Personal Details") || f.has("Groom") || f.has("Bride")) {
		return
	}
	cleaned := strings.TrimSpace(reSpaces.ReplaceAllString(reHeaderSeparators.ReplaceAllString(f.line, " "), " "))

	m := match(reGroomFamily, cleaned)
	if m == nil {
		m = match(reGroomFamilyLoose, cleaned)
	}
	if m != nil {
		f.setPerson(constants.RoleGroom, record.PreviousFamilyName, strings.TrimSpace(m[len(m)-1]))
	}
	m = match(reBrideFamily, cleaned)
	if m == nil {
		m = match(reBrideFamilyLoose, cleaned)
	}
	if m != nil {
		f.setPerson(constants.RoleBride, record.PreviousFamilyName, strings.TrimSpace(m[len(m)-1]))
	}
	if m := match(reGroomFirst, cleaned); m != nil {
		f.setPerson(constants.RoleGroom, record.FirstName, strings.TrimSpace(m[2]))
	}
	if m := match(reBrideFirst, cleaned); m != nil {
		f.setPerson(constants.RoleBride, record.FirstName, strings.TrimSpace(m[2]))
	}
}

func marriageCertNumber(f *fold) {
	if !f.has("תעודת נישואין") {
		return
	}
	if m := match(reMarriageCert, f.line); m != nil {
		f.set(record.CertNumber, m[1])
	}
}

// tableRow applies every table parslet whose label appears on the line. A label
// that is only the prefix of a longer label at the same spot is skipped.
func (e *MarriageExtractor) tableRow(f *fold) {
	for _, p := range e.table {
		if !f.has(p.label) || shadowed(f.line, p.label, e.labels) {
			continue
		}
		data, ok := remainder(f.line, p.label)
		if !ok {
			continue
		}
		p.parse(f, data)
	}
}

// pairTo writes the two captures of re, translated, to the groom and bride.
func pairTo(key string, re *regexp.Regexp) func(f *fold, data string) {
	return func(f *fold, data string) {
		m := match(re, data)
		if m == nil {
			f.log.Debug("extract.parslet.miss", "field", key, "data", data)
			return
		}
		f.setPerson(constants.RoleGroom, key, f.tr.Translate(m[1]))
		f.setPerson(constants.RoleBride, key, f.tr.Translate(m[2]))
	}
}

func parseMarriageIDs(f *fold, data string) {
	if m := match(reMarriageIDPair, data); m != nil {
		f.setPerson(constants.RoleGroom, record.IDNumber, m[1])
		f.setPerson(constants.RoleBride, record.IDNumber, m[2])
	}
}

func parseMarriageDOBs(f *fold, data string) {
	m := match(reMarriageDOBPair, data)
	if m == nil {
		f.log.Debug("extract.parslet.miss", "field", record.DateOfBirth, "data", data)
		return
	}
	f.setPerson(constants.RoleGroom, record.DateOfBirth, m[1])
	f.setPerson(constants.RoleBride, record.DateOfBirth, m[2])
}

func parseMarriageAddresses(f *fold, data string) {
	if m := match(reHeadAndRest, data); m != nil {
		f.setPerson(constants.RoleGroom, record.Address, f.tr.TranslateTokens(m[1]))
		f.setPerson(constants.RoleBride, record.Address, f.tr.TranslateTokens(m[2]))
	}
}

func cleanNames(data string) string {
	data = reNameSeparators.ReplaceAllString(data, " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(data, " "))
}

// parseFatherNames reads "<groom father, one or two words> <bride father>". A
// second groom-side word is taken as the family name.
func parseFatherNames(f *fold, data string) {
	m := match(reFatherNames, cleanNames(data))
	if m == nil {
		f.log.Debug("extract.parslet.miss", "field", "father", "data", data)
		return
	}
	groom, bride := f.rec.Person(constants.RoleGroom), f.rec.Person(constants.RoleBride)
	parts := strings.Fields(m[1])
	groom.Father.FirstName = parts[0]
	if len(parts) > 1 {
		groom.Father.FamilyName = parts[1]
	}
	bride.Father.FirstName = m[2]
}

func parseMotherNames(f *fold, data string) {
	m := match(reMotherNames, cleanNames(data))
	if m == nil {
		f.log.Debug("extract.parslet.miss", "field", "mother", "data", data)
		return
	}
	f.rec.Person(constants.RoleGroom).Mother.FirstName = m[1]
	f.rec.Person(constants.RoleBride).Mother.FirstName = m[2]
}

// parseParentAddresses splits after the first "... <number> <word>" group.
func parseParentAddresses(parent func(*record.Person) *record.Parent) func(f *fold, data string) {
	return func(f *fold, data string) {
		m := match(reParentAddresses, data)
		if m == nil {
			f.log.Debug("extract.parslet.miss", "field", "parent_address", "data", data)
			return
		}
		parent(f.rec.Person(constants.RoleGroom)).Address = f.tr.TranslateTokens(strings.TrimSpace(m[1]))
		parent(f.rec.Person(constants.RoleBride)).Address = f.tr.TranslateTokens(strings.TrimSpace(m[2]))
	}
}

func parseFatherOccupation(f *fold, data string) {
	if m := match(reFirstToken, data); m != nil {
		f.rec.Person(constants.RoleGroom).Father.Occupation = f.tr.Translate(m[1])
	}
}

// parseMotherOccupations splits on the apostrophe OCR leaves between columns.
func parseMotherOccupations(f *fold, data string) {
	m := match(reApostropheSplit, data)
	if m == nil {
		f.log.Debug("extract.parslet.miss", "field", "mother_occupation", "data", data)
		return
	}
	f.rec.Person(constants.RoleGroom).Mother.Occupation = f.tr.Translate(strings.TrimSpace(m[1]))
	f.rec.Person(constants.RoleBride).Mother.Occupation = f.tr.Translate(strings.TrimSpace(m[2]))
}

// witnessBlock reads the witness table. The layout is fixed: labels on the
// trigger line, names on the next line, occupations on the one after.
func witnessBlock(f *fold) {
	if !f.has("פרטי העדים") {
		return
	}
	if m := match(reWitnessLabels, f.line); m != nil {
		f.set(record.WitnessLabel, m[1])
		f.set(record.WitnessBLabel, m[2])
	}
	if m := match(reWitnessNames, f.next(1)); m != nil {
		f.set(record.Witness, f.tr.Translate(strings.TrimSpace(m[1])))
		f.set(record.WitnessB, f.tr.Translate(strings.TrimSpace(m[2])))
	}
	if m := match(reWitnessJobs, f.next(2)); m != nil {
		f.set(record.WitnessOccupation, f.tr.Translate(strings.TrimSpace(m[1])))
		f.set(record.WitnessBOccupation, f.tr.Translate(strings.TrimSpace(m[2])))
	}
}

func marriagePlaceAndDates(f *fold) {
	if f.has("נערכו ב") {
		if m := match(reHeldAt, f.line); m != nil {
			f.set(record.PlaceOfRegistration, f.tr.TranslateTokens(m[1]))
		}
	}
	if f.has("תאריך לועזי") {
		if m := match(reForeignDate, f.line); m != nil {
			f.set(record.RegistrationDate, m[1])
		}
	}
	if f.has("נרשמו ב") {
		if m := match(reRegisteredAt, f.line); m != nil {
			f.set(record.PlaceOfRegistration, f.tr.TranslateTokens(m[1]))
		}
	}
	if f.has("תאריך הדפסה") {
		if m := match(reSlashDate, f.line); m != nil {
			f.set(record.DateIssued, m[1])
		}
		if m := match(reClockTime, f.line); m != nil {
			f.set(record.IssueTime, m[1])
		}
	}
	if f.has("מספר תיק") {
		if m := match(reCaseFile, f.line); m != nil {
			f.set(record.CertNumber, m[1])
		}
	}
	if f.has("מספר מועצה") {
		if m := match(reCouncilNumber, f.line); m != nil {
			f.set(record.Reference, m[1])
		}
	}
}

func marriedBoth(f *fold) {
	f.rec.Person(constants.RoleGroom).Set(record.MaritalStatus, married)
	f.rec.Person(constants.RoleBride).Set(record.MaritalStatus, married)
}
