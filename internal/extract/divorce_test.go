package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

func TestDivorce_Reference(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract("מסי: 1125561", constants.DivorceCertificate)
	assert.Equal(t, "1125561", rec.Get(record.Reference))
}

func TestDivorce_TableColumnsAreWifeThenHusband(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"מסי ת. זהות 111111118 222222226",
		"תאריך לידה 01/02/1980 03/04/1978",
		"מקום מגורים בזמן הגירושין רחובות חיפה אשדוד חיפה",
	), constants.DivorceCertificate)

	wife, husband := rec.Person(constants.RoleWife), rec.Person(constants.RoleHusband)
	assert.Equal(t, "111111118", wife.Get(record.IDNumber))
	assert.Equal(t, "222222226", husband.Get(record.IDNumber))
	assert.Equal(t, "01/02/1980", wife.Get(record.DateOfBirth))
	assert.Equal(t, "03/04/1978", husband.Get(record.DateOfBirth))
	assert.Equal(t, "Rehovot Haifa", wife.Get(record.Address))
	assert.Equal(t, "Ashdod Haifa", husband.Get(record.Address))
}

func TestDivorce_DateOfBirthFromNextLine(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"תאריך לידה ה' בניסן תש\"מ",
		"05/06/1981 07/08/1979",
	), constants.DivorceCertificate)

	assert.Equal(t, "05/06/1981", rec.Person(constants.RoleWife).Get(record.DateOfBirth))
	assert.Equal(t, "07/08/1979", rec.Person(constants.RoleHusband).Get(record.DateOfBirth))
}

func TestDivorce_PersonContextFollowsMarkers(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"פרטי הבעל",
		"שם פרטי: משה",
		"פרטי האשה",
		"שם פרטי: רחל",
	), constants.DivorceCertificate)

	assert.Equal(t, "Moshe", rec.Person(constants.RoleHusband).Get(record.FirstName))
	assert.Equal(t, "Rachel", rec.Person(constants.RoleWife).Get(record.FirstName))
}

func TestDivorce_RegistrationAndStatus(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"בית הדין הרבני אזורי חיפה",
		"הגירושין נרשמו בספר (12/03/2020)",
		"סידורי גיטין, משה לוי, רחל כהן",
		"נחתם דיגיטלית 15/03/2020 בשעה 10 : 30",
	), constants.DivorceCertificate)

	husband, wife := rec.Person(constants.RoleHusband), rec.Person(constants.RoleWife)
	assert.Equal(t, haifaCourt, rec.Get(record.PlaceOfRegistration))
	assert.Equal(t, "12/03/2020", rec.Get(record.RegistrationDate))
	assert.Equal(t, "15/03/2020", rec.Get(record.DateIssued))
	assert.Equal(t, "10:30", rec.Get(record.IssueTime))
	assert.Equal(t, divorced, husband.Get(record.MaritalStatus))
	assert.Equal(t, divorced, wife.Get(record.MaritalStatus))
	assert.Equal(t, "Moshe", husband.Get(record.FirstName))
	assert.Equal(t, "Levi", husband.Get(record.FamilyName))
	assert.Equal(t, "Rachel", wife.Get(record.FirstName))
	assert.Equal(t, "Cohen", wife.Get(record.FamilyName))
}

func TestDivorce_Witnesses(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"עד א' | יעקב לוי",
		"עד ב' | משה בן דוד",
		"הגט נכתב ונמסר (02/03/2020)",
	), constants.DivorceCertificate)

	assert.Equal(t, witnessRole, rec.Get(record.Witness))
	assert.Equal(t, "משה בן דוד", rec.Get(record.WitnessB))
	assert.Equal(t, "02/03/2020", rec.Get(record.GetWrittenDate))

	rec = engine.Extract("עד ב' חתימה", constants.DivorceCertificate)
	assert.Equal(t, witnessBFallback, rec.Get(record.WitnessB))
}

func TestDivorce_Parties(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"השם המופיע בגט (אם שונה) יוסי",
		"משלח ידו: מורה",
	), constants.DivorceCertificate)

	husband, wife := rec.Person(constants.RoleHusband), rec.Person(constants.RoleWife)
	assert.Equal(t, "יוסי", husband.Get(record.Alias))
	assert.Equal(t, "Teacher", husband.Get(record.Occupation))
	assert.Empty(t, wife.Get(record.Alias))
	assert.Empty(t, wife.Get(record.Occupation))
	assert.Empty(t, rec.Get(record.Witness), "occupation line is not a witness line")

	rec = engine.Extract("השם המופיע בגט (אם שונה)", constants.DivorceCertificate)
	assert.False(t, rec.Person(constants.RoleHusband).Found(record.Alias))
}
