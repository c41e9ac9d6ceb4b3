package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

func TestMarriage_IDPair(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract("מספר הזהות 200376127 וה 204661722", constants.MarriageCertificate)
	assert.Equal(t, "200376127", rec.Person(constants.RoleGroom).Get(record.IDNumber))
	assert.Equal(t, "204661722", rec.Person(constants.RoleBride).Get(record.IDNumber))
}

func TestMarriage_DateOfBirthPair(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract("תאריך הלידה 08/01/1988 ו 10/11/1992", constants.MarriageCertificate)
	assert.Equal(t, "08/01/1988", rec.Person(constants.RoleGroom).Get(record.DateOfBirth))
	assert.Equal(t, "10/11/1992", rec.Person(constants.RoleBride).Get(record.DateOfBirth))
}

func TestMarriage_PersonContextFollowsMarkers(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"פרטי החתן",
		"שם פרטי: דוד",
		"פרטי הכלה",
		"שם פרטי: שרה",
	), constants.MarriageCertificate)

	assert.Equal(t, "David", rec.Person(constants.RoleGroom).Get(record.FirstName))
	assert.Equal(t, "Sarah", rec.Person(constants.RoleBride).Get(record.FirstName))
	assert.Empty(t, rec.Get(record.FirstName))
	assert.Equal(t, married, rec.Person(constants.RoleGroom).Get(record.MaritalStatus))
	assert.Equal(t, married, rec.Person(constants.RoleBride).Get(record.MaritalStatus))
}

func TestMarriage_TableParslets(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"השמות הפרטיים דוד שרה",
		"מקום המגורים חולון נתניה",
		"האב - שם פרטי ושם משפחה משה לוי יעקב",
		"משלח היד של האם מורה ' סטודנטית",
	), constants.MarriageCertificate)

	groom, bride := rec.Person(constants.RoleGroom), rec.Person(constants.RoleBride)
	require.NotNil(t, groom)
	require.NotNil(t, bride)

	assert.Equal(t, "David", groom.Get(record.FirstName))
	assert.Equal(t, "Sarah", bride.Get(record.FirstName))
	assert.Equal(t, "Holon", groom.Get(record.Address))
	assert.Equal(t, "Netanya", bride.Get(record.Address))
	assert.Equal(t, "משה", groom.Father.FirstName)
	assert.Equal(t, "לוי", groom.Father.FamilyName)
	assert.Equal(t, "יעקב", bride.Father.FirstName)
	assert.Equal(t, "Teacher", groom.Mother.Occupation)
	assert.Equal(t, "Student", bride.Mother.Occupation)
}

func TestMarriage_ParentOccupationKeepsPartyOccupation(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"משלח היד מהנדס מורה בכירה",
		"משלח היד של האב שכיר",
	), constants.MarriageCertificate)

	groom, bride := rec.Person(constants.RoleGroom), rec.Person(constants.RoleBride)
	assert.Equal(t, "Engineer", groom.Get(record.Occupation))
	assert.Equal(t, "מורה בכירה", bride.Get(record.Occupation))
	assert.Equal(t, "Employee", groom.Father.Occupation)
}

func TestMarriage_WitnessBlockReadsFixedOffsets(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"פרטי העדים עד-א עד-ב",
		"שם פרטי ושם משפחה משה לוי . יעקב כהן",
		"משלח היד מורה מהנדס",
	), constants.MarriageCertificate)

	assert.Equal(t, "עד-א", rec.Get(record.WitnessLabel))
	assert.Equal(t, "עד-ב", rec.Get(record.WitnessBLabel))
	assert.Equal(t, "משה לוי", rec.Get(record.Witness))
	assert.Equal(t, "יעקב כהן", rec.Get(record.WitnessB))
	assert.Equal(t, "Teacher", rec.Get(record.WitnessOccupation))
	assert.Equal(t, "Engineer", rec.Get(record.WitnessBOccupation))
}

func TestMarriage_RegistrationLines(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"תעודת נישואין: 48213",
		"תאריך לועזי: 14/06/2015",
		"תאריך הדפסה 20/06/2015 11:42",
		"מספר מועצה: 3301",
	), constants.MarriageCertificate)

	assert.Equal(t, "48213", rec.Get(record.CertNumber))
	assert.Equal(t, "14/06/2015", rec.Get(record.RegistrationDate))
	assert.Equal(t, "20/06/2015", rec.Get(record.DateIssued))
	assert.Equal(t, "11:42", rec.Get(record.IssueTime))
	assert.Equal(t, "3301", rec.Get(record.Reference))
}

func TestShadowed(t *testing.T) {
	table := []string{"משלח היד", "משלח היד של האב"}

	assert.True(t, shadowed("משלח היד של האב שכיר", "משלח היד", table))
	assert.False(t, shadowed("משלח היד שכיר מורה", "משלח היד", table))
	assert.False(t, shadowed("משלח היד של האב שכיר", "משלח היד של האב", table))
	assert.False(t, shadowed("אין כאן תווית", "משלח היד", table))
}
