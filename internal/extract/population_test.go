package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

func TestPopulation_Fields(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"תמצית רישום ממרשם האוכלוסין",
		"לכבוד לוי",
		"שם המשפחה כהן",
		"שם האב יצחק",
		"שם האם 123456789 של האם שרה",
		"המין זכר",
		"המצב האישי נשוי",
		"ארץ הלידה אוסטריה",
		"הגריגוריאני 12 במאי 1980",
		"העברי כ\"ו באייר תש\"מ",
		"נפטר 3 בינואר 2015",
		"תאריך רישום כעולה/ישיבת קבע מאי 1990",
		"המען : חולון אוסישקין 12 ישראל",
		"ניתן בתאריך 5 במרץ 2020",
		"בלשכת רשות האוכלוסין וההגירה בחיפה",
		"מספר בקשה 7654321",
	), constants.PopulationRegistryCertificate)

	assert.Equal(t, "לוי", rec.Get(record.Lawyer))
	assert.Equal(t, "Cohen", rec.Get(record.FamilyName))
	assert.Equal(t, "יצחק", rec.Get(record.FathersName))
	assert.Equal(t, "123456789", rec.Get(record.IDNumber))
	assert.Equal(t, "שרה", rec.Get(record.MothersName))
	assert.Equal(t, "Male", rec.Get(record.Gender))
	assert.Equal(t, "נשוי", rec.Get(record.MaritalStatus))
	assert.Equal(t, "אוסטריה", rec.Get(record.CountryOfBirth))
	assert.Equal(t, "12 May 1980", rec.Get(record.DateOfBirth))
	assert.Equal(t, "כ\"ו באייר תש\"מ", rec.Get(record.DateOfBirthHebrew))
	assert.Equal(t, "3 January 2015", rec.Get(record.DateOfDeath))
	assert.Equal(t, "5 March 2020", rec.Get(record.DateIssued))
	assert.Equal(t, "Haifa", rec.Get(record.PlaceOfRegistration))
	assert.Equal(t, "May 1990", rec.Get(record.DateOfRegistration))
	assert.Equal(t, "May 1990", rec.Get(record.AliyahDate))
	assert.Equal(t, "Holon, אוסישקין 12, Israel", rec.Get(record.Address))
	assert.Equal(t, "7654321", rec.Get(record.Reference))
}

func TestPopulation_NationalityDefault(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract("שם המשפחה כהן", constants.PopulationRegistryCertificate)
	assert.Equal(t, defaultNationality, rec.Get(record.Nationality))
	assert.False(t, rec.Found(record.Nationality))

	rec = engine.Extract(lines("הלאום ערבי", "שם המשפחה כהן"), constants.PopulationRegistryCertificate)
	assert.Equal(t, "ערבי", rec.Get(record.Nationality))
	assert.True(t, rec.Found(record.Nationality))
}

func TestPopulation_LawyerFromNextLine(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines("לכבוד", "עו\"ד לוי"), constants.PopulationRegistryCertificate)
	assert.Equal(t, "עו\"ד לוי", rec.Get(record.Lawyer))
}

func TestPopulation_AddressEntryYearFromAdjacentLine(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines("תאריך הכניסה למען : 3 ביוני", "2011"), constants.PopulationRegistryCertificate)
	assert.Equal(t, "3 June 2011", rec.Get(record.AddressEntryDate))

	rec = engine.Extract("תאריך הכניסה למען : 3 ביוני", constants.PopulationRegistryCertificate)
	assert.Equal(t, "3 June", rec.Get(record.AddressEntryDate))
}

func TestPopulation_PreviousFamilyNameTwoLinesAhead(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"שמות משפחה קודמים",
		"שם תאריך",
		"לוי שינוי 4 באוגוסט 2005",
	), constants.PopulationRegistryCertificate)

	assert.Equal(t, "Levi (changed on 4 August 2005)", rec.Get(record.PreviousFamilyName))
}
