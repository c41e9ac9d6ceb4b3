package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

func TestBirth_Fields(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"שם פרטי: דוד",
		"המין זכר מספר הזהות 234567891",
		"שם הישוב ירושלים שם בית החולים הדסה 12",
		"תאריך הלידה",
		"הגריגוריאני 5 בינואר 1990",
		"הדת יהודי",
		"הוצאה בלשכת חיפה",
	), constants.BirthCertificate)

	assert.Equal(t, "David", rec.Get(record.FirstName))
	assert.Equal(t, "Male", rec.Get(record.Gender))
	assert.Equal(t, "345678912", rec.Get(record.IDNumber))
	assert.Equal(t, "ירושלים", rec.Get(record.PlaceOfBirth))
	assert.Equal(t, "הדסה", rec.Get(record.HospitalName))
	assert.Equal(t, "5 January 1990", rec.Get(record.DateOfBirth))
	assert.Equal(t, "Jewish", rec.Get(record.Religion))
	assert.Equal(t, "חיפה", rec.Get(record.PlaceOfRegistration))
	assert.Equal(t, defaultNationality, rec.Get(record.Nationality))
	assert.False(t, rec.Found(record.Nationality))
}

func TestBirth_ReligionAfterNationality(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines(
		"שם פרטי: דוד",
		"הלאום: יהודי",
		"הדת יהודי ירושלים",
	), constants.BirthCertificate)

	assert.True(t, rec.Found(record.Nationality))
	assert.Equal(t, "Jewish", rec.Get(record.Religion))
}

func TestBirth_KeepsFirstFamilyName(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines("שם המשפחה: כהן", "שם המשפחה: לוי"), constants.BirthCertificate)
	assert.Equal(t, "כהן", rec.Get(record.FamilyName))
}

func TestRotateID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"234567891", "345678912"},
		{"12345678", "23456781"},
		{"12 34", "2341"},
		{"7", "7"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rotateID(tt.in), tt.in)
	}
}
