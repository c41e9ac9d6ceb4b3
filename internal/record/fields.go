package record

import "github.com/joseph-ayodele/certificate-extractor/constants"

// Field keys. Values are stored and emitted under exactly these names.
const (
	FirstName           = "firstname"
	FamilyName          = "familyname"
	FathersName         = "fathersname"
	MothersName         = "mothersname"
	GrandfatherName     = "grandfathername"
	Gender              = "gender"
	IDNumber            = "idnumber"
	PlaceOfBirth        = "placeofbirth"
	HospitalName        = "hospitalname"
	DateOfBirth         = "dateofbirth"
	CountryOfBirth      = "countryofbirth"
	DateOfRegistration  = "dateofregistration"
	RegistrationNumber  = "registrationnumber"
	AliyahDate          = "aliyahdate"
	Nationality         = "nationality"
	Religion            = "religion"
	DateOfDeath         = "dateofdeath"
	MaritalStatus       = "maritalstatus"
	PlaceOfRegistration = "placeofregistration"
	DateIssued          = "dateissued"
	Address             = "address"
	AddressEntryDate    = "addressentrydate"
	PreviousFamilyName  = "previousfamilyname"
	Reference           = "reference"
	CertNumber          = "certNumber"
	RegistrationDate    = "registrationdate"
	IssueTime           = "issuetime"
	Witness             = "witness"
	WitnessB            = "witnessB"
	WitnessOccupation   = "witnessOccupation"
	WitnessBOccupation  = "witnessBOccupation"

	WitnessLabel      = "witnessLabel"
	WitnessBLabel     = "witnessBLabel"
	GetWrittenDate    = "getWrittenDate"
	Lawyer            = "lawyer"
	DateOfBirthHebrew = "dateofbirth_hebrew"
	MotherFather      = "motherfather"
	Occupation        = "occupation"
	Alias             = "alias"
	Unknown           = "Unknown"
	FatherKey         = "father"
	MotherKey         = "mother"
)

var commonKeys = []string{
	FirstName, FamilyName, FathersName, MothersName, GrandfatherName, Gender,
	IDNumber, PlaceOfBirth, HospitalName, DateOfBirth, CountryOfBirth,
	DateOfRegistration, RegistrationNumber, AliyahDate, Nationality, Religion,
	DateOfDeath, MaritalStatus, PlaceOfRegistration, DateIssued, Address,
	AddressEntryDate, PreviousFamilyName, Reference, CertNumber, RegistrationDate,
	IssueTime, Witness, WitnessB, WitnessOccupation, WitnessBOccupation,
}

var templateKeys = map[constants.TemplateType][]string{
	constants.MarriageCertificate:           {WitnessLabel, WitnessBLabel},
	constants.DivorceCertificate:            {GetWrittenDate},
	constants.PopulationRegistryCertificate: {Lawyer, DateOfBirthHebrew},
	constants.BilingualBirthCertificate:     {MotherFather},
}

var personKeys = []string{
	Occupation, IDNumber, DateOfBirth, Address, MaritalStatus, Alias,
	FirstName, FamilyName, PreviousFamilyName, Religion, Nationality,
}

// Keys lists the top-level keys every record of template t carries.
func Keys(t constants.TemplateType) []string {
	out := append([]string{}, commonKeys...)
	return append(out, templateKeys[t]...)
}

// PersonKeys lists the scalar keys every person sub-record carries.
func PersonKeys() []string {
	return append([]string{}, personKeys...)
}
