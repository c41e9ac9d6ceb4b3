package ocr

import "github.com/joseph-ayodele/certificate-extractor/constants"

// Marker substrings of the English column on bilingual birth certificates.
var BilingualMarkers = []string{"Surname", "Given name"}

// DetectTemplate guesses the certificate layout from marker phrases. Text with no
// recognizable marker is treated as a birth certificate.
func DetectTemplate(lines Lines) constants.TemplateType {
	switch {
	case lines.ContainsAny(BilingualMarkers...):
		return constants.BilingualBirthCertificate
	case lines.ContainsAny("נישואין", "Groom", "Bride"):
		return constants.MarriageCertificate
	case lines.ContainsAny("גירושין", "הגט", "גיטין"):
		return constants.DivorceCertificate
	case lines.ContainsAny("תמצית רישום", "מרשם האוכלוסין", "כעולה", "המען"):
		return constants.PopulationRegistryCertificate
	default:
		return constants.BirthCertificate
	}
}
