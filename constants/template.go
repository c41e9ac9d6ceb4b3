package constants

import (
	"strings"
)

// TemplateType identifies the layout family of a certificate.
type TemplateType string

const (
	BirthCertificate              TemplateType = "birth_certificate"
	BilingualBirthCertificate     TemplateType = "bilingual_birth_certificate"
	MarriageCertificate           TemplateType = "marriage_certificate"
	DivorceCertificate            TemplateType = "divorce_certificate"
	PopulationRegistryCertificate TemplateType = "population_registry_certificate"

	// TemplateAuto asks the caller to detect the template from the text.
	TemplateAuto TemplateType = "auto"
)

var allTemplates = []TemplateType{
	BirthCertificate,
	BilingualBirthCertificate,
	MarriageCertificate,
	DivorceCertificate,
	PopulationRegistryCertificate,
}

// AllTemplates returns the closed set of known templates.
func AllTemplates() []TemplateType {
	out := make([]TemplateType, len(allTemplates))
	copy(out, allTemplates)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allTemplates))
	for i, t := range allTemplates {
		result[i] = string(t)
	}
	return result
}

// Known reports whether t is one of the closed set.
func (t TemplateType) Known() bool {
	for _, k := range allTemplates {
		if t == k {
			return true
		}
	}
	return false
}

func Canonicalize(input string) (TemplateType, bool) {
	if input == "" {
		return BirthCertificate, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	synonyms := map[string]TemplateType{
		"birth":               BirthCertificate,
		"teudat_leida":        BirthCertificate,
		"bilingual":           BilingualBirthCertificate,
		"bilingual_birth":     BilingualBirthCertificate,
		"english_birth":       BilingualBirthCertificate,
		"marriage":            MarriageCertificate,
		"nisuin":              MarriageCertificate,
		"divorce":             DivorceCertificate,
		"get":                 DivorceCertificate,
		"population":          PopulationRegistryCertificate,
		"population_registry": PopulationRegistryCertificate,
		"registry_extract":    PopulationRegistryCertificate,
		"auto":                TemplateAuto,
		"detect":              TemplateAuto,
	}

	if t, ok := synonyms[normalized]; ok {
		return t, true
	}

	for _, t := range allTemplates {
		if normalized == string(t) {
			return t, true
		}
	}

	return BirthCertificate, false
}

// Role names a person-scoped sub-record inside a certificate.
type Role string

const (
	RoleNone    Role = ""
	RoleGroom   Role = "groom"
	RoleBride   Role = "bride"
	RoleHusband Role = "husband"
	RoleWife    Role = "wife"
)

// Roles returns the person sub-records a template always carries, in output order.
func Roles(t TemplateType) []Role {
	switch t {
	case MarriageCertificate:
		return []Role{RoleGroom, RoleBride}
	case DivorceCertificate:
		return []Role{RoleHusband, RoleWife}
	default:
		return nil
	}
}
