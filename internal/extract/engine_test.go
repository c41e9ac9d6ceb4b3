package extract

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	d, err := dictionary.Load("")
	require.NoError(t, err)
	return NewEngine(d, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func lines(ls ...string) string { return strings.Join(ls, "\n") }

func TestEngine_EmptyInputCarriesEveryKey(t *testing.T) {
	engine := newTestEngine(t)

	for _, tmpl := range constants.AllTemplates() {
		t.Run(string(tmpl), func(t *testing.T) {
			rec := engine.Extract("", tmpl)
			require.NotNil(t, rec)
			assert.Equal(t, tmpl, rec.Template)

			m := rec.Map()
			for _, k := range record.Keys(tmpl) {
				assert.Contains(t, m, k)
			}
			for _, role := range constants.Roles(tmpl) {
				require.NotNil(t, rec.Person(role), "person %s", role)
				assert.Contains(t, m, string(role))
			}
			assert.Equal(t, record.Unknown, rec.Get(record.Reference))
			assert.Equal(t, record.Unknown, rec.Get(record.CertNumber))
			assert.NoError(t, record.Validate(rec))
		})
	}
}

func TestEngine_GarbledInputStaysWellShaped(t *testing.T) {
	engine := newTestEngine(t)
	garbage := lines("\u200f|||:::", "מסי ת. זהות", "תאריך לידה", "12/12", "שמות משפחה קודמים", "\ufeff\t\t  ", "Identity number")

	for _, tmpl := range constants.AllTemplates() {
		rec := engine.Extract(garbage, tmpl)
		assert.NoError(t, record.Validate(rec), string(tmpl))
	}
}

func TestEngine_Idempotent(t *testing.T) {
	engine := newTestEngine(t)
	text := lines(
		"חתן",
		"שם פרטי: דוד",
		"מספר הזהות 200376127 וה 204661722",
		"כלה",
		"שם פרטי: שרה",
	)

	for _, tmpl := range constants.AllTemplates() {
		first, err := engine.Extract(text, tmpl).MarshalJSON()
		require.NoError(t, err)
		second, err := engine.Extract(text, tmpl).MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, string(first), string(second), string(tmpl))
	}
}

func TestEngine_NoMarkerKeepsBothPersons(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract("תעודה ללא סימון צדדים", constants.MarriageCertificate)
	require.NotNil(t, rec.Person(constants.RoleGroom))
	require.NotNil(t, rec.Person(constants.RoleBride))
	assert.Empty(t, rec.Person(constants.RoleGroom).Get(record.FirstName))

	rec = engine.Extract("תעודה ללא סימון צדדים", constants.DivorceCertificate)
	require.NotNil(t, rec.Person(constants.RoleHusband))
	require.NotNil(t, rec.Person(constants.RoleWife))
	assert.Empty(t, rec.Person(constants.RoleWife).Get(record.IDNumber))
}

func TestEngine_AutoDetectsTemplate(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines("Surname Cohen כהן", "Given name David דוד"), constants.TemplateAuto)
	assert.Equal(t, constants.BilingualBirthCertificate, rec.Template)
	assert.Equal(t, "Cohen", rec.Get(record.FamilyName))
	assert.Equal(t, "David", rec.Get(record.FirstName))

	assert.Equal(t, constants.DivorceCertificate, engine.Detect("תעודת גירושין"))
	assert.Equal(t, constants.BirthCertificate, engine.Detect(""))
}

func TestEngine_UnknownTemplateFallsBackToDictionary(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract("שם פרטי: דוד", constants.TemplateType("death_certificate"))
	assert.Equal(t, "David", rec.Get(record.FirstName))
	assert.Equal(t, record.Unknown, rec.Get(record.Reference))
}

func TestRouter_For(t *testing.T) {
	r := NewRouter(dictionary.MustLoad(), nil)

	for _, tmpl := range constants.AllTemplates() {
		assert.Equal(t, tmpl, r.For(tmpl).Template())
	}
	assert.IsType(t, &MarriageExtractor{}, r.For(constants.MarriageCertificate))

	fallback := r.For("unknown")
	assert.IsType(t, &GenericExtractor{}, fallback)
	assert.Equal(t, constants.TemplateType("unknown"), fallback.Template())
}

func TestGeneric_InlineValueIsTranslated(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract("שם פרטי: דוד", constants.BirthCertificate)
	assert.Equal(t, "David", rec.Get(record.FirstName))
	assert.True(t, rec.Found(record.FirstName))
}

func TestGeneric_ValueOnNextLine(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines("שם משפחה", "כהן"), constants.BirthCertificate)
	assert.Equal(t, "Cohen", rec.Get(record.FamilyName))
}

func TestGeneric_SkippedOnBilingualText(t *testing.T) {
	engine := newTestEngine(t)

	rec := engine.Extract(lines("Surname Cohen", "שם פרטי: דוד"), constants.PopulationRegistryCertificate)
	assert.Empty(t, rec.Get(record.FirstName))
}
