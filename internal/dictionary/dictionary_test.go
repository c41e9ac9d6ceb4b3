package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, d.Labels())
	assert.NotEmpty(t, d.EnglishLabels())
	assert.Positive(t, d.Translator().Len())
	assert.Equal(t, Entry{Label: "שם פרטי", Field: "firstname"}, d.Labels()[0])
}

func TestLoad_LabelsAreCopies(t *testing.T) {
	d := MustLoad()
	labels := d.Labels()
	labels[0].Field = "changed"
	assert.Equal(t, "firstname", d.Labels()[0].Field)
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.toml")
	overlay := `
[[labels]]
label = "כינוי"
field = "alias"

[translations]
"דוד" = "Dawid"
"בנימין" = "Binyamin"

[months]
"מאי" = "Mai"
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	d, err := Load(path)
	require.NoError(t, err)

	base := MustLoad()
	assert.Len(t, d.Labels(), len(base.Labels())+1)
	assert.Equal(t, "alias", d.Labels()[len(d.Labels())-1].Field)

	tr := d.Translator()
	assert.Equal(t, "Dawid", tr.Translate("דוד"))
	assert.Equal(t, "Binyamin", tr.Translate("בנימין"))
	assert.Equal(t, "Mai", tr.Month("מאי"))
	assert.Equal(t, "Cohen", tr.Translate("כהן"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[labels]]\nlabel = \"x\"\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "label and field are required")

	require.NoError(t, os.WriteFile(path, []byte("not = [toml"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestTranslator(t *testing.T) {
	tr := MustLoad().Translator()

	assert.Equal(t, "David", tr.Translate("דוד"))
	assert.Equal(t, "לא ידוע", tr.Translate("לא ידוע"))
	assert.Equal(t, "fallback", tr.TranslateOr("לא ידוע", "fallback"))
	assert.Equal(t, "Gal", tr.TranslateOr("גל", "x"))
	assert.Equal(t, "Holon Israel", tr.TranslateTokens("חולון  ישראל"))
	assert.Equal(t, "January", tr.Month("ינואר"))
	assert.Equal(t, "Male", tr.Month("זכר"))
}
