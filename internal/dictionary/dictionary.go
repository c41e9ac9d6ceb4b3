// Package dictionary holds the label and value tables used to read civil-registry
// certificates. Tables ship embedded as TOML and may be extended with an extra file
// at load time; a loaded Dictionary is never mutated afterwards.
package dictionary

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed data/dictionaries.toml
var embedded []byte

// Entry maps a printed label to a record field key.
type Entry struct {
	Label string `toml:"label"`
	Field string `toml:"field"`
}

type tables struct {
	Labels        []Entry           `toml:"labels"`
	EnglishLabels []Entry           `toml:"english_labels"`
	Translations  map[string]string `toml:"translations"`
	Months        map[string]string `toml:"months"`
}

// Dictionary is the read-only set of tables shared by all extractions.
type Dictionary struct {
	labels     []Entry
	english    []Entry
	translator *Translator
}

// Load parses the embedded tables and, when extraPath is set, overlays the file at
// that path. Overlay labels are appended after the built-in ones; overlay
// translations and months replace built-in entries with the same key.
func Load(extraPath string) (*Dictionary, error) {
	base, err := parse(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded dictionaries: %w", err)
	}
	if strings.TrimSpace(extraPath) == "" {
		return build(base), nil
	}
	data, err := os.ReadFile(extraPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", extraPath, err)
	}
	extra, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", extraPath, err)
	}
	return build(merge(base, extra)), nil
}

// MustLoad is Load("") for callers that cannot recover from a broken build.
func MustLoad() *Dictionary {
	d, err := Load("")
	if err != nil {
		panic(err)
	}
	return d
}

func parse(data []byte) (tables, error) {
	var t tables
	if err := toml.Unmarshal(data, &t); err != nil {
		return tables{}, err
	}
	for i, e := range t.Labels {
		if e.Label == "" || e.Field == "" {
			return tables{}, fmt.Errorf("labels[%d]: label and field are required", i)
		}
	}
	for i, e := range t.EnglishLabels {
		if e.Label == "" || e.Field == "" {
			return tables{}, fmt.Errorf("english_labels[%d]: label and field are required", i)
		}
	}
	return t, nil
}

func merge(base, extra tables) tables {
	out := tables{
		Labels:        append(append([]Entry{}, base.Labels...), extra.Labels...),
		EnglishLabels: append(append([]Entry{}, base.EnglishLabels...), extra.EnglishLabels...),
		Translations:  make(map[string]string, len(base.Translations)+len(extra.Translations)),
		Months:        make(map[string]string, len(base.Months)+len(extra.Months)),
	}
	for k, v := range base.Translations {
		out.Translations[k] = v
	}
	for k, v := range extra.Translations {
		out.Translations[k] = v
	}
	for k, v := range base.Months {
		out.Months[k] = v
	}
	for k, v := range extra.Months {
		out.Months[k] = v
	}
	return out
}

func build(t tables) *Dictionary {
	if t.Translations == nil {
		t.Translations = map[string]string{}
	}
	if t.Months == nil {
		t.Months = map[string]string{}
	}
	return &Dictionary{
		labels:     t.Labels,
		english:    t.EnglishLabels,
		translator: &Translator{values: t.Translations, months: t.Months},
	}
}

// Labels returns the Hebrew label entries in lookup order.
func (d *Dictionary) Labels() []Entry {
	return append([]Entry(nil), d.labels...)
}

// EnglishLabels returns the bilingual-certificate label entries in lookup order.
func (d *Dictionary) EnglishLabels() []Entry {
	return append([]Entry(nil), d.english...)
}

func (d *Dictionary) Translator() *Translator { return d.translator }
