// Package record defines the structured output of a certificate extraction.
package record

import (
	"encoding/json"

	"github.com/joseph-ayodele/certificate-extractor/constants"
)

// fieldSet is an insertion-ordered string map that remembers which keys were
// written by an extraction rule as opposed to carrying their default.
type fieldSet struct {
	keys   []string
	values map[string]string
	found  map[string]struct{}
}

func newFieldSet(keys []string) fieldSet {
	fs := fieldSet{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]string, len(keys)),
		found:  map[string]struct{}{},
	}
	for _, k := range keys {
		fs.setDefault(k, "")
	}
	return fs
}

func (f *fieldSet) setDefault(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value stored under key, "" when absent.
func (f *fieldSet) Get(key string) string { return f.values[key] }

// Set stores value under key. Later writes replace earlier ones.
func (f *fieldSet) Set(key, value string) {
	f.setDefault(key, value)
	f.found[key] = struct{}{}
}

// Fill stores a fallback value under key without marking it found.
func (f *fieldSet) Fill(key, value string) { f.setDefault(key, value) }

// Found reports whether a rule wrote key, even if it wrote "".
func (f *fieldSet) Found(key string) bool {
	_, ok := f.found[key]
	return ok
}

// Keys returns keys in first-seen order.
func (f *fieldSet) Keys() []string { return append([]string(nil), f.keys...) }

func (f *fieldSet) toMap() map[string]any {
	m := make(map[string]any, len(f.keys)+2)
	for _, k := range f.keys {
		m[k] = f.values[k]
	}
	return m
}

// Parent is the nested father or mother detail of a person.
type Parent struct {
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
	Address    string `json:"address"`
	Occupation string `json:"occupation"`
}

func (p Parent) toMap() map[string]any {
	return map[string]any{
		"firstName":  p.FirstName,
		"familyName": p.FamilyName,
		"address":    p.Address,
		"occupation": p.Occupation,
	}
}

// Person is a party to a marriage or divorce.
type Person struct {
	fieldSet
	Father Parent
	Mother Parent
}

func newPerson() *Person {
	return &Person{fieldSet: newFieldSet(personKeys)}
}

// Map renders the person as the JSON object shape.
func (p *Person) Map() map[string]any {
	m := p.toMap()
	m[FatherKey] = p.Father.toMap()
	m[MotherKey] = p.Mother.toMap()
	return m
}

// Record is the extraction result for one certificate.
type Record struct {
	fieldSet
	Template constants.TemplateType
	persons  map[constants.Role]*Person
	roles    []constants.Role

	// Notes carries data-quality diagnostics. Not part of the emitted shape.
	Notes []string
}

// New returns a record carrying every key of template t at its default.
func New(t constants.TemplateType) *Record {
	r := &Record{
		fieldSet: newFieldSet(Keys(t)),
		Template: t,
		persons:  map[constants.Role]*Person{},
	}
	r.EnsurePersons()
	return r
}

// EnsurePersons creates any missing person sub-record the template carries.
func (r *Record) EnsurePersons() {
	for _, role := range constants.Roles(r.Template) {
		if _, ok := r.persons[role]; !ok {
			r.persons[role] = newPerson()
			r.roles = append(r.roles, role)
		}
	}
}

// Person returns the sub-record for role, nil when the template has none.
func (r *Record) Person(role constants.Role) *Person {
	return r.persons[role]
}

// Roles returns the person roles present, in template order.
func (r *Record) Roles() []constants.Role { return append([]constants.Role(nil), r.roles...) }

// Note appends a diagnostic.
func (r *Record) Note(msg string) { r.Notes = append(r.Notes, msg) }

// Map renders the record as its JSON object shape.
func (r *Record) Map() map[string]any {
	m := r.toMap()
	for _, role := range r.roles {
		m[string(role)] = r.persons[role].Map()
	}
	return m
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
