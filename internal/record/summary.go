package record

import (
	"strings"
)

const na = "N/A"

// Summary renders r as an indented "key: value" listing with N/A for empty
// values, top-level keys first and then each person with its parents.
func Summary(r *Record) string {
	var b strings.Builder
	b.WriteString("Extracted Data Summary:\n\n")
	for _, k := range r.Keys() {
		writeLine(&b, "", k, r.Get(k))
	}
	for _, role := range r.Roles() {
		p := r.Person(role)
		b.WriteString(string(role) + ":\n")
		for _, k := range p.Keys() {
			writeLine(&b, "  ", k, p.Get(k))
		}
		writeParent(&b, FatherKey, p.Father)
		writeParent(&b, MotherKey, p.Mother)
	}
	return b.String()
}

func writeParent(b *strings.Builder, name string, p Parent) {
	b.WriteString("  " + name + ":\n")
	writeLine(b, "    ", "firstName", p.FirstName)
	writeLine(b, "    ", "familyName", p.FamilyName)
	writeLine(b, "    ", "address", p.Address)
	writeLine(b, "    ", "occupation", p.Occupation)
}

func writeLine(b *strings.Builder, indent, key, value string) {
	if value == "" {
		value = na
	}
	b.WriteString(indent)
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}
