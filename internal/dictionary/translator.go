package dictionary

import "strings"

// Translator maps extracted Hebrew values to their English rendering.
// Unknown values pass through unchanged.
type Translator struct {
	values map[string]string
	months map[string]string
}

// Translate returns the translation of v, or v itself when none is known.
func (t *Translator) Translate(v string) string {
	if tr, ok := t.values[v]; ok && tr != "" {
		return tr
	}
	return v
}

// TranslateOr returns the translation of v, or fallback when none is known.
func (t *Translator) TranslateOr(v, fallback string) string {
	if tr, ok := t.values[v]; ok && tr != "" {
		return tr
	}
	return fallback
}

// TranslateTokens translates each whitespace-separated token of s on its own.
func (t *Translator) TranslateTokens(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = t.Translate(f)
	}
	return strings.Join(fields, " ")
}

// Month translates a Hebrew Gregorian month name. Month names missing from the
// month table fall back to the general value table.
func (t *Translator) Month(m string) string {
	if tr, ok := t.months[m]; ok && tr != "" {
		return tr
	}
	return t.Translate(m)
}

// Len is the number of value translations.
func (t *Translator) Len() int { return len(t.values) }
