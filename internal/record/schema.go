package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/certificate-extractor/constants"
)

// Schema returns a JSON-Schema (draft 2020-12 subset) as a generic map that every
// record of template t must satisfy: all keys present, all leaves strings.
func Schema(t constants.TemplateType) map[string]any {
	keys := Keys(t)
	props := make(map[string]any, len(keys)+2)
	for _, k := range keys {
		props[k] = stringProp()
	}
	required := append([]any{}, toAny(keys)...)
	for _, role := range constants.Roles(t) {
		props[string(role)] = personSchema()
		required = append(required, string(role))
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func personSchema() map[string]any {
	keys := PersonKeys()
	props := make(map[string]any, len(keys)+2)
	for _, k := range keys {
		props[k] = stringProp()
	}
	props[FatherKey] = parentSchema()
	props[MotherKey] = parentSchema()
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             append(toAny(keys), FatherKey, MotherKey),
		"additionalProperties": stringProp(),
	}
}

func parentSchema() map[string]any {
	keys := []string{"firstName", "familyName", "address", "occupation"}
	props := make(map[string]any, len(keys))
	for _, k := range keys {
		props[k] = stringProp()
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             toAny(keys),
	}
}

func stringProp() map[string]any { return map[string]any{"type": "string"} }

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

var compiled sync.Map // constants.TemplateType -> *jsonschema.Schema

func compile(t constants.TemplateType) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(t); ok {
		return s.(*jsonschema.Schema), nil
	}
	b, err := json.Marshal(Schema(t))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	name := string(t) + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	compiled.Store(t, schema)
	return schema, nil
}

// ValidateJSON checks encoded record data against the schema of template t.
func ValidateJSON(t constants.TemplateType, data []byte) error {
	schema, err := compile(t)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match %s schema: %w", t, err)
	}
	return nil
}

// Validate encodes r and checks it against its template schema.
func Validate(r *Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return ValidateJSON(r.Template, data)
}
