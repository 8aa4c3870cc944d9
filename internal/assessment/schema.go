package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/cogniwise/cogniwise/internal/telemetry"
)

// gameScoresSchema accepts the three normalized game performances. Absent
// games score 0, and extra keys from older clients are ignored.
var gameScoresSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"game1": map[string]any{"type": "number"},
		"game2": map[string]any{"type": "number"},
		"game3": map[string]any{"type": "number"},
	},
}

// telemetrySchema lists the raw fields of group's battery. Values are
// non-negative numbers, event counts must be whole, and unknown keys are
// rejected.
func telemetrySchema(group telemetry.AgeGroup) (map[string]any, error) {
	m, err := telemetry.TelemetryFromFields(group, nil)
	if err != nil {
		return nil, err
	}
	props := map[string]any{}
	for name := range m.Fields() {
		typ := "number"
		if telemetry.IsCountField(name) {
			typ = "integer"
		}
		props[name] = map[string]any{"type": typ, "minimum": 0}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}, nil
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload checks raw against the schema registered under name and
// returns the decoded value.
func validatePayload(name string, def map[string]any, raw json.RawMessage) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(name, def)
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return doc, nil
}

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value, not Go maps with typed numbers.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// numberFields converts a validated JSON object into float fields. Non-number
// members are skipped.
func numberFields(doc any) map[string]float64 {
	obj, _ := doc.(map[string]any)
	out := make(map[string]float64, len(obj))
	for k, v := range obj {
		switch n := v.(type) {
		case json.Number:
			if f, err := n.Float64(); err == nil {
				out[k] = f
			}
		case float64:
			out[k] = n
		}
	}
	return out
}

// foreignTelemetry reports the age group whose battery owns a field in
// fields when that field is not part of group's battery.
func foreignTelemetry(group telemetry.AgeGroup, fields map[string]float64) (telemetry.AgeGroup, bool) {
	own := fieldNames(group)
	for _, other := range telemetry.AgeGroups() {
		if other == group {
			continue
		}
		theirs := fieldNames(other)
		for k := range fields {
			if theirs[k] && !own[k] {
				return other, true
			}
		}
	}
	return "", false
}

func fieldNames(group telemetry.AgeGroup) map[string]bool {
	m, err := telemetry.TelemetryFromFields(group, nil)
	if err != nil {
		return nil
	}
	out := map[string]bool{}
	for k := range m.Fields() {
		out[k] = true
	}
	return out
}
