package stimuli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// ManifestSchema returns a JSON Schema for the manifest document, closed to
// unknown properties and with every field required, so the experiment runner
// can validate a manifest before loading stimuli.
func ManifestSchema() (map[string]interface{}, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(Manifest{})
	obj, err := schemaToMap(schema)
	if err != nil {
		return nil, fmt.Errorf("ManifestSchema: %w", err)
	}
	closeSchema(obj)
	return obj, nil
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// closeSchema marks every object schema as closed and all of its properties
// as required, recursively. Required lists are sorted so the emitted schema
// is byte-stable across runs.
func closeSchema(schema map[string]interface{}) {
	if t, ok := schema[typeKey].(string); ok && t == "object" {
		schema[additionalPropertiesKey] = false
		if props, ok := schema[propertiesKey].(map[string]interface{}); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			sort.Strings(required)
			if len(required) > 0 {
				schema[requiredKey] = required
			}
		}
	}

	if props, ok := schema[propertiesKey].(map[string]interface{}); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]interface{}); ok {
				closeSchema(pm)
			}
		}
	}
	if items, ok := schema[itemsKey].(map[string]interface{}); ok {
		closeSchema(items)
	}
}
