package provider

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateLooseSchema reflects T for non-strict structured output. Free-form maps (such as
// qualification slots) stay open, only fields tagged `jsonschema:"required"` are required, and
// the $schema/$id keys some OpenAI-compatible endpoints reject are removed.
func GenerateLooseSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schemaObj, err := schemaToMap(reflector.Reflect(v))
	if err != nil {
		panic(err)
	}
	delete(schemaObj, "$schema")
	delete(schemaObj, "$id")
	return schemaObj
}

func schemaToMap(schema *jsonschema.Schema) (map[string]any, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
