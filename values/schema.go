package values

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	vs "github.com/kodraus/valuestream"
)

// RecordSchema compiles a JSON Schema document once and validates decoded
// JSON payloads against it before they are replayed through a Value/Stream
// round trip. It exists for the derive facility's generated test
// harnesses (the facility itself is out of core scope), which check that
// a producer's JSON output still conforms to the schema the record type
// was declared against; the validator itself is core-adjacent, so it is
// wired here rather than dropped with the rest of the derive facility.
type RecordSchema struct {
	schema *jsonschema.Schema
}

// NewRecordSchema compiles schemaJSON (a JSON Schema document) into a
// reusable RecordSchema.
func NewRecordSchema(schemaJSON []byte) (*RecordSchema, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, vs.NewMalformedError("record_schema", "unmarshal schema: "+err.Error())
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("record-schema.json", doc); err != nil {
		return nil, vs.NewMalformedError("record_schema", "add schema resource: "+err.Error())
	}
	schema, err := c.Compile("record-schema.json")
	if err != nil {
		return nil, vs.NewMalformedError("record_schema", "compile schema: "+err.Error())
	}
	return &RecordSchema{schema: schema}, nil
}

// Validate decodes payloadJSON and checks it against the compiled schema,
// returning a *valuestream.Error with KindMalformed on a schema violation.
func (r *RecordSchema) Validate(payloadJSON []byte) error {
	var doc any
	if err := json.Unmarshal(payloadJSON, &doc); err != nil {
		return vs.NewMalformedError("record_schema", "unmarshal payload: "+err.Error())
	}
	if err := r.schema.Validate(doc); err != nil {
		return vs.NewMalformedError("record_schema", fmt.Sprintf("schema violation: %v", err))
	}
	return nil
}
