package summarize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/niloysannyal/form-summary/internal/form"
)

// recordSchema requires exactly the fixed record key set to be present.
// Values are not constrained beyond presence: null is a legal value for
// every field.
var recordSchema = compileRecordSchema()

func compileRecordSchema() *jsonschema.Schema {
	doc := map[string]any{
		"type":     "object",
		"required": form.Keys(),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("failed to build record schema: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("failed to load record schema: %v", err))
	}
	return compiler.MustCompile("record.json")
}

// ValidateRecord checks that serialized record JSON supplies the full fixed
// key set.
func ValidateRecord(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode record JSON: %w", err)
	}
	if err := recordSchema.Validate(doc); err != nil {
		return fmt.Errorf("record does not supply the fixed key set: %w", err)
	}
	return nil
}
