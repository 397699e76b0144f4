package gesture

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)

// validateSchema checks a decoded config document against the embedded
// schema. Unknown keys, wrong types and negative durations are rejected
// here; struct decoding alone would silently ignore a misspelled key.
// doc is normalized through JSON so YAML and TOML values validate the same
// way as JSON ones. A nil document (empty file) is accepted.
func validateSchema(doc any) error {
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	if err := configSchema.Validate(payload); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	return nil
}
