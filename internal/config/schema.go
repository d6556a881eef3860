package config

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ballotSchema describes the boundary RawBallot shape of spec §6: a
// list of ballots, each a "choices" array of string arrays (empty =
// undervote, one empty string = blank, 2+ = overvote, one non-empty
// name = a vote) plus an integer "count".
const ballotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["choices", "count"],
    "properties": {
      "choices": {
        "type": "array",
        "items": {
          "type": "array",
          "items": {"type": "string"}
        }
      },
      "count": {"type": "integer", "minimum": 0}
    }
  }
}`

// ValidateBallotJSON checks raw ballot JSON against the boundary shape;
// the JSON ballot reader calls it before decoding, the way the teacher's
// dependency graph uses a JSON-schema validator to gate configuration
// at the edge of the service rather than deep inside it.
func ValidateBallotJSON(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(ballotSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validating ballot json: %w", err)
	}
	if !result.Valid() {
		msg := "ballot json failed schema validation:"
		for _, e := range result.Errors() {
			msg += "\n  - " + e.String()
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}
