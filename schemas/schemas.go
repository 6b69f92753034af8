// Package schemas embeds the JSON Schemas used to validate decision
// files.
package schemas

import _ "embed"

// DecisionSchemaJSON is the schema for saved decision YAML files.
//
//go:embed decision.schema.json
var DecisionSchemaJSON string
