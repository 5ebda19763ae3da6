package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// schema describes the accepted config document. Unknown keys are rejected
// so that typos do not silently fall back to defaults.
const schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "timeout":         {"type": "integer", "minimum": 0},
    "followRedirects": {"type": "boolean"},
    "maxRedirects":    {"type": "integer", "minimum": 1},
    "validateSSL":     {"type": "boolean"},
    "proxy":           {"type": "string"},
    "headers": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "noColor":  {"type": "boolean"},
    "logLevel": {"type": "string", "enum": ["debug", "info", "warn", "error"]}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(schema)

func validate(data []byte, isYAML bool) error {
	var document gojsonschema.JSONLoader
	if isYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return err
		}
		if doc == nil {
			doc = map[string]any{}
		}
		document = gojsonschema.NewGoLoader(doc)
	} else {
		document = gojsonschema.NewBytesLoader(data)
	}

	result, err := gojsonschema.Validate(schemaLoader, document)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
