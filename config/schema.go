package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("config.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// validateSchema checks a YAML document against the config schema. An empty
// document is accepted and means all defaults.
func validateSchema(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "parse config")
	}
	if doc == nil {
		return nil
	}

	// The validator expects values as produced by encoding/json.
	b, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "config is not representable as json")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return errors.Wrap(err, "re-decode config")
	}

	s, err := compiledSchema()
	if err != nil {
		return errors.Wrap(err, "compile config schema")
	}
	if err := s.Validate(v); err != nil {
		return errors.Wrap(err, "config schema")
	}
	return nil
}
