package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

// schemaURL is the synthetic resource name of the embedded schema.
const schemaURL = "manifest.schema.json"

// outputFileMode is used for the written manifest.
const outputFileMode os.FileMode = 0o644

var (
	compiledSchemaOnce sync.Once
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
)

// compileSchema compiles the embedded manifest schema once per process.
func compileSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compiledSchemaErr = fmt.Errorf("parse embedded manifest schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			compiledSchemaErr = fmt.Errorf("register manifest schema: %w", err)
			return
		}

		compiledSchema, compiledSchemaErr = compiler.Compile(schemaURL)
	})

	return compiledSchema, compiledSchemaErr
}

// Encode serializes the manifest with two-space indentation, keeping URLs
// readable (no HTML escaping).
func Encode(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(m); err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	return buf.Bytes(), nil
}

// Validate checks a serialized manifest against the embedded schema.
func Validate(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("reparse manifest for validation: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("manifest failed schema validation: %w", err)
	}

	return nil
}

// Write serializes, validates and persists the manifest in a single
// operation. The document is fully built in memory first; a file only ever
// appears when the whole manifest is valid.
func Write(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	if err := Validate(data); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Clean(path), data, outputFileMode); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
