package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the version of the embedded config schema.
const SchemaVersion = "1.0.0"

//go:embed schemas/cwt-config-v1.0.0.yaml
var schemaYAML []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	// Convert YAML to JSON for gojsonschema
	var schemaData interface{}
	if err := yaml.Unmarshal(schemaYAML, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse config schema: %w", err)
	}
	jsonBytes, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config schema: %w", err)
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
})

// SchemaYAML returns the embedded schema source.
func SchemaYAML() []byte { return schemaYAML }

// ValidationError lists every schema violation in one config file.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed for %s:\n%s", e.Path, strings.Join(e.Problems, "\n"))
}

// ValidateFile decodes a YAML, TOML or JSON config file and checks it
// against the schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("error reading config %s: %w", path, err)
	}
	doc, err := decode(path, data)
	if err != nil {
		return fmt.Errorf("error parsing config %s: %w", path, err)
	}

	problems, err := Validate(doc)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return &ValidationError{Path: path, Problems: problems}
	}
	return nil
}

// Validate checks a decoded document against the schema and returns the
// violations as "field: description" strings.
func Validate(doc interface{}) ([]string, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	var problems []string
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" || field == "(root)" {
			field = "root"
		}
		problems = append(problems, field+": "+desc.Description())
	}
	return problems, nil
}

func decode(path string, data []byte) (interface{}, error) {
	var doc interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".toml":
		m := map[string]interface{}{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		doc = m
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %q", filepath.Ext(path))
	}
	return doc, nil
}
