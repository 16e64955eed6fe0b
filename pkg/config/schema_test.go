package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedSchemaCompiles(t *testing.T) {
	schema, err := compiledSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(SchemaYAML(), &doc))
	assert.Contains(t, doc["$id"], SchemaVersion)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		doc      interface{}
		problems []string
	}{
		{"empty", nil, nil},
		{"full", map[string]interface{}{
			"templates":     "headers",
			"target":        "src",
			"at_line":       1,
			"include":       []interface{}{"**/*.go"},
			"use_ignore":    true,
			"skip_existing": false,
			"report":        map[string]interface{}{"format": "toml"},
			"tags":          map[string]interface{}{"company": "Acme", "project.since": 2019},
		}, nil},
		{"bad line", map[string]interface{}{"at_line": 0}, []string{"at_line"}},
		{"unknown key", map[string]interface{}{"target_dir": "src"}, []string{"target_dir"}},
		{"bad format", map[string]interface{}{"report": map[string]interface{}{"format": "html"}}, []string{"report.format"}},
		{"bad tag name", map[string]interface{}{"tags": map[string]interface{}{"{company}": "Acme"}}, []string{"tags"}},
		{"nested tag", map[string]interface{}{"tags": map[string]interface{}{"a": map[string]interface{}{"b": "c"}}}, []string{"tags.a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems, err := Validate(tt.doc)
			require.NoError(t, err)
			if len(tt.problems) == 0 {
				assert.Empty(t, problems)
				return
			}
			require.NotEmpty(t, problems)
			for _, want := range tt.problems {
				found := false
				for _, p := range problems {
					if strings.Contains(p, want) {
						found = true
					}
				}
				assert.True(t, found, "expected a problem mentioning %q in %v", want, problems)
			}
		})
	}
}

func TestValidateFileFormats(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, ValidateFile(writeConfig(t, dir, "a.yaml", "target: src\n")))
	assert.NoError(t, ValidateFile(writeConfig(t, dir, "a.toml", "target = \"src\"\n[report]\nformat = \"json\"\n")))
	assert.NoError(t, ValidateFile(writeConfig(t, dir, "a.json", `{"target": "src"}`)))

	err := ValidateFile(writeConfig(t, dir, "bad.toml", "at_line = -1\n"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "at_line")

	assert.Error(t, ValidateFile(writeConfig(t, dir, "broken.json", "{")))
	assert.Error(t, ValidateFile(writeConfig(t, dir, "a.ini", "x=1")))
}
