package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads a membership table from a YAML (or JSON) file and
// validates it.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table file: %w", err)
	}
	return DecodeTable(data)
}

// DecodeTable parses and validates a YAML or JSON table document of the form
//
//	"24": {mode: access, vlans: [114]}
//	"26": {mode: trunk, vlans: [11, 52, 114]}
func DecodeTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing table: %w", err)
	}
	if t == nil {
		t = Table{}
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating table: %w", err)
	}
	return t, nil
}

// EncodeYAML renders the table as YAML
func (t Table) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(t)
}
