// Package registry loads and validates the static JSON manifest that
// describes the CLI tools shipped in this repository. The manifest is
// discovery metadata for humans and agents; nothing dispatches through
// it at runtime.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ManifestVersionV1 is the only manifest schema version in use.
const ManifestVersionV1 = "1.0"

// Manifest is the top-level tool registry document.
type Manifest struct {
	ManifestVersion string     `json:"manifest_version"`
	Tools           []ToolSpec `json:"tools"`
}

// ToolSpec describes one standalone CLI tool: how to invoke it and the
// contract it exposes.
type ToolSpec struct {
	Name        string               `json:"name"`
	Version     string               `json:"version,omitempty"`
	Description string               `json:"description,omitempty"`
	Command     string               `json:"command"`
	Args        []string             `json:"args,omitempty"`
	Inputs      map[string]FieldSpec `json:"inputs,omitempty"`
	Outputs     map[string]FieldSpec `json:"outputs,omitempty"`
	// ExitCodes maps each exit code to its meaning.
	ExitCodes map[string]string `json:"exit_codes,omitempty"`
}

// FieldSpec is the field/type descriptor used for inputs and outputs.
type FieldSpec struct {
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

var validFieldTypes = map[string]struct{}{
	"string":  {},
	"number":  {},
	"integer": {},
	"boolean": {},
	"array":   {},
	"object":  {},
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI path argument.
	if err != nil {
		return Manifest{}, fmt.Errorf("registry: reading %s: %w", path, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("registry: parsing %s: %w", path, err)
	}
	if err := manifest.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("registry: %s: %w", path, err)
	}
	return manifest, nil
}

// Validate checks manifest-level and per-tool invariants.
func (m Manifest) Validate() error {
	if m.ManifestVersion != ManifestVersionV1 {
		return fmt.Errorf("unsupported manifest_version %q (want %q)", m.ManifestVersion, ManifestVersionV1)
	}
	if len(m.Tools) == 0 {
		return fmt.Errorf("manifest declares no tools")
	}

	seen := make(map[string]struct{}, len(m.Tools))
	for i, tool := range m.Tools {
		if err := tool.validate(); err != nil {
			return fmt.Errorf("tools[%d]: %w", i, err)
		}
		if _, dup := seen[tool.Name]; dup {
			return fmt.Errorf("tools[%d]: duplicate tool name %q", i, tool.Name)
		}
		seen[tool.Name] = struct{}{}
	}
	return nil
}

func (t ToolSpec) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tool name is required")
	}
	if strings.TrimSpace(t.Command) == "" {
		return fmt.Errorf("tool %q: command is required", t.Name)
	}
	for name, field := range t.Inputs {
		if err := field.validate(); err != nil {
			return fmt.Errorf("tool %q: input %q: %w", t.Name, name, err)
		}
	}
	for name, field := range t.Outputs {
		if err := field.validate(); err != nil {
			return fmt.Errorf("tool %q: output %q: %w", t.Name, name, err)
		}
	}
	return nil
}

func (f FieldSpec) validate() error {
	if _, ok := validFieldTypes[f.Type]; !ok {
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	return nil
}
