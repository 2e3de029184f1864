// File: specify/file.go
package specify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileProvider reads raw values from a TOML, JSON or YAML file. The
// format is taken from Format when set, otherwise detected from the file
// extension and finally from the content itself.
//
// The file's top-level table supplies the values. When Section is set
// (dot-separated), the provider navigates to that sub-table first; a
// common layout keys sections by schema name.
type FileProvider struct {
	Path    string
	Section string
	Format  string // "toml", "json", "yaml" or "" for auto-detection
}

// FromFile returns a file provider with format auto-detection.
func FromFile(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Load implements the Provider interface. A missing file reports
// ErrSourceNotFound; unparsable content, an unknown format, or content
// that is not a table reports ErrSourceMalformed.
func (p *FileProvider) Load(s *Schema) (map[string]any, error) {
	fileData, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %q: %w", p.Path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("config file %q: %v: %w", p.Path, err, ErrSourceNotFound)
	}

	format := p.Format
	if format == "" || format == "auto" {
		format = detectFileFormat(p.Path)
		if format == "" {
			format = detectFormatFromContent(fileData)
		}
	}

	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("config file %q: invalid TOML: %v: %w", p.Path, err, ErrSourceMalformed)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(fileData))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("config file %q: invalid JSON: %v: %w", p.Path, err, ErrSourceMalformed)
		}
	case "yaml":
		if err := yaml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("config file %q: invalid YAML: %v: %w", p.Path, err, ErrSourceMalformed)
		}
	default:
		return nil, fmt.Errorf("config file %q: unable to determine format: %w", p.Path, ErrSourceMalformed)
	}

	section := navigateToSection(fileConfig, p.Section)
	sectionMap, ok := section.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config file %q: section %q is not a table: %w",
			p.Path, p.Section, ErrSourceMalformed)
	}

	// json.Number values stay opaque to the typed parsers; surface them
	// as their textual form instead.
	out := make(map[string]any, len(sectionMap))
	for k, v := range sectionMap {
		if n, isNumber := v.(json.Number); isNumber {
			out[k] = n.String()
		} else {
			out[k] = v
		}
	}
	return out, nil
}

// navigateToSection walks a dot-separated path through nested tables.
func navigateToSection(nested map[string]any, section string) any {
	if section == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range strings.Split(section, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}
	return current
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML; YAML accepts nearly anything
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
