package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mappings maps use cases and system types to governance profile references.
// It is loaded from a standalone YAML file so governance teams can manage
// profile assignment without touching the main configuration.
type Mappings struct {
	// Overrides is a list of match rules consulted before the direct
	// lookups. The first rule whose use case (and system type, when the
	// rule specifies one) matches wins.
	Overrides []MappingOverride `yaml:"overrides"`

	// UseCases maps a use case key to its profile assignment.
	UseCases map[string]MappingEntry `yaml:"use_cases"`

	// SystemTypes maps a system type key to its profile assignment.
	// Consulted only when the use case lookup yields nothing.
	SystemTypes map[string]MappingEntry `yaml:"system_types"`
}

// MappingOverride is a match rule pairing a (use_case, system_type) pattern
// with a profile reference.
type MappingOverride struct {
	Match      MappingMatch `yaml:"match"`
	ProfileRef string       `yaml:"profile_ref"`
}

// MappingMatch describes the targets an override applies to. An empty
// SystemType matches any system type.
type MappingMatch struct {
	UseCase    string `yaml:"use_case"`
	SystemType string `yaml:"system_type"`
}

// MappingEntry is a single profile assignment.
type MappingEntry struct {
	ProfileRef string `yaml:"profile_ref"`
}

// LoadMappings loads the mappings table from a YAML file. A missing file is
// not an error; an empty table is returned so callers fall through to the
// global default profile.
func LoadMappings(path string) (*Mappings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Mappings{}, nil
		}
		return nil, fmt.Errorf("failed to read mappings file %q: %w", path, err)
	}

	var m Mappings
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mappings file %q: %w", path, err)
	}

	return &m, nil
}

// ResolveProfile returns the profile reference for the given use case and
// system type, or "" when no mapping applies.
//
// Resolution order:
//  1. Overrides, first match wins. An override with a system type in its
//     match requires an exact system type match; one without matches any.
//  2. UseCases lookup by use case.
//  3. SystemTypes lookup by system type.
func (m *Mappings) ResolveProfile(useCase, systemType string) string {
	if m == nil {
		return ""
	}

	for _, o := range m.Overrides {
		if o.Match.UseCase != useCase {
			continue
		}
		if o.Match.SystemType != "" && o.Match.SystemType != systemType {
			continue
		}
		return o.ProfileRef
	}

	if useCase != "" {
		if entry, ok := m.UseCases[useCase]; ok && entry.ProfileRef != "" {
			return entry.ProfileRef
		}
	}

	if systemType != "" {
		if entry, ok := m.SystemTypes[systemType]; ok && entry.ProfileRef != "" {
			return entry.ProfileRef
		}
	}

	return ""
}
