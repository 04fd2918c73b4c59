package profile

import "gopkg.in/yaml.v3"

// Profile is a versioned governance profile document.
// Profiles are value objects; once loaded they are never mutated.
type Profile struct {
	// ProfileID is the stable profile identifier.
	ProfileID string `yaml:"profile_id" json:"profile_id"`

	// Version is the profile version string (semantic or free-form).
	Version string `yaml:"version" json:"version"`

	// Name is an optional human-readable name.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Metadata is informational only and does not affect evaluation.
	Metadata Metadata `yaml:"metadata,omitempty" json:"metadata,omitempty"`

	// Rules is the ordered list of rule references. Order is preserved
	// through evaluation but does not affect the aggregate verdict.
	Rules []RuleRef `yaml:"rules,omitempty" json:"rules,omitempty"`

	// Config contains free-form key/value overrides for the profile.
	Config map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// Metadata is the informational block of a profile.
type Metadata struct {
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Standards   []string `yaml:"standards,omitempty" json:"standards,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Owners      []string `yaml:"owners,omitempty" json:"owners,omitempty"`
}

// RuleRef references a rule by id with an optional weight and parameters.
type RuleRef struct {
	// ID is the rule identifier, unique within a profile.
	ID string `yaml:"id" json:"id"`

	// Weight is a non-negative relative weight reserved for future
	// weighted scoring. It is not consumed by verdict aggregation.
	// Default: 1.0
	Weight float64 `yaml:"weight,omitempty" json:"weight,omitempty"`

	// Params contains free-form parameters merged with executor defaults.
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// UnmarshalYAML applies the default weight when the field is absent.
func (r *RuleRef) UnmarshalYAML(value *yaml.Node) error {
	type plain RuleRef
	p := plain{Weight: 1.0}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = RuleRef(p)
	return nil
}
