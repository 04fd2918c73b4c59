// Package config provides configuration loading, defaults, and validation
// for Saturn.
//
// Configuration is loaded from a YAML file, defaults are applied for any
// unset fields, and the result is validated before use. Environment
// variables using the SATURN_SECTION_FIELD naming convention may override
// file-based values.
//
// The package also loads the policy mappings table, which maps use cases
// and system types to governance profile references. No other package reads
// the process environment; configuration is always threaded explicitly into
// the evaluation and planning functions.
package config
