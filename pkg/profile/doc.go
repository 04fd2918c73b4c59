// Package profile implements the governance profile registry.
//
// A profile is a versioned YAML document declaring the rules a target is
// evaluated against. Profiles are loaded from a directory with one file per
// profile id, validated structurally before schema binding, and served from
// a thread-safe in-memory registry addressed by profile references of the
// form "<profile_id>@<version>" (or a bare id for "latest").
//
// The registry supports atomic hot-reload driven by filesystem events.
package profile
