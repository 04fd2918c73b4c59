package profile

import "strings"

// Ref is a parsed profile reference.
type Ref struct {
	// ProfileID is the profile identifier portion of the reference.
	ProfileID string

	// Version is the requested version, empty when the reference is bare.
	Version string
}

// ParseRef parses a profile reference of the form "<profile_id>@<version>"
// or a bare "<profile_id>" meaning "latest". The split happens at the first
// "@" so version strings may themselves contain "@".
func ParseRef(ref string) Ref {
	id, version, found := strings.Cut(ref, "@")
	if !found {
		return Ref{ProfileID: ref}
	}
	return Ref{ProfileID: id, Version: version}
}

// Latest reports whether the reference requests the latest version.
func (r Ref) Latest() bool {
	return r.Version == ""
}

// String reassembles the reference in canonical form.
func (r Ref) String() string {
	if r.Version == "" {
		return r.ProfileID
	}
	return r.ProfileID + "@" + r.Version
}
