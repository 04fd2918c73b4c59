package profile

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry is a thread-safe in-memory store of governance profiles keyed by
// profile id. There is exactly one document per id at any time; a bare
// reference resolves to that document regardless of its version ("latest"
// semantics). Updates replace the whole set atomically.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	version  string
	loadTime time.Time
}

// NewRegistry creates a new empty profile registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]*Profile),
		loadTime: time.Now(),
	}
}

// Resolve resolves a profile reference to a profile document.
//
// A bare reference ("<profile_id>") succeeds whenever the id exists. A
// versioned reference ("<profile_id>@<version>") additionally requires the
// stored document's version to match; a mismatch fails with *NotFoundError
// carrying both versions.
func (r *Registry) Resolve(ref string) (*Profile, error) {
	parsed := ParseRef(ref)

	r.mu.RLock()
	profile, ok := r.profiles[parsed.ProfileID]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Ref: ref, RequestedVersion: parsed.Version}
	}

	if !parsed.Latest() && profile.Version != parsed.Version {
		return nil, &NotFoundError{
			Ref:              ref,
			RequestedVersion: parsed.Version,
			StoredVersion:    profile.Version,
		}
	}

	return profile, nil
}

// Register adds a profile to the registry, replacing any existing document
// with the same profile id.
func (r *Registry) Register(p *Profile) error {
	if p == nil {
		return &ValidationError{Message: "profile cannot be nil"}
	}
	if p.ProfileID == "" {
		return &ValidationError{Message: "profile id cannot be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[p.ProfileID] = p
	r.updateVersion()

	return nil
}

// Replace atomically replaces the entire profile set. This is the hot-reload
// path: the new set is validated in full before any of it becomes visible,
// so a bad reload leaves the previous profiles active.
func (r *Registry) Replace(profiles []*Profile) error {
	newProfiles := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		if p == nil {
			return &ValidationError{Message: "profile cannot be nil"}
		}
		if p.ProfileID == "" {
			return &ValidationError{Message: "profile id cannot be empty"}
		}
		if _, dup := newProfiles[p.ProfileID]; dup {
			return &ValidationError{
				ProfileID: p.ProfileID,
				Message:   "duplicate profile id in replacement set",
			}
		}
		newProfiles[p.ProfileID] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = newProfiles
	r.loadTime = time.Now()
	r.updateVersion()

	return nil
}

// Get retrieves a profile by id without reference semantics.
func (r *Registry) Get(profileID string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[profileID]
	return p, ok
}

// Count returns the number of profiles in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.profiles)
}

// ProfileIDs returns a sorted list of all profile ids in the registry.
func (r *Registry) ProfileIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Version returns an opaque identifier for the current registry contents.
// It changes whenever the profile set changes.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.version
}

// LoadTime returns when the profile set was last replaced.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loadTime
}

// updateVersion recomputes the registry version hash.
// Callers must hold the write lock.
func (r *Registry) updateVersion() {
	h := sha256.New()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := r.profiles[id]
		h.Write([]byte(p.ProfileID))
		h.Write([]byte{0})
		h.Write([]byte(p.Version))
		h.Write([]byte{0})
	}

	r.version = fmt.Sprintf("%x", h.Sum(nil))[:16]
}
