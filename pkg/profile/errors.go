package profile

import "fmt"

// NotFoundError is returned when a profile reference cannot be resolved,
// either because no document exists for the profile id or because a specific
// version was requested and the stored document carries a different one.
type NotFoundError struct {
	// Ref is the profile reference that failed to resolve.
	Ref string

	// RequestedVersion is the version asked for, empty for bare references.
	RequestedVersion string

	// StoredVersion is the version of the stored document when the failure
	// is a version mismatch, empty otherwise.
	StoredVersion string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.RequestedVersion != "" && e.StoredVersion != "" {
		return fmt.Sprintf("profile not found: %q requested version %s, stored document has version %s",
			e.Ref, e.RequestedVersion, e.StoredVersion)
	}
	return fmt.Sprintf("profile not found: %q", e.Ref)
}

// ValidationError is returned when a profile document fails structural
// validation or schema binding.
type ValidationError struct {
	// ProfileID is the offending profile id when known.
	ProfileID string

	// FilePath is the path of the profile file when loaded from disk.
	FilePath string

	// Message describes the validation failure.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.ProfileID != "":
		return fmt.Sprintf("profile validation failed [%s]: %s", e.ProfileID, e.Message)
	case e.FilePath != "":
		return fmt.Sprintf("profile validation failed in %q: %s", e.FilePath, e.Message)
	default:
		return fmt.Sprintf("profile validation failed: %s", e.Message)
	}
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// LoadError represents a file system level failure while loading a profile.
type LoadError struct {
	// FilePath is the path to the file that failed to load.
	FilePath string

	// Message describes the error.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load profile file %q: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load profile file %q: %s", e.FilePath, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
