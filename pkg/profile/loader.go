package profile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// LoaderConfig contains configuration for the profile loader.
type LoaderConfig struct {
	// MaxFileSize is the maximum profile file size in bytes (default: 1MB).
	MaxFileSize int64

	// AllowedExtensions is the list of allowed file extensions
	// (default: [".yaml", ".yml"]).
	AllowedExtensions []string

	// SkipHidden controls whether to skip hidden files (default: true).
	SkipHidden bool
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		MaxFileSize:       1 * 1024 * 1024,
		AllowedExtensions: []string{".yaml", ".yml"},
		SkipHidden:        true,
	}
}

// Loader loads profile documents from the file system.
type Loader struct {
	config *LoaderConfig
}

// NewLoader creates a new profile loader with the given configuration.
func NewLoader(config *LoaderConfig) *Loader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	return &Loader{config: config}
}

// LoadFromFile loads a single profile document from the given path.
// It performs file size and UTF-8 validation, structural validation of the
// raw document, and finally schema binding.
func (l *Loader) LoadFromFile(path string) (*Profile, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: path, Message: "file not found", Cause: err}
		}
		if os.IsPermission(err) {
			return nil, &LoadError{FilePath: path, Message: "permission denied", Cause: err}
		}
		return nil, &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}

	if fileInfo.Size() > l.config.MaxFileSize {
		return nil, &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", fileInfo.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}

	if !utf8.Valid(data) {
		return nil, &LoadError{FilePath: path, Message: "file contains invalid UTF-8 encoding"}
	}

	profile, err := l.Parse(data)
	if err != nil {
		if verr, ok := err.(*ValidationError); ok && verr.FilePath == "" {
			verr.FilePath = path
		}
		return nil, err
	}

	return profile, nil
}

// Parse validates and binds a raw profile document.
//
// Structural validation happens before schema binding: the document root must
// be a mapping, profile_id and version must be present, and rules (when
// present) must be a sequence. Severity and status values inside rule params
// are deliberately not validated here; normalization happens when findings
// are produced.
func (l *Loader) Parse(data []byte) (*Profile, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Message: "document is not valid YAML", Cause: err}
	}
	if raw == nil {
		return nil, &ValidationError{Message: "document is empty"}
	}

	if err := validateStructure(raw); err != nil {
		return nil, err
	}

	profileID, _ := raw["profile_id"].(string)

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, &ValidationError{
			ProfileID: profileID,
			Message:   "document does not match the profile schema",
			Cause:     err,
		}
	}

	return &profile, nil
}

// validateStructure enforces the structural invariants of a raw profile
// document before it is bound to the Profile schema.
func validateStructure(raw map[string]any) error {
	profileID, _ := raw["profile_id"].(string)

	if _, ok := raw["profile_id"]; !ok {
		return &ValidationError{Message: "missing required field: profile_id"}
	}
	if profileID == "" {
		return &ValidationError{Message: "field profile_id must be a non-empty string"}
	}

	if _, ok := raw["version"]; !ok {
		return &ValidationError{ProfileID: profileID, Message: "missing required field: version"}
	}

	if rules, ok := raw["rules"]; ok && rules != nil {
		if _, isSeq := rules.([]any); !isSeq {
			return &ValidationError{ProfileID: profileID, Message: "field rules must be a sequence"}
		}
	}

	return nil
}

// LoadFromDirectory loads all profile documents from the given directory.
// File names are expected to be "<profile_id>.yaml"; a document whose
// profile_id does not match its file name is rejected so that reference
// resolution stays unambiguous.
func (l *Loader) LoadFromDirectory(dir string) ([]*Profile, error) {
	fileInfo, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: dir, Message: "directory not found", Cause: err}
		}
		return nil, &LoadError{FilePath: dir, Message: "failed to access directory", Cause: err}
	}
	if !fileInfo.IsDir() {
		return nil, &LoadError{FilePath: dir, Message: "not a directory"}
	}

	var profiles []*Profile
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if l.config.SkipHidden && strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !l.hasValidExtension(path) {
			return nil
		}

		profile, err := l.LoadFromFile(path)
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		if profile.ProfileID != base {
			return &ValidationError{
				ProfileID: profile.ProfileID,
				FilePath:  path,
				Message:   fmt.Sprintf("profile_id %q does not match file name %q", profile.ProfileID, base),
			}
		}

		profiles = append(profiles, profile)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// hasValidExtension checks if the file has an allowed profile extension.
func (l *Loader) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, validExt := range l.config.AllowedExtensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}
