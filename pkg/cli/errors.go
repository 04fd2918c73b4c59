package cli

import (
	"errors"
	"fmt"

	"gravitas-hq/saturn/pkg/profile"
)

// Exit codes for the saturn binary. Kept stable so scripts can branch on
// the failure class.
const (
	// ExitOK means the command succeeded.
	ExitOK = 0
	// ExitError means a generic command failure.
	ExitError = 1
	// ExitConfig means the configuration failed to load or validate.
	ExitConfig = 3
	// ExitNotFound means a profile reference could not be resolved.
	ExitNotFound = 4
	// ExitValidation means a profile document failed validation.
	ExitValidation = 5
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error to the process exit code for its failure class.
// Profile resolution failures map to ExitNotFound, profile validation
// failures to ExitValidation, configuration failures to ExitConfig, and
// everything else to ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var notFound *profile.NotFoundError
	if errors.As(err, &notFound) {
		return ExitNotFound
	}

	var invalid *profile.ValidationError
	if errors.As(err, &invalid) {
		return ExitValidation
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}

	return ExitError
}
