package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gravitas-hq/saturn/pkg/cli"
	"gravitas-hq/saturn/pkg/profile"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate governance profile files",
	Long: `Validate governance profile files for structural errors.

The lint command parses profile files and performs validation:
  - YAML syntax validation
  - Required fields (profile_id, version)
  - Rule list structure
  - Filename/profile_id agreement for directory lints

Examples:
  # Lint a single file
  saturn lint --file profiles/ai-act-high-risk.yaml

  # Lint a directory
  saturn lint --dir profiles/

  # JSON output for CI/CD
  saturn lint --dir profiles/ --format json`,
	RunE: lintProfiles,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "profile file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of profile files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// lintResult represents the validation result for a single profile file.
type lintResult struct {
	File      string `json:"file"`
	Valid     bool   `json:"valid"`
	ProfileID string `json:"profile_id,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

func lintProfiles(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list profile files: %w", err)
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no profile files found")
	}

	loader := profile.NewLoader(nil)
	results := make([]lintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintProfileFile(loader, file))
	}

	if lintFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		printLintResults(results)
	}

	for _, result := range results {
		if !result.Valid {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
	}
	return nil
}

func lintProfileFile(loader *profile.Loader, path string) lintResult {
	result := lintResult{File: path}

	p, err := loader.LoadFromFile(path)
	if err != nil {
		var invalid *profile.ValidationError
		var loadErr *profile.LoadError
		switch {
		case errors.As(err, &invalid):
			result.Error = invalid.Message
			result.ProfileID = invalid.ProfileID
		case errors.As(err, &loadErr):
			result.Error = loadErr.Message
		default:
			result.Error = err.Error()
		}
		return result
	}

	result.Valid = true
	result.ProfileID = p.ProfileID
	result.Version = p.Version
	return result
}

func printLintResults(results []lintResult) {
	invalid := 0
	for _, result := range results {
		if result.Valid {
			fmt.Printf("✓ %s (%s@%s)\n", result.File, result.ProfileID, result.Version)
			continue
		}
		fmt.Printf("✗ %s: %s\n", result.File, result.Error)
		invalid++
	}

	fmt.Println()
	fmt.Printf("Summary: %d file(s), %d invalid\n", len(results), invalid)
}
