package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse parses a scenario from YAML bytes.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if s.ID == "" {
		return nil, &LoadError{
			Message: "scenario ID is required",
		}
	}

	if len(s.Steps) == 0 {
		return nil, &LoadError{
			Message: "scenario must have at least one step",
		}
	}

	for i := range s.Steps {
		if s.Steps[i].Action == "" {
			return nil, &LoadError{
				Message: fmt.Sprintf("step %d has no action", i+1),
			}
		}
	}

	return &s, nil
}

// Load loads a scenario from a file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	s, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	return s, nil
}

// LoadDirectory loads all scenarios from a directory, sorted by file name.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		s, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}

// Filter returns the scenarios whose ID or name contains the pattern,
// case-insensitive. An empty pattern matches everything.
func Filter(scenarios []*Scenario, pattern string) []*Scenario {
	if pattern == "" {
		return scenarios
	}

	p := strings.ToLower(pattern)
	var result []*Scenario
	for _, s := range scenarios {
		if strings.Contains(strings.ToLower(s.ID), p) || strings.Contains(strings.ToLower(s.Name), p) {
			result = append(result, s)
		}
	}
	return result
}
