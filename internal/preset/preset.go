// Package preset loads and saves EQ parameter presets as TOML files.
// Paths may start with ~ for the user's home directory.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/cwbudde/simple-eq/eq"
)

// ErrBadAssignment is returned by Apply for malformed name=value pairs.
var ErrBadAssignment = errors.New("preset: expected name=value")

// Load reads the preset at path into s. A rejected preset leaves s
// unchanged.
func Load(path string, s *eq.Store) error {
	resolved, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	if err := eq.DecodeState(data, s); err != nil {
		return fmt.Errorf("preset: %s: %w", resolved, err)
	}
	return nil
}

// Save writes every parameter of s to path, creating parent directories.
func Save(path string, s *eq.Store) error {
	resolved, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	data, err := eq.EncodeState(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}

// Apply parses "Parameter Name=value" and sets it on s. Bool parameters
// also accept true and false.
func Apply(assignment string, s *eq.Store) error {
	name, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadAssignment, assignment)
	}
	name = strings.TrimSpace(name)
	id, ok := eq.Lookup(name)
	if !ok {
		return fmt.Errorf("preset: %w %q", eq.ErrUnknownParameter, name)
	}

	value = strings.TrimSpace(value)
	if b, err := strconv.ParseBool(value); err == nil && eq.Layout()[id].Kind == eq.KindBool {
		s.SetBool(id, b)
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("preset: %s: %w", name, err)
	}
	s.Set(id, v)
	return nil
}
