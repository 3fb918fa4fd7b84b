// Package config reads container deployment configuration from the
// two supported sources: flat prefixed build variables and a single
// JSON or YAML manifest document.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Provider is the flat-variable datastore the build tool exposes.
// GetVar reports whether the variable is set at all, so callers can
// distinguish an empty value from a missing one.
type Provider interface {
	GetVar(name string) (string, bool)
}

// MapProvider is a Provider backed by a plain map. It serves tests and
// the CLI's --var flags.
type MapProvider map[string]string

func (m MapProvider) GetVar(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// FileProvider loads a KEY=VALUE conf file into a MapProvider.
func FileProvider(path string) (MapProvider, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading conf file %s: %w", path, err)
	}
	return MapProvider(vars), nil
}

// Get returns the variable's value or def when unset.
func Get(p Provider, name, def string) string {
	if v, ok := p.GetVar(name); ok {
		return v
	}
	return def
}

// Sanitize rewrites an entity name for use in a variable key:
// every non-alphanumeric rune becomes an underscore.
func Sanitize(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

// EntityVar resolves a per-entity field variable. The sanitized name
// is tried first, then the raw name, then def. Names that are already
// clean resolve in one step; the raw fallback keeps variables written
// against the unsanitized name working.
func EntityVar(p Provider, prefix, name, field, def string) string {
	if v, ok := p.GetVar(prefix + "_" + Sanitize(name) + "_" + field); ok {
		return v
	}
	if v, ok := p.GetVar(prefix + "_" + name + "_" + field); ok {
		return v
	}
	return def
}

// OCIArch maps the build tool's target architecture to the OCI
// architecture label. Unknown values pass through unchanged.
func OCIArch(targetArch string) string {
	switch targetArch {
	case "x86_64":
		return "amd64"
	case "aarch64":
		return "arm64"
	default:
		return targetArch
	}
}
