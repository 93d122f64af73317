// Package template provides the markdown skeletons seeded into the external
// editor when a proposal description starts empty. Each proposal kind has a
// built-in skeleton; a file named <kind>.md under <data-dir>/templates
// overrides it.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daoterm/daoterm/internal/logger"
)

// Variables holds the values injected into template placeholders.
type Variables struct {
	Name string // proposal name, may be empty while the wizard is mid-flight
	DAO  string // DAO display name
	Kind string // proposal kind: transfer, config, deps, vesting
	Date string // today, YYYY-MM-DD
}

// Render replaces {{variable}} placeholders with actual values.
// Supported: {{name}}, {{dao}}, {{kind}}, {{date}}.
func Render(tmpl string, vars Variables) string {
	replacements := map[string]string{
		"{{name}}": vars.Name,
		"{{dao}}":  vars.DAO,
		"{{kind}}": vars.Kind,
		"{{date}}": vars.Date,
	}

	result := tmpl
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// LoadFromFile loads a template from a file.
func LoadFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template file %s: %w", path, err)
	}
	return string(data), nil
}

// ForKind returns the template for a proposal kind. When dataDir holds a
// templates/<kind>.md override it wins; otherwise the built-in skeleton is
// used. An unreadable override falls back to the built-in.
func ForKind(dataDir, kind string) string {
	if dataDir != "" {
		path := filepath.Join(dataDir, "templates", kind+".md")
		if tmpl, err := LoadFromFile(path); err == nil {
			logger.Debug("using custom %s template from %s", kind, path)
			return tmpl
		}
	}
	if tmpl, ok := defaults[kind]; ok {
		return tmpl
	}
	return genericTemplate
}

// Seed renders the template for a proposal kind with the given variables.
func Seed(dataDir, kind string, vars Variables) string {
	if vars.Kind == "" {
		vars.Kind = kind
	}
	return Render(ForKind(dataDir, kind), vars)
}
