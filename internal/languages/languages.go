// Package languages holds the table of languages a project can be created
// with. The table is immutable once built: callers receive copies, and the
// CLI injects it at startup so tests can swap in their own.
package languages

import (
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

//go:embed languages.yaml
var builtin []byte

// Language maps a display name to the template folder that implements it.
type Language struct {
	Name           string `yaml:"name"`
	TemplateFolder string `yaml:"template_folder"`
}

// Table is an ordered, read-only set of languages.
type Table struct {
	entries []Language
}

// New builds a Table, rejecting empty or duplicate entries.
func New(entries []Language) (Table, error) {
	if len(entries) == 0 {
		return Table{}, fmt.Errorf("language table is empty")
	}
	seen := make(map[string]bool, len(entries))
	for i, l := range entries {
		if l.Name == "" || l.TemplateFolder == "" {
			return Table{}, fmt.Errorf("language %d: name and template_folder are required", i)
		}
		if seen[l.Name] {
			return Table{}, fmt.Errorf("duplicate language %q", l.Name)
		}
		seen[l.Name] = true
	}
	return Table{entries: append([]Language(nil), entries...)}, nil
}

// Default returns the built-in table.
func Default() Table {
	t, err := parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in language table: %v", err))
	}
	return t
}

// Load reads a table from a YAML file. An empty path yields Default().
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading language table: %w", err)
	}
	t, err := parse(data)
	if err != nil {
		return Table{}, fmt.Errorf("parsing language table %s: %w", path, err)
	}
	return t, nil
}

func parse(data []byte) (Table, error) {
	var entries []Language
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return Table{}, err
	}
	return New(entries)
}

// All returns a copy of the entries in table order.
func (t Table) All() []Language {
	return append([]Language(nil), t.entries...)
}

// Names returns the display names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, l := range t.entries {
		names[i] = l.Name
	}
	return names
}

// Len returns the number of languages.
func (t Table) Len() int { return len(t.entries) }

// At returns the language at index i.
func (t Table) At(i int) (Language, error) {
	if i < 0 || i >= len(t.entries) {
		return Language{}, fmt.Errorf("language index %d out of range [0,%d)", i, len(t.entries))
	}
	return t.entries[i], nil
}

// Lookup finds a language by display name.
func (t Table) Lookup(name string) (Language, bool) {
	for _, l := range t.entries {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}
