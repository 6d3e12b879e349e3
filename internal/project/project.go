// Package project turns the user's selections into a pipeline.Context.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/forge-labs/forge/internal/languages"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/template"
)

// ListProjects returns the child directories of dir, sorted by name.
// Hidden directories are skipped.
func ListProjects(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing projects in %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Sanitize lowercases name and replaces spaces and dashes with underscores.
func Sanitize(name string) string {
	r := strings.NewReplacer(" ", "_", "-", "_")
	return r.Replace(strings.ToLower(name))
}

// Selection is what the user picked.
type Selection struct {
	// ProjectPath is the chosen project folder.
	ProjectPath  string
	Languages    []languages.Language
	GitURL       string
	TemplatesDir string
	// SubmoduleRootName prefixes every submodule path. Usually empty.
	SubmoduleRootName string
}

// Templates returns the default template followed by each language's.
func (s Selection) Templates() []template.Template {
	out := []template.Template{template.New(s.TemplatesDir, template.DefaultName)}
	for _, l := range s.Languages {
		out = append(out, template.New(s.TemplatesDir, l.TemplateFolder))
	}
	return out
}

// MultiLanguage reports whether more than one language was picked.
func (s Selection) MultiLanguage() bool {
	return len(s.Languages) > 1
}

// NewContext derives the run context from a selection.
func NewContext(s Selection) (*pipeline.Context, error) {
	if s.ProjectPath == "" {
		return nil, fmt.Errorf("no project folder selected")
	}
	if len(s.Languages) == 0 {
		return nil, fmt.Errorf("select at least one language")
	}
	if s.TemplatesDir == "" {
		return nil, fmt.Errorf("templates directory is not configured")
	}

	projectPath, err := filepath.Abs(s.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", s.ProjectPath, err)
	}
	root := filepath.Base(projectPath)

	c := &pipeline.Context{
		RunID:                    uuid.NewString(),
		ProjectPath:              projectPath,
		RepoPath:                 filepath.Join(projectPath, root),
		IncludedTemplates:        s.Templates(),
		ProjectRootName:          root,
		ProjectRootNameSanitized: Sanitize(root),
		SubmoduleRootName:        s.SubmoduleRootName,
		MultiLanguage:            s.MultiLanguage(),
		GitURL:                   s.GitURL,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MissingTemplates returns the templates whose directory does not exist.
func MissingTemplates(ts []template.Template) []template.Template {
	var missing []template.Template
	for _, t := range ts {
		if !t.Exists() {
			missing = append(missing, t)
		}
	}
	return missing
}
