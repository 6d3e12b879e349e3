package pipeline

import (
	"fmt"
	"strings"

	"github.com/forge-labs/forge/internal/template"
)

// Context carries everything a step may need for one scaffolding run. It is
// built once by the caller and handed by pointer through the whole pipeline.
type Context struct {
	// RunID tags log records of one run.
	RunID string

	// ProjectPath is the enclosing project folder. Artifacts that live
	// outside the repository (build/, launch script, launcher config) go here.
	ProjectPath string
	// RepoPath is the root of the generated repository.
	RepoPath string

	// IncludedTemplates is ordered; gitignore fragments and submodule
	// declarations are merged in this order.
	IncludedTemplates []template.Template

	ProjectRootName          string
	ProjectRootNameSanitized string
	// SubmoduleRootName prefixes every submodule's relative path.
	SubmoduleRootName string

	MultiLanguage bool
	GitURL        string

	// ExtraSubmodules is appended to by upstream steps and registered
	// after every template's own declarations.
	ExtraSubmodules []template.Submodule
}

// Validate checks the invariants every step relies on.
func (c *Context) Validate() error {
	if c.ProjectPath == "" || c.RepoPath == "" {
		return fmt.Errorf("project and repo paths are required")
	}
	if len(c.IncludedTemplates) == 0 {
		return fmt.Errorf("at least one template must be included")
	}
	if c.ProjectRootName == "" {
		return fmt.Errorf("project root name is required")
	}
	if c.ProjectRootNameSanitized == "" || strings.ContainsAny(c.ProjectRootNameSanitized, " -") {
		return fmt.Errorf("sanitized project name %q must be non-empty and free of spaces and dashes", c.ProjectRootNameSanitized)
	}
	for i, s := range c.ExtraSubmodules {
		if err := validateSubmodule(s); err != nil {
			return fmt.Errorf("extra submodule %d: %w", i, err)
		}
	}
	return nil
}

// AddExtraSubmodules appends submodules for the registration step to pick up.
func (c *Context) AddExtraSubmodules(subs ...template.Submodule) error {
	for _, s := range subs {
		if err := validateSubmodule(s); err != nil {
			return err
		}
	}
	c.ExtraSubmodules = append(c.ExtraSubmodules, subs...)
	return nil
}

func validateSubmodule(s template.Submodule) error {
	if s.Name == "" || s.RelativePath == "" || s.URL == "" {
		return fmt.Errorf("submodule %+v: name, relative_path and url are required", s)
	}
	return nil
}
