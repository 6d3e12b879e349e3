package template

import (
	"fmt"
	"path/filepath"
)

// Metadata file names looked up inside a template directory.
const (
	GitignoreFile       = "gitignore.txt"
	GitignoreMultiFile  = "gitignore_multi.txt"
	SubmodulesFile      = "submodules.json"
	SubmodulesMultiFile = "submodules_multi.json"
	FrameworksFile      = "frameworks.json"
	ManifestFile        = "template.yaml"
)

// DefaultName is the template folder included in every project.
const DefaultName = "default"

// Template references one template directory. It never owns the contents.
type Template struct {
	Name string
	Dir  string
}

// New returns the template stored in folder under root.
func New(root, folder string) Template {
	return Template{Name: folder, Dir: filepath.Join(root, folder)}
}

// Path joins name onto the template directory.
func (t Template) Path(name string) string {
	return filepath.Join(t.Dir, name)
}

// Submodule is one external repository to link into the generated repo.
type Submodule struct {
	Name         string `json:"name" yaml:"name"`
	RelativePath string `json:"relative_path" yaml:"relative_path"`
	URL          string `json:"url" yaml:"url"`
}

// Framework is one optional starter a template offers.
type Framework struct {
	Name       string      `json:"name"`
	CopyToRoot string      `json:"copy_to_root"`
	Submodules []Submodule `json:"submodules,omitempty"`
}

// Source resolves CopyToRoot inside t. Paths that would leave the template
// directory are rejected.
func (f Framework) Source(t Template) (string, error) {
	rel := filepath.FromSlash(f.CopyToRoot)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("framework %q: copy_to_root %s is outside the template", f.Name, f.CopyToRoot)
	}
	return t.Path(rel), nil
}

// Manifest is the optional template.yaml.
type Manifest struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	// Requires is a semver constraint on the CLI version, e.g. ">= 0.3.0".
	Requires string `yaml:"requires,omitempty" json:"requires,omitempty"`
}
