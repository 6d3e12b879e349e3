package template

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"
)

// Gitignore returns the template's gitignore fragment.
func (t Template) Gitignore() (string, error) {
	return t.readText(GitignoreFile)
}

// GitignoreMulti returns the fragment only used for multi-language projects.
func (t Template) GitignoreMulti() (string, error) {
	return t.readText(GitignoreMultiFile)
}

// Submodules returns the template's declared submodules.
func (t Template) Submodules() ([]Submodule, error) {
	return loadJSON[[]Submodule](t.Path(SubmodulesFile), KindSubmodules)
}

// MultiSubmodules returns the extra submodules declared for multi-language
// projects.
func (t Template) MultiSubmodules() ([]Submodule, error) {
	return loadJSON[[]Submodule](t.Path(SubmodulesMultiFile), KindSubmodules)
}

// Frameworks returns the optional frameworks the template offers.
func (t Template) Frameworks() ([]Framework, error) {
	return loadJSON[[]Framework](t.Path(FrameworksFile), KindFrameworks)
}

// Manifest returns the parsed template.yaml.
func (t Template) Manifest() (*Manifest, error) {
	path := t.Path(ManifestFile)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	issues, err := validateYAML(KindManifest, data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &ShapeError{File: path, Issues: issues}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// Exists reports whether the template directory is present.
func (t Template) Exists() bool {
	info, err := os.Stat(t.Dir)
	return err == nil && info.IsDir()
}

func (t Template) readText(name string) (string, error) {
	data, err := readFile(t.Path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// loadJSON validates path against kind and decodes it into T.
func loadJSON[T any](path string, kind Kind) (T, error) {
	var out T
	data, err := readFile(path)
	if err != nil {
		return out, err
	}

	issues, err := validateJSON(kind, data)
	if err != nil {
		return out, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		return out, &ShapeError{File: path, Issues: issues}
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding %s: %w", path, err)
	}
	return out, nil
}

// readFile reads a regular file. A missing path, or one that is not a
// regular file, keeps fs.ErrNotExist in the chain.
func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("reading file %s: not a regular file: %w", path, fs.ErrNotExist)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
