package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/submodule"
	"github.com/forge-labs/forge/internal/template"
)

// writeTemplate creates a template folder with the given files.
func writeTemplate(t *testing.T, root, name string, files map[string]string) template.Template {
	t.Helper()
	tmpl := template.New(root, name)
	if err := os.MkdirAll(tmpl.Dir, 0755); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		p := tmpl.Path(filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return tmpl
}

func subsJSON(t *testing.T, names ...string) string {
	t.Helper()
	subs := make([]template.Submodule, len(names))
	for i, n := range names {
		subs[i] = template.Submodule{Name: n, RelativePath: "components/" + n, URL: "https://example.com/" + n + ".git"}
	}
	data, err := json.Marshal(subs)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// newContext returns a context whose project folder exists and whose repo
// folder has been created.
func newContext(t *testing.T, multi bool, templates ...template.Template) *pipeline.Context {
	t.Helper()
	project := filepath.Join(t.TempDir(), "My-App")
	c := &pipeline.Context{
		RunID:                    "test",
		ProjectPath:              project,
		RepoPath:                 filepath.Join(project, "My-App"),
		IncludedTemplates:        templates,
		ProjectRootName:          "My-App",
		ProjectRootNameSanitized: "my_app",
		MultiLanguage:            multi,
		GitURL:                   "https://example.com/my-app.git",
	}
	if err := os.MkdirAll(c.RepoPath, 0755); err != nil {
		t.Fatal(err)
	}
	return c
}

// bufferLogger returns a trace-level logger and the buffer it writes to.
func bufferLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.New(&buf, logging.LevelTrace, "ProjectForge"), &buf
}

// fakeRegistrar records requests and fails the names in fail.
type fakeRegistrar struct {
	fail     map[string]bool
	requests []submodule.Request
}

func (f *fakeRegistrar) Register(_ context.Context, req submodule.Request) (*submodule.Output, error) {
	f.requests = append(f.requests, req)
	if f.fail[req.Name] {
		return &submodule.Output{ExitCode: 1, Stderr: "fatal: " + req.Name}, nil
	}
	return &submodule.Output{Stdout: "added " + req.Name}, nil
}

func (f *fakeRegistrar) names() []string {
	out := make([]string, len(f.requests))
	for i, r := range f.requests {
		out[i] = r.Name
	}
	return out
}

// countLines counts log lines containing every one of parts.
func countLines(log string, parts ...string) int {
	n := 0
	for _, line := range strings.Split(log, "\n") {
		all := true
		for _, p := range parts {
			if !strings.Contains(line, p) {
				all = false
				break
			}
		}
		if all && line != "" {
			n++
		}
	}
	return n
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// registrarFunc succeeds or errors according to fn.
type registrarFunc func() error

func (f registrarFunc) Register(_ context.Context, _ submodule.Request) (*submodule.Output, error) {
	if err := f(); err != nil {
		return nil, err
	}
	return &submodule.Output{}, nil
}
