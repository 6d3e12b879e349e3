//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forge-labs/forge/internal/template"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // FORGE_HOME
	ProjectsDir  string // project_dir
	TemplatesDir string // templates_dir
	OriginsDir   string // bare-ish repositories used as submodule remotes
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so git and forge operate inside the sandbox.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	env := &testEnv{
		HomeDir:      t.TempDir(),
		ProjectsDir:  t.TempDir(),
		TemplatesDir: t.TempDir(),
		OriginsDir:   t.TempDir(),
	}

	t.Setenv("FORGE_HOME", env.HomeDir)
	t.Setenv("GIT_AUTHOR_NAME", "forge-test")
	t.Setenv("GIT_AUTHOR_EMAIL", "forge-test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "forge-test")
	t.Setenv("GIT_COMMITTER_EMAIL", "forge-test@example.com")
	// Local file remotes are refused by default since git 2.38.
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")

	return env
}

// newOrigin creates a repository with one commit that can be added as a
// submodule, and returns its file:// URL.
func newOrigin(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	dir := filepath.Join(env.OriginsDir, name)
	writeFile(t, filepath.Join(dir, "README.md"), "# "+name+"\n")
	git(t, dir, "init", "-q")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "init")
	return "file://" + filepath.ToSlash(dir)
}

// writeTemplate creates a template folder with the given files.
func writeTemplate(t *testing.T, env *testEnv, folder string, files map[string]string) template.Template {
	t.Helper()
	tmpl := template.New(env.TemplatesDir, folder)
	if err := os.MkdirAll(tmpl.Dir, 0755); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		writeFile(t, tmpl.Path(filepath.FromSlash(rel)), content)
	}
	return tmpl
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected %s to be a file, got directory", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n---\n%s", substr, content)
	}
}
