//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/forge-labs/forge/internal/catalog"
	"github.com/forge-labs/forge/internal/languages"
	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline/steps"
	"github.com/forge-labs/forge/internal/project"
	"github.com/forge-labs/forge/internal/scaffold"
	"github.com/forge-labs/forge/internal/submodule"
)

// TestFullFlowWithGit runs the multi-language pipeline with real git
// submodule registration: select -> build context -> flow -> inspect repo.
func TestFullFlowWithGit(t *testing.T) {
	env := setupTestEnv(t)
	loggingURL := newOrigin(t, env, "md-logging")
	bridgeURL := newOrigin(t, env, "md-bridge")

	writeTemplate(t, env, "default", map[string]string{
		"gitignore.txt":   ".idea/",
		"submodules.json": fmt.Sprintf(`[{"name": "MD.Logging", "relative_path": "components/MD.Logging", "url": %q}]`, loggingURL),
	})
	writeTemplate(t, env, "go", map[string]string{"gitignore.txt": "bin/"})
	writeTemplate(t, env, "csharp", map[string]string{
		"gitignore.txt":         "obj/",
		"submodules_multi.json": fmt.Sprintf(`[{"name": "MD.Bridge", "relative_path": "components/MD.Bridge", "url": %q}]`, bridgeURL),
	})
	router := filepath.Join(env.HomeDir, "router.exe")
	writeFile(t, router, "router")

	c, err := project.NewContext(project.Selection{
		ProjectPath:  filepath.Join(env.ProjectsDir, "Demo App"),
		Languages:    languages.Default().All(),
		TemplatesDir: env.TemplatesDir,
		GitURL:       "https://example.com/demo.git",
	})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	var logs bytes.Buffer
	p := steps.Build(steps.Deps{
		Log:       logging.New(&logs, logging.LevelTrace, "ProjectForge"),
		Registrar: &submodule.GitRegistrar{},
		RouterExe: router,
		VenvDir:   t.TempDir(),
	}, c.MultiLanguage)

	if _, err := p.Flow(context.Background(), c); err != nil {
		t.Fatalf("Flow: %v\n%s", err, logs.String())
	}

	gitmodules := readFile(t, filepath.Join(c.RepoPath, ".gitmodules"))
	assertContains(t, gitmodules, `[submodule "MD.Logging"]`)
	assertContains(t, gitmodules, "path = components/MD.Bridge")
	assertFileExists(t, filepath.Join(c.RepoPath, "components", "MD.Logging", "README.md"))
	assertFileExists(t, filepath.Join(c.RepoPath, "router", "router.exe"))
	assertFileExists(t, filepath.Join(c.ProjectPath, "launch.ps1"))
	assertDirExists(t, filepath.Join(c.ProjectPath, "build"))

	if got := readFile(t, filepath.Join(c.RepoPath, ".gitignore")); got != ".idea/\n\nbin/\n\nobj/\n\n" {
		t.Errorf(".gitignore = %q", got)
	}
}

// TestFailingSubmoduleDoesNotAbort registers one reachable and one
// unreachable submodule; the run succeeds and the reachable one is added.
func TestFailingSubmoduleDoesNotAbort(t *testing.T) {
	env := setupTestEnv(t)
	goodURL := newOrigin(t, env, "good")
	badURL := "file://" + filepath.ToSlash(filepath.Join(env.OriginsDir, "missing"))

	writeTemplate(t, env, "default", map[string]string{
		"submodules.json": fmt.Sprintf(`[
			{"name": "bad", "relative_path": "components/bad", "url": %q},
			{"name": "good", "relative_path": "components/good", "url": %q}
		]`, badURL, goodURL),
	})
	writeTemplate(t, env, "go", nil)

	c, err := project.NewContext(project.Selection{
		ProjectPath:  filepath.Join(env.ProjectsDir, "partial"),
		Languages:    []languages.Language{{Name: "Golang", TemplateFolder: "go"}},
		TemplatesDir: env.TemplatesDir,
	})
	if err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	p := steps.Build(steps.Deps{
		Log:       logging.New(&logs, logging.LevelTrace, "ProjectForge"),
		Registrar: &submodule.GitRegistrar{},
	}, c.MultiLanguage)
	if _, err := p.Flow(context.Background(), c); err != nil {
		t.Fatalf("Flow: %v", err)
	}

	assertContains(t, logs.String(), "name=bad")
	assertFileExists(t, filepath.Join(c.RepoPath, "components", "good", "README.md"))
}

// TestBundledScriptRegistrar registers through the add_submodule.sh copied
// into the repo by CopyUtilityScripts.
func TestBundledScriptRegistrar(t *testing.T) {
	env := setupTestEnv(t)
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	url := newOrigin(t, env, "scripted")

	writeTemplate(t, env, "default", map[string]string{
		"submodules.json": fmt.Sprintf(`[{"name": "scripted", "relative_path": "components/scripted", "url": %q}]`, url),
	})
	writeTemplate(t, env, "go", nil)

	c, err := project.NewContext(project.Selection{
		ProjectPath:  filepath.Join(env.ProjectsDir, "scripted"),
		Languages:    []languages.Language{{Name: "Golang", TemplateFolder: "go"}},
		TemplatesDir: env.TemplatesDir,
	})
	if err != nil {
		t.Fatal(err)
	}

	script := filepath.Join(c.RepoPath, "scripts", scaffold.SubmoduleSh)
	p := steps.Build(steps.Deps{
		Registrar: &submodule.ScriptRegistrar{Interpreter: "sh", Script: script},
	}, false)
	if _, err := p.Flow(context.Background(), c); err != nil {
		t.Fatalf("Flow: %v", err)
	}
	assertContains(t, readFile(t, filepath.Join(c.RepoPath, ".gitmodules")), `[submodule "scripted"]`)
}

// TestCatalogCloneFeedsPipeline clones the template library from git and
// checks the cloned templates are usable.
func TestCatalogCloneFeedsPipeline(t *testing.T) {
	env := setupTestEnv(t)

	origin := filepath.Join(env.OriginsDir, "templates")
	writeFile(t, filepath.Join(origin, "default", "gitignore.txt"), "*.log")
	writeFile(t, filepath.Join(origin, "go", "gitignore.txt"), "vendor/")
	git(t, origin, "init", "-q")
	git(t, origin, "add", ".")
	git(t, origin, "commit", "-q", "-m", "templates")

	lib := &catalog.Catalog{Dir: filepath.Join(env.HomeDir, "templates"), RepoURL: "file://" + filepath.ToSlash(origin)}
	if err := lib.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}

	c, err := project.NewContext(project.Selection{
		ProjectPath:  filepath.Join(env.ProjectsDir, "from-catalog"),
		Languages:    []languages.Language{{Name: "Golang", TemplateFolder: "go"}},
		TemplatesDir: lib.Dir,
	})
	if err != nil {
		t.Fatal(err)
	}
	if missing := project.MissingTemplates(c.IncludedTemplates); len(missing) > 0 {
		t.Fatalf("missing templates after clone: %v", missing)
	}

	p := steps.Build(steps.Deps{Registrar: &submodule.GitRegistrar{}}, false)
	if _, err := p.Flow(context.Background(), c); err != nil {
		t.Fatalf("Flow: %v", err)
	}
	if got := readFile(t, filepath.Join(c.RepoPath, ".gitignore")); got != "*.log\n\nvendor/\n\n" {
		t.Errorf(".gitignore = %q", got)
	}
}
