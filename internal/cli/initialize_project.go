package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/forge-labs/forge/internal/config"
	"github.com/forge-labs/forge/internal/languages"
	"github.com/forge-labs/forge/internal/pipeline/steps"
	"github.com/forge-labs/forge/internal/project"
	"github.com/forge-labs/forge/internal/prompt"
	"github.com/forge-labs/forge/internal/submodule"
	"github.com/forge-labs/forge/internal/template"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initializeProjectCmd)
}

var initializeProjectCmd = &cobra.Command{
	Use:     "initialize-project",
	Aliases: []string{"ip"},
	Short:   "Create a new project from templates",
	Long: `Create a new project inside one of the folders under project_dir.

You pick the project folder, one or more languages and the git remote. The
default template plus one template per language are then applied: folder
skeleton, utility scripts, combined .gitignore, optional frameworks and git
submodules. Picking more than one language also installs the router binary,
the launch script and the venv link.

On first run the default config file is written and the command exits so
it can be edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInitializeProject(cmd.Context(), initRun{
			driver:  newDriver(),
			console: cmd.ErrOrStderr(),
		})
	},
}

// initRun carries the collaborators of one initialize-project run.
type initRun struct {
	driver  prompt.Driver
	console io.Writer
	// registrar overrides the one derived from settings.
	registrar submodule.Registrar
}

func runInitializeProject(ctx context.Context, r initRun) error {
	created, err := config.Bootstrap()
	if err != nil {
		return err
	}
	if created {
		log, closeLog := openLogger(r.console, "debug")
		defer closeLog()
		mainLog := log.Sub("MAIN")
		mainLog.Warn("Configuration file not found. Created one.")
		mainLog.Info("Default configuration file created", "path", config.FilePath())
		mainLog.Warn("Make sure to update the configuration file with your desired settings before relaunching the app.")
		return nil
	}

	config.Load()
	settings, err := config.Read()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	log, closeLog := openLogger(r.console, settings.LogLevel)
	defer closeLog()
	app := log.Sub("APP")

	table, err := loadLanguages(settings.LanguagesFile)
	if err != nil {
		return err
	}

	sel, err := askSelection(ctx, r.driver, settings, table)
	if err != nil {
		return err
	}

	ts := sel.Templates()
	if missing := project.MissingTemplates(ts); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, t := range missing {
			names[i] = t.Dir
		}
		return fmt.Errorf("template folder(s) not found: %s", strings.Join(names, ", "))
	}
	if err := checkCompatibility(ts, buildVersion); err != nil {
		return err
	}

	c, err := project.NewContext(sel)
	if err != nil {
		return err
	}
	runLog := log.With("run_id", c.RunID)
	app.Info("Initializing project", "project", c.ProjectRootName, "languages", len(sel.Languages), "multi_language", c.MultiLanguage)

	scripts, err := scriptsDir(settings.ScriptsDir)
	if err != nil {
		return err
	}
	registrar := r.registrar
	if registrar == nil {
		registrar = newRegistrar(settings)
	}

	p := steps.Build(steps.Deps{
		Log:        runLog,
		Registrar:  registrar,
		Chooser:    steps.PromptChooser{Driver: r.driver},
		ScriptsDir: scripts,
		RouterExe:  settings.RouterExe,
		VenvDir:    settings.VenvDir,
	}, c.MultiLanguage)

	if _, err := p.Flow(ctx, c); err != nil {
		return err
	}

	runLog.Sub("APP").Info("Project initialized successfully.", "path", c.RepoPath)
	return nil
}

// askSelection prompts for project folder, languages and git URL.
func askSelection(ctx context.Context, d prompt.Driver, s *config.Settings, table languages.Table) (project.Selection, error) {
	projects, err := project.ListProjects(s.ProjectDir)
	if err != nil {
		return project.Selection{}, err
	}
	if len(projects) == 0 {
		return project.Selection{}, fmt.Errorf("no project folders found in %s", s.ProjectDir)
	}
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = filepath.Base(p)
	}

	idx, err := d.Select(ctx, prompt.SelectConfig{
		Message:  "Project to initialize:",
		Options:  names,
		PageSize: 15,
	})
	if err != nil {
		return project.Selection{}, err
	}

	picks, err := d.MultiSelect(ctx, prompt.SelectConfig{
		Message:  "Languages:",
		Options:  table.Names(),
		Required: true,
	})
	if err != nil {
		return project.Selection{}, err
	}
	langs := make([]languages.Language, 0, len(picks))
	for _, i := range picks {
		l, err := table.At(i)
		if err != nil {
			return project.Selection{}, err
		}
		langs = append(langs, l)
	}

	gitURL, err := d.Input(ctx, prompt.InputConfig{
		Message: "Git remote URL (optional):",
	})
	if err != nil {
		return project.Selection{}, err
	}

	return project.Selection{
		ProjectPath:  projects[idx],
		Languages:    langs,
		GitURL:       strings.TrimSpace(gitURL),
		TemplatesDir: s.TemplatesDir,
	}, nil
}

// checkCompatibility rejects templates whose template.yaml requires another
// CLI version. Templates without a manifest are accepted.
func checkCompatibility(ts []template.Template, version string) error {
	for _, t := range ts {
		m, err := t.Manifest()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		if err := m.CheckVersion(version); err != nil {
			return err
		}
	}
	return nil
}

// scriptsDir checks the override scripts folder. Empty selects the bundled set.
func scriptsDir(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("scripts_dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("scripts_dir %s is not a directory", dir)
	}
	return dir, nil
}

func newRegistrar(s *config.Settings) submodule.Registrar {
	if s.SubmoduleScript != "" {
		return &submodule.ScriptRegistrar{Interpreter: s.SubmoduleInterpreter, Script: s.SubmoduleScript}
	}
	return &submodule.GitRegistrar{}
}
