package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/forge-labs/forge/internal/branding"
	"github.com/forge-labs/forge/internal/config"
	"github.com/forge-labs/forge/internal/platform"
	"github.com/forge-labs/forge/internal/project"
	"github.com/forge-labs/forge/internal/template"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create the config file and missing folders, and relink stale venv links")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check settings, templates and tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		problems := runDoctor(cmd.OutOrStdout(), doctorFix)
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		return nil
	},
}

// runDoctor prints one line per check and returns the number of problems.
// Warnings do not count.
func runDoctor(w io.Writer, fix bool) int {
	problems := 0
	fail := func(format string, a ...any) {
		problems++
		fmt.Fprintf(w, format+"\n", a...)
	}

	fmt.Fprintln(w, "Config check:")
	path := config.FilePath()
	if !config.Exists() {
		if !fix {
			fail("  [MISS] %s does not exist\n         Run '%s doctor --fix' or '%s initialize-project' to create it", path, branding.CLIName(), branding.CLIName())
			return problems
		}
		if _, err := config.Bootstrap(); err != nil {
			fail("  [FAIL] Could not create %s: %v", path, err)
			return problems
		}
		fmt.Fprintf(w, "  [FIX ] Created %s, edit it before creating projects\n", path)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	}

	config.Load()
	s, err := config.Read()
	if err != nil {
		fail("  [FAIL] %v", err)
		return problems
	}
	if err := s.Validate(); err != nil {
		fail("  [FAIL] %v", err)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s = %s\n", config.KeyProjectDir, s.ProjectDir)
	}

	fmt.Fprintln(w, "\nTemplates check:")
	if !dirExists(s.TemplatesDir) {
		if fix {
			if err := os.MkdirAll(s.TemplatesDir, 0755); err != nil {
				fail("  [FAIL] Could not create %s: %v", s.TemplatesDir, err)
			} else {
				fmt.Fprintf(w, "  [FIX ] Created %s\n", s.TemplatesDir)
			}
		} else {
			fail("  [MISS] %s does not exist\n         Run '%s templates update' to fetch the library", s.TemplatesDir, branding.CLIName())
		}
	}
	if dirExists(s.TemplatesDir) {
		table, err := loadLanguages(s.LanguagesFile)
		if err != nil {
			fail("  [FAIL] %v", err)
		} else {
			folders := []string{template.DefaultName}
			for _, l := range table.All() {
				folders = append(folders, l.TemplateFolder)
			}
			for _, f := range folders {
				t := template.New(s.TemplatesDir, f)
				if t.Exists() {
					fmt.Fprintf(w, "  [ OK ] %s\n", t.Dir)
				} else {
					fail("  [MISS] %s", t.Dir)
				}
			}
		}
	}

	fmt.Fprintln(w, "\nTools check:")
	if s.SubmoduleScript != "" {
		checkPath(w, "submodule_script", s.SubmoduleScript, &problems)
	} else if _, err := exec.LookPath("git"); err != nil {
		fail("  [MISS] git not found in PATH")
	} else {
		fmt.Fprintln(w, "  [ OK ] git found in PATH")
	}

	// Only multi-language projects need these.
	if s.RouterExe == "" {
		fmt.Fprintf(w, "  [WARN] %s not set, multi-language projects will fail\n", config.KeyRouterExe)
	} else {
		checkPath(w, config.KeyRouterExe, s.RouterExe, &problems)
	}
	if s.VenvDir == "" {
		fmt.Fprintf(w, "  [WARN] %s not set, venv must be linked by hand\n", config.KeyVenvDir)
	} else if !dirExists(s.VenvDir) {
		fmt.Fprintf(w, "  [WARN] %s %s does not exist\n", config.KeyVenvDir, s.VenvDir)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s = %s\n", config.KeyVenvDir, s.VenvDir)
	}

	if s.VenvDir != "" && dirExists(s.ProjectDir) {
		fmt.Fprintln(w, "\nProjects check:")
		checkVenvLinks(w, s, fix, fail)
	}

	return problems
}

// checkVenvLinks reports projects whose venv link points somewhere other
// than venv_dir and relinks them when fix is set. Projects without a link
// are skipped.
func checkVenvLinks(w io.Writer, s *config.Settings, fix bool, fail func(string, ...any)) {
	projects, err := project.ListProjects(s.ProjectDir)
	if err != nil {
		fail("  [FAIL] %v", err)
		return
	}
	for _, p := range projects {
		link := filepath.Join(p, "venv")
		target, err := platform.ReadSymlinkTarget(link)
		if err != nil {
			continue
		}
		if target == s.VenvDir {
			fmt.Fprintf(w, "  [ OK ] %s -> %s\n", link, target)
			continue
		}
		if !fix {
			fmt.Fprintf(w, "  [WARN] %s -> %s, expected %s\n", link, target, s.VenvDir)
			continue
		}
		if err := platform.RemoveSymlink(link); err != nil {
			fail("  [FAIL] Could not remove %s: %v", link, err)
			continue
		}
		if err := platform.CreateSymlink(s.VenvDir, link); err != nil && !errors.Is(err, platform.ErrSymlinkUnsupported) {
			fail("  [FAIL] Could not link %s: %v", link, err)
			continue
		}
		fmt.Fprintf(w, "  [FIX ] %s -> %s\n", link, s.VenvDir)
	}
}

func checkPath(w io.Writer, key, path string, problems *int) {
	if _, err := os.Stat(path); err != nil {
		*problems++
		fmt.Fprintf(w, "  [MISS] %s %s: %v\n", key, path, err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s = %s\n", key, path)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
