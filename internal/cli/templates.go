package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/forge-labs/forge/internal/catalog"
	"github.com/forge-labs/forge/internal/config"
	"github.com/forge-labs/forge/internal/template"
	"github.com/spf13/cobra"
)

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesCheckCmd)
	templatesCmd.AddCommand(templatesUpdateCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage the template library",
	Long: `Manage the library of project templates.

The library lives in templates_dir (default ~/.projectforge/templates). When
templates_repo_url is set, "templates update" clones or pulls it from git.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates and the metadata files they carry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		c := catalog.New()
		ts, err := c.Templates()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TEMPLATE\tFILES")
		for _, t := range ts {
			var present []string
			for _, s := range t.Check() {
				if s.Present {
					present = append(present, s.File)
				}
			}
			files := strings.Join(present, ", ")
			if files == "" {
				files = "-"
			}
			fmt.Fprintf(w, "%s\t%s\n", t.Name, files)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if updated := c.LastUpdated(); !updated.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "\nLast updated: %s\n", updated.Format(time.RFC3339))
		}
		return nil
	},
}

var templatesCheckCmd = &cobra.Command{
	Use:   "check [template...]",
	Short: "Validate template metadata against its schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		c := catalog.New()

		var ts []template.Template
		if len(args) == 0 {
			all, err := c.Templates()
			if err != nil {
				return err
			}
			ts = all
		} else {
			for _, name := range args {
				t := template.New(c.Dir, name)
				if !t.Exists() {
					return fmt.Errorf("template %q not found in %s", name, c.Dir)
				}
				ts = append(ts, t)
			}
		}

		return checkTemplates(cmd, ts)
	},
}

func checkTemplates(cmd *cobra.Command, ts []template.Template) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, t := range ts {
		fmt.Fprintf(out, "%s\n", t.Name)
		for _, s := range t.Check() {
			switch {
			case s.Err != nil:
				failed++
				fmt.Fprintf(out, "  ✗ %s: %v\n", s.File, s.Err)
			case s.Present:
				fmt.Fprintf(out, "  ✓ %s\n", s.File)
			}
		}
		if m, err := t.Manifest(); err == nil {
			if err := m.CheckVersion(buildVersion); err != nil {
				failed++
				fmt.Fprintf(out, "  ✗ %s: %v\n", template.ManifestFile, err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d template file(s) failed validation", failed)
	}
	fmt.Fprintln(out, "All templates valid.")
	return nil
}

var templatesUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Clone or pull the template library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		c := catalog.New()
		fmt.Fprintf(cmd.OutOrStdout(), "Updating templates at %s...\n", c.Dir)
		if err := c.Update(cmd.Context()); err != nil {
			return fmt.Errorf("updating templates: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Templates updated successfully.")
		return nil
	},
}
