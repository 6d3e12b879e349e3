package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/forge-labs/forge/internal/branding"
	"github.com/forge-labs/forge/internal/catalog"
	"github.com/forge-labs/forge/internal/config"
	"github.com/forge-labs/forge/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// newDriver builds the prompt driver; tests replace it.
var newDriver = prompt.NewSurvey

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds new projects from a library of language templates:
it creates the folder skeleton, merges .gitignore fragments, registers git
submodules and, for multi-language projects, installs the router and launch tooling.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Only the commands that read templates care about freshness.
		name := cmd.Name()
		if name != "initialize-project" && name != "list" {
			return
		}
		config.Load()
		c := catalog.New()
		if c.RepoURL == "" {
			return
		}
		if _, err := os.Stat(c.Dir); err == nil && c.IsStale(catalog.DefaultMaxAge) {
			fmt.Fprintf(os.Stderr, "Templates are more than 7 days old. Run '%s templates update'.\n", branding.CLIName())
		}
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
