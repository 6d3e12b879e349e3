package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/forge-labs/forge/internal/config"
	"github.com/forge-labs/forge/internal/languages"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(languagesCmd)
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages a project can be created with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		table, err := loadLanguages(config.Get(config.KeyLanguagesFile))
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTEMPLATE")
		for _, l := range table.All() {
			fmt.Fprintf(w, "%s\t%s\n", l.Name, l.TemplateFolder)
		}
		return w.Flush()
	},
}

// loadLanguages returns the table from path, or the built-in one.
func loadLanguages(path string) (languages.Table, error) {
	if path == "" {
		return languages.Default(), nil
	}
	table, err := languages.Load(path)
	if err != nil {
		return languages.Table{}, fmt.Errorf("loading languages: %w", err)
	}
	return table, nil
}
