package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/outreach-group/faculty-cli/internal/config"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the department sources a crawl would visit",
	RunE: func(_ *cobra.Command, _ []string) error {
		sources, err := config.LoadSources(cfg.Crawl.SourcesFile)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tPAGINATED\tLISTING URL")
		for _, s := range sources {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", s.ID, s.Name, s.Paginated, s.ListingURL)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
