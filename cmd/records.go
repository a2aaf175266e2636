package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/outreach-group/faculty-cli/internal/export"
	"github.com/outreach-group/faculty-cli/internal/model"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect and export merged faculty records",
	Long:  "Commands for listing and re-exporting the records of a crawl run.",
}

// -- records list --

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records of a run (latest complete run by default)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		runID, _ := cmd.Flags().GetString("run")
		asJSON, _ := cmd.Flags().GetBool("json")

		records, err := loadRunRecords(ctx, runID)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No records found.")
			return nil
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		formatRecordsList(os.Stdout, records)
		return nil
	},
}

// -- records export --

var recordsExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Re-export stored records to a file (format from extension)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runID, _ := cmd.Flags().GetString("run")

		records, err := loadRunRecords(ctx, runID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return eris.New("no records to export")
		}

		path := args[0]
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			err = export.WriteCSV(records, path)
		case ".json":
			err = export.WriteJSON(records, path)
		case ".xlsx":
			err = export.WriteXLSX(records, path)
		default:
			return eris.Errorf("unsupported export extension %q (want .csv, .json, or .xlsx)", filepath.Ext(path))
		}
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d records to %s\n", len(records), path)
		return nil
	},
}

func init() {
	recordsListCmd.Flags().String("run", "", "run ID (default: latest complete run)")
	recordsListCmd.Flags().Bool("json", false, "output as JSON")

	recordsExportCmd.Flags().String("run", "", "run ID (default: latest complete run)")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	rootCmd.AddCommand(recordsCmd)
}

// loadRunRecords opens the store and returns the records of the given run,
// or of the latest complete run when runID is empty.
func loadRunRecords(ctx context.Context, runID string) ([]model.MergedRecord, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}

	records, err := st.ListRecords(ctx, runID)
	if err != nil {
		return nil, eris.Wrap(err, "list records")
	}
	return records, nil
}

// formatRecordsList writes a tabular summary of records to w.
func formatRecordsList(out io.Writer, records []model.MergedRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTITLE\tEMAIL\tSOURCES\tPUBS")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t-------\t----")

	for _, r := range records {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			r.Name,
			title,
			r.Email,
			strings.Join(r.DepartmentSources, ","),
			len(r.TopPublications),
		)
	}
	_ = w.Flush()
}
