package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/outreach-group/faculty-cli/internal/config"
	"github.com/outreach-group/faculty-cli/internal/export"
	"github.com/outreach-group/faculty-cli/internal/fetcher"
	"github.com/outreach-group/faculty-cli/internal/pipeline"
)

var (
	crawlNoCache  bool
	crawlToNotion bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl all configured sources and export the merged dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		sources, err := config.LoadSources(cfg.Crawl.SourcesFile)
		if err != nil {
			return err
		}

		var f fetcher.Fetcher = fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.Fetcher.UserAgent,
			Timeout:    time.Duration(cfg.Fetcher.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetcher.MaxRetries,
			DelayMin:   time.Duration(cfg.Fetcher.DelayMinSecs * float64(time.Second)),
			DelayMax:   time.Duration(cfg.Fetcher.DelayMaxSecs * float64(time.Second)),
			HostRPS:    rate.Limit(cfg.Fetcher.HostRPS),
		})
		if !crawlNoCache {
			if n, err := st.DeleteExpiredPages(ctx); err == nil && n > 0 {
				zap.L().Debug("expired cache pages removed", zap.Int("count", n))
			}
			f = fetcher.NewCaching(f, st, time.Duration(cfg.Crawl.CacheTTLHours)*time.Hour)
		}

		p := pipeline.New(cfg, sources, f, st)

		result, err := p.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if err := export.WriteCSV(result.Records, cfg.Export.CSVPath); err != nil {
			return err
		}
		if err := export.WriteJSON(result.Records, cfg.Export.JSONPath); err != nil {
			return err
		}
		if err := export.WriteXLSX(result.Records, cfg.Export.XLSXPath); err != nil {
			return err
		}

		if crawlToNotion {
			if cfg.Notion.Token == "" || cfg.Notion.ContactDB == "" {
				return eris.New("notion export requires FACULTY_NOTION_TOKEN and FACULTY_NOTION_CONTACT_DB")
			}
			client := export.NewNotionClient(cfg.Notion.Token)
			if err := export.WriteNotion(ctx, client, cfg.Notion.ContactDB, result.Records); err != nil {
				return err
			}
		}

		zap.L().Info("crawl complete",
			zap.String("run_id", result.RunID),
			zap.Int("records", len(result.Records)),
			zap.String("csv", cfg.Export.CSVPath),
			zap.String("json", cfg.Export.JSONPath),
			zap.String("xlsx", cfg.Export.XLSXPath),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Report)
	},
}

func init() {
	crawlCmd.Flags().BoolVar(&crawlNoCache, "no-cache", false, "bypass the page cache")
	crawlCmd.Flags().BoolVar(&crawlToNotion, "notion", false, "also push records to the Notion contact database")
	rootCmd.AddCommand(crawlCmd)
}
