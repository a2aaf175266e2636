package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/outreach-group/faculty-cli/internal/config"
	"github.com/outreach-group/faculty-cli/internal/fetcher"
	"github.com/outreach-group/faculty-cli/internal/model"
	"github.com/outreach-group/faculty-cli/internal/store"
)

// Pipeline orchestrates the crawl: walk every source's listing, filter by
// rank, enrich each surviving candidate, merge duplicates, persist. Execution
// is strictly sequential: one in-flight request at a time, enforced by the
// fetcher's politeness delay.
type Pipeline struct {
	cfg      *config.Config
	sources  []config.Source
	fetcher  fetcher.Fetcher
	store    store.Store
	walker   *Walker
	enricher *Enricher
}

// New creates a Pipeline with all dependencies.
func New(cfg *config.Config, sources []config.Source, f fetcher.Fetcher, st store.Store) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		sources:  sources,
		fetcher:  f,
		store:    st,
		walker:   NewWalker(f, cfg.Crawl.MaxPages),
		enricher: NewEnricher(f, cfg.Crawl.MaxPubs),
	}
}

// Result is the outcome of a full crawl run.
type Result struct {
	RunID    string
	Records  []model.MergedRecord
	Report   model.RunResult
	Failures []model.FailureEvent
}

// Run executes the full crawl. Failures are contained at the smallest unit
// that can fail independently: a profile failure never aborts its source, and
// a source failure never aborts the run. The returned record set is whatever
// was derivable from successfully processed items.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	log := zap.L()

	run, err := p.store.CreateRun(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}

	var failures []model.FailureEvent
	fail := func(stage, url string, cause error) {
		failures = append(failures, model.FailureEvent{Stage: stage, URL: url, Cause: cause.Error()})
		log.Warn("pipeline failure",
			zap.String("stage", stage),
			zap.String("url", url),
			zap.Error(cause),
		)
	}

	// Stage 1: manifest.
	type sourced struct {
		sourceID  string
		candidate model.Candidate
	}
	var manifest []sourced
	for _, src := range p.sources {
		candidates, err := p.walker.Walk(ctx, src)
		if err != nil {
			// Partial results from the broken source are kept.
			fail("walk", src.ListingURL, err)
		}
		log.Info("source walked",
			zap.String("source", src.ID),
			zap.Int("candidates", len(candidates)),
		)
		for _, c := range candidates {
			manifest = append(manifest, sourced{sourceID: src.ID, candidate: c})
		}
		if ctx.Err() != nil {
			break
		}
	}

	// Stage 1b: rank and name filtering.
	var filtered []sourced
	for _, s := range manifest {
		if IncludeTitle(s.candidate.Title) {
			filtered = append(filtered, s)
		}
	}
	log.Info("manifest filtered",
		zap.Int("candidates", len(manifest)),
		zap.Int("kept", len(filtered)),
	)

	// Stage 2: enrichment.
	var records []model.FacultyRecord
	for _, s := range filtered {
		if ctx.Err() != nil {
			break
		}
		record, err := p.enricher.Enrich(ctx, s.sourceID, s.candidate)
		if err != nil {
			fail("enrich", s.candidate.ProfileURL, err)
			continue
		}
		records = append(records, *record)
	}

	// Stage 3: merge.
	merged := Merge(records)

	report := model.RunResult{
		Candidates: len(manifest),
		Filtered:   len(filtered),
		Enriched:   len(records),
		Merged:     len(merged),
		Failures:   failures,
		Duration:   time.Since(start),
	}

	if err := p.store.SaveRecords(ctx, run.ID, merged); err != nil {
		return nil, eris.Wrap(err, "pipeline: save records")
	}
	status := model.RunStatusComplete
	if err := p.store.CompleteRun(ctx, run.ID, status, &report); err != nil {
		return nil, eris.Wrap(err, "pipeline: complete run")
	}

	log.Info("pipeline complete",
		zap.String("run_id", run.ID),
		zap.Int("candidates", report.Candidates),
		zap.Int("kept", report.Filtered),
		zap.Int("enriched", report.Enriched),
		zap.Int("merged", report.Merged),
		zap.Int("failures", len(failures)),
		zap.Int64("requests", p.fetcher.Requests()),
		zap.Duration("duration", report.Duration),
	)

	return &Result{
		RunID:    run.ID,
		Records:  merged,
		Report:   report,
		Failures: failures,
	}, nil
}
