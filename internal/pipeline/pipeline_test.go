package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outreach-group/faculty-cli/internal/config"
	"github.com/outreach-group/faculty-cli/internal/model"
)

// memStore is a minimal in-memory Store for pipeline tests.
type memStore struct {
	runs    map[string]*model.Run
	records map[string][]model.MergedRecord
	nextID  int
}

func newMemStore() *memStore {
	return &memStore{
		runs:    make(map[string]*model.Run),
		records: make(map[string][]model.MergedRecord),
	}
}

func (s *memStore) CreateRun(context.Context) (*model.Run, error) {
	s.nextID++
	run := &model.Run{
		ID:        fmt.Sprintf("run-%d", s.nextID),
		Status:    model.RunStatusRunning,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.runs[run.ID] = run
	return run, nil
}

func (s *memStore) CompleteRun(_ context.Context, runID string, status model.RunStatus, result *model.RunResult) error {
	run, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	run.Status = status
	run.Result = result
	run.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) GetRun(_ context.Context, runID string) (*model.Run, error) {
	return s.runs[runID], nil
}

func (s *memStore) ListRuns(context.Context, int) ([]model.Run, error) {
	var runs []model.Run
	for _, r := range s.runs {
		runs = append(runs, *r)
	}
	return runs, nil
}

func (s *memStore) SaveRecords(_ context.Context, runID string, records []model.MergedRecord) error {
	s.records[runID] = records
	return nil
}

func (s *memStore) ListRecords(_ context.Context, runID string) ([]model.MergedRecord, error) {
	return s.records[runID], nil
}

func (s *memStore) GetCachedPage(context.Context, string) (*model.Page, error) { return nil, nil }

func (s *memStore) SetCachedPage(context.Context, *model.Page, time.Duration) error { return nil }

func (s *memStore) DeleteExpiredPages(context.Context) (int, error) { return 0, nil }

func (s *memStore) Migrate(context.Context) error { return nil }

func (s *memStore) Close() error { return nil }

const chemeBase = "https://cheme.stanford.edu/people/faculty"
const mseBase = "https://mse.stanford.edu/people/faculty"

func listingPage(entries [][3]string) string {
	body := `<html><body><div class="view-people">`
	for _, e := range entries {
		body += `<div class="card"><a href="/people/` + e[0] + `">` + e[1] + `</a>` +
			`<div class="person-title">` + e[2] + `</div></div>`
	}
	body += `</div></body></html>`
	return body
}

func profilePage(email string) string {
	return `<html><body><div class="contact"><a href="mailto:` + email + `">Email</a></div></body></html>`
}

func testConfig() *config.Config {
	return &config.Config{Crawl: config.CrawlConfig{MaxPages: 5, MaxPubs: 5}}
}

func TestPipeline_ProfileFailureIsContained(t *testing.T) {
	people := map[string]string{
		"alice-a": "Alice Alpha",
		"bob-b":   "Bob Beta",
		"carol-c": "Carol Gamma",
		"dave-d":  "Dave Delta",
		"erin-e":  "Erin Epsilon",
	}
	var entries [][3]string
	pages := map[string]string{}
	for _, slug := range []string{"alice-a", "bob-b", "carol-c", "dave-d", "erin-e"} {
		entries = append(entries, [3]string{slug, people[slug], "Professor"})
		pages["https://cheme.stanford.edu/people/"+slug] = profilePage(slug + "@stanford.edu")
	}
	pages[chemeBase] = listingPage(entries)

	f := &fakeFetcher{
		pages: pages,
		fail:  map[string]bool{"https://cheme.stanford.edu/people/carol-c": true},
	}
	st := newMemStore()

	sources := []config.Source{{ID: "stanford_cheme", Name: "Stanford ChemE", ListingURL: chemeBase}}
	result, err := New(testConfig(), sources, f, st).Run(context.Background())
	require.NoError(t, err)

	// One profile failed; the other four survive as records.
	assert.Len(t, result.Records, 4)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "enrich", result.Failures[0].Stage)
	assert.Equal(t, "https://cheme.stanford.edu/people/carol-c", result.Failures[0].URL)

	// The run completed and persisted despite the failure.
	run := st.runs[result.RunID]
	require.NotNil(t, run)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	assert.Len(t, st.records[result.RunID], 4)
}

func TestPipeline_SourceFailureIsContained(t *testing.T) {
	pages := map[string]string{
		chemeBase: listingPage([][3]string{{"alice-a", "Alice Alpha", "Professor"}}),
		"https://cheme.stanford.edu/people/alice-a": profilePage("alice@stanford.edu"),
	}
	f := &fakeFetcher{
		pages: pages,
		fail:  map[string]bool{mseBase: true},
	}
	st := newMemStore()

	sources := []config.Source{
		{ID: "stanford_mse", Name: "Stanford MSE", ListingURL: mseBase},
		{ID: "stanford_cheme", Name: "Stanford ChemE", ListingURL: chemeBase},
	}
	result, err := New(testConfig(), sources, f, st).Run(context.Background())
	require.NoError(t, err)

	// The dead source yields a walk failure; the healthy one still produces.
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "walk", result.Failures[0].Stage)
	assert.Equal(t, mseBase, result.Failures[0].URL)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Alice Alpha", result.Records[0].Name)
}

func TestPipeline_RankFilterApplied(t *testing.T) {
	pages := map[string]string{
		chemeBase: `<html><body><div class="view-people">
			<div class="card"><a href="/people/alice-a">Alice Alpha</a><div class="person-title">Professor</div></div>
			<div class="card"><a href="/people/sam-s">Sam Stone</a><div class="person-title">Senior Lecturer</div></div>
			<div class="card"><a href="/people/pat-p">Pat Park</a><div class="person-title">Adjunct Professor</div></div>
		</div></body></html>`,
		"https://cheme.stanford.edu/people/alice-a": profilePage("alice@stanford.edu"),
	}
	f := &fakeFetcher{pages: pages}
	st := newMemStore()

	sources := []config.Source{{ID: "stanford_cheme", Name: "Stanford ChemE", ListingURL: chemeBase}}
	result, err := New(testConfig(), sources, f, st).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Report.Candidates)
	assert.Equal(t, 1, result.Report.Filtered)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Alice Alpha", result.Records[0].Name)
	// Excluded candidates never cost a profile fetch.
	assert.Equal(t, int64(2), f.Requests())
}

func TestPipeline_CrossSourceMerge(t *testing.T) {
	pages := map[string]string{
		chemeBase: listingPage([][3]string{{"jane-doe", "Jane Doe", "Professor"}}),
		mseBase:   listingPage([][3]string{{"jane-doe", "JANE  DOE", "Professor"}}),
		"https://cheme.stanford.edu/people/jane-doe": profilePage("jdoe@stanford.edu"),
		"https://mse.stanford.edu/people/jane-doe": `<html><body>
			<div class="contact"><a href="tel:650-555-0100">Call</a></div></body></html>`,
	}
	f := &fakeFetcher{pages: pages}
	st := newMemStore()

	sources := []config.Source{
		{ID: "stanford_cheme", Name: "Stanford ChemE", ListingURL: chemeBase},
		{ID: "stanford_mse", Name: "Stanford MSE", ListingURL: mseBase},
	}
	result, err := New(testConfig(), sources, f, st).Run(context.Background())
	require.NoError(t, err)

	// Same person from two listings collapses into one record that unions
	// the disjoint contact fields.
	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "jdoe@stanford.edu", rec.Email)
	assert.Equal(t, "650-555-0100", rec.Phone)
	assert.Equal(t, []string{chemeBase, mseBase}, rec.DepartmentSources)
	assert.Equal(t, 2, result.Report.Enriched)
	assert.Equal(t, 1, result.Report.Merged)
}
