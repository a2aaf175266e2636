package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doerrListingURL = "https://sustainability.stanford.edu/our-community/faculty-0"

const doerrListingRelNext = `<html><body><main>
<div class="person-card">
	<a href="/people/alice-rivers">Alice Rivers</a>
	<div class="person-title">Professor of Earth System Science</div>
</div>
<div class="person-card">
	<a href="https://profiles.stanford.edu/bob-glacier">Bob Glacier</a>
</div>
<ul class="pager"><li><a rel="next" href="?page=1">Next page</a></li></ul>
</main></body></html>`

func TestStanfordDoerr_ParseListing(t *testing.T) {
	ad := &StanfordDoerr{}
	listing, err := ad.ParseListing(doerrListingRelNext, doerrListingURL)
	require.NoError(t, err)

	require.Len(t, listing.Candidates, 2)
	assert.Equal(t, "Alice Rivers", listing.Candidates[0].Name)
	assert.Equal(t, "Professor of Earth System Science", listing.Candidates[0].Title)
	assert.Equal(t, "https://sustainability.stanford.edu/people/alice-rivers", listing.Candidates[0].ProfileURL)

	// Cards without an explicit title default to Professor.
	assert.Equal(t, "Professor", listing.Candidates[1].Title)
	assert.Equal(t, "https://profiles.stanford.edu/bob-glacier", listing.Candidates[1].ProfileURL)

	assert.Equal(t, doerrListingURL+"?page=1", listing.NextPage)
}

func TestStanfordDoerr_NoNextWithoutAnchor(t *testing.T) {
	// A page with candidates but no next anchor is the last page. Guessing a
	// further page address would fetch past the end of the listing.
	body := `<html><body><main>
		<a href="/people/alice-rivers">Alice Rivers</a>
	</main></body></html>`

	ad := &StanfordDoerr{}
	listing, err := ad.ParseListing(body, doerrListingURL+"?page=2")
	require.NoError(t, err)
	require.Len(t, listing.Candidates, 1)
	assert.Empty(t, listing.NextPage)
}

func TestStanfordDoerr_NextFromBareAnchor(t *testing.T) {
	// A next anchor without a target still signals another page; the page
	// parameter advances.
	body := `<html><body><main>
		<a href="/people/alice-rivers">Alice Rivers</a>
		<ul class="pager"><li><a rel="next" href="#">Next page</a></li></ul>
	</main></body></html>`

	ad := &StanfordDoerr{}
	listing, err := ad.ParseListing(body, doerrListingURL+"?page=2")
	require.NoError(t, err)
	assert.Equal(t, doerrListingURL+"?page=3", listing.NextPage)
}

func TestStanfordDoerr_NoNextWhenEmpty(t *testing.T) {
	body := `<html><body><main><p>No results.</p></main></body></html>`

	ad := &StanfordDoerr{}
	listing, err := ad.ParseListing(body, doerrListingURL+"?page=7")
	require.NoError(t, err)
	assert.Empty(t, listing.Candidates)
	assert.Empty(t, listing.NextPage)
}
