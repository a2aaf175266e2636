package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dmseListingURL = "https://dmse.mit.edu/people/faculty/"

const dmseListing = `<html><body>
<a href="/people/faculty/">All Faculty</a>
<ul class="people-grid">
	<li>
		<a href="/people/faculty/jane-doe/">Jane Doe</a>
		<p>Associate Professor</p>
	</li>
	<li>
		<a href="/people/faculty/john-smith/">John Smith</a>
		<p>Professor, Department Head</p>
	</li>
	<li>
		<a href="/people/faculty/ada-byron/">Ada Byron</a>
	</li>
</ul>
</body></html>`

func TestMITDMSE_ParseListing(t *testing.T) {
	ad := &MITDMSE{}
	listing, err := ad.ParseListing(dmseListing, dmseListingURL)
	require.NoError(t, err)

	require.Len(t, listing.Candidates, 3)
	assert.Empty(t, listing.NextPage)

	jane := listing.Candidates[0]
	assert.Equal(t, "Jane Doe", jane.Name)
	assert.Equal(t, "Associate Professor", jane.Title)
	assert.Equal(t, "https://dmse.mit.edu/people/faculty/jane-doe/", jane.ProfileURL)

	// Longest rank match wins over the bare "Professor" substring.
	assert.Equal(t, "Department Head", listing.Candidates[1].Title)

	// No rank text in the card defaults to Professor.
	assert.Equal(t, "Professor", listing.Candidates[2].Title)
}

func TestMITDMSE_ParseListing_NoLinks(t *testing.T) {
	ad := &MITDMSE{}
	_, err := ad.ParseListing("<html><body><p>redesign in progress</p></body></html>", dmseListingURL)
	require.Error(t, err)

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

const dmseProfile = `<html><body>
<h1>Jane Doe</h1>
<div class="profile-meta">
	<h3>Contact Info</h3>
	<p>jdoe [at] mit [dot] edu</p>
	<p>617-555-0123</p>
</div>
<div class="profile-pubs">
	<h2>Key Publications</h2>
	<ul>
		<li>Grain boundary engineering in battery cathodes</li>
		<li>In situ microscopy of dendrite formation</li>
	</ul>
</div>
</body></html>`

func TestMITDMSE_ParseProfile(t *testing.T) {
	ad := &MITDMSE{}
	fields, err := ad.ParseProfile(dmseProfile, "https://dmse.mit.edu/people/faculty/jane-doe/")
	require.NoError(t, err)

	// No mailto on the page; the obfuscated address rides along as contact
	// text for the resolver.
	assert.Empty(t, fields.EmailRaw)
	require.NotEmpty(t, fields.ContactText)
	assert.Contains(t, fields.ContactText[0], "jdoe [at] mit [dot] edu")

	assert.Equal(t, "617-555-0123", fields.Phone)
	assert.Equal(t, []string{
		"Grain boundary engineering in battery cathodes",
		"In situ microscopy of dendrite formation",
	}, fields.TopPublications)
}
