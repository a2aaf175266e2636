package export

import (
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotion struct {
	requests []*notionapi.PageCreateRequest
	failFor  map[string]bool
}

func (f *fakeNotion) CreatePage(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	f.requests = append(f.requests, req)
	title := req.Properties["Name"].(notionapi.TitleProperty).Title[0].Text.Content
	if f.failFor[title] {
		return nil, errors.New("validation_error")
	}
	return &notionapi.Page{}, nil
}

func TestWriteNotion(t *testing.T) {
	client := &fakeNotion{}
	err := WriteNotion(context.Background(), client, "db-123", exportRecords())
	require.NoError(t, err)
	require.Len(t, client.requests, 2)

	req := client.requests[0]
	assert.Equal(t, notionapi.DatabaseID("db-123"), req.Parent.DatabaseID)

	email := req.Properties["Email"].(notionapi.EmailProperty)
	assert.Equal(t, "jdoe@stanford.edu", email.Email)

	assistant := req.Properties["Assistant Email"].(notionapi.EmailProperty)
	assert.Equal(t, "mbishop@stanford.edu", assistant.Email)

	interests := req.Properties["Research Interests"].(notionapi.RichTextProperty)
	assert.Equal(t, "Batteries, Energy Storage", interests.RichText[0].Text.Content)

	pubs := req.Properties["Top Publications"].(notionapi.RichTextProperty)
	assert.Equal(t, "Paper One | Paper Two", pubs.RichText[0].Text.Content)

	// Sparse records omit the optional properties entirely.
	_, hasEmail := client.requests[1].Properties["Email"]
	assert.False(t, hasEmail)
}

func TestWriteNotion_PartialFailure(t *testing.T) {
	client := &fakeNotion{failFor: map[string]bool{"Jane Doe": true}}
	err := WriteNotion(context.Background(), client, "db-123", exportRecords())

	// The failure is reported, but every record was still attempted.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Len(t, client.requests, 2)
}
