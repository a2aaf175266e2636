package export

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// NotionClient is the slice of the Notion API the exporter uses.
type NotionClient interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// notionClient wraps a *notionapi.Client with Notion's 3 req/s rate limit.
type notionClient struct {
	inner   *notionapi.Client
	limiter *rate.Limiter
}

// NewNotionClient creates a Notion client with the given integration token.
func NewNotionClient(token string) NotionClient {
	return &notionClient{
		inner:   notionapi.NewClient(notionapi.Token(token)),
		limiter: rate.NewLimiter(3, 1),
	}
}

func (c *notionClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "notion: rate limit")
	}
	page, err := c.inner.Page.Create(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "notion: create page")
	}
	return page, nil
}

// WriteNotion pushes each record as a page into the outreach contact
// database. Individual page failures are logged and skipped so one bad
// record does not abort the export; the error reports how many failed.
func WriteNotion(ctx context.Context, client NotionClient, contactDB string, records []model.MergedRecord) error {
	failed := 0
	for _, r := range records {
		if _, err := client.CreatePage(ctx, pageRequest(contactDB, r)); err != nil {
			failed++
			zap.L().Warn("notion export: create page failed",
				zap.String("name", r.Name),
				zap.Error(err),
			)
		}
	}
	if failed > 0 {
		return eris.Errorf("notion export: %d of %d pages failed", failed, len(records))
	}
	return nil
}

func pageRequest(contactDB string, r model.MergedRecord) *notionapi.PageCreateRequest {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: richText(r.Name),
		},
		"Title": notionapi.RichTextProperty{
			RichText: richText(r.Title),
		},
		"Departments": notionapi.RichTextProperty{
			RichText: richText(strings.Join(r.DepartmentSources, ", ")),
		},
	}
	if r.Email != "" {
		props["Email"] = notionapi.EmailProperty{Email: r.Email}
	}
	if r.AssistantEmail != "" {
		props["Assistant Email"] = notionapi.EmailProperty{Email: r.AssistantEmail}
	}
	if r.Phone != "" {
		props["Phone"] = notionapi.PhoneNumberProperty{PhoneNumber: r.Phone}
	}
	if r.ProfileURL != "" {
		props["Profile"] = notionapi.URLProperty{URL: r.ProfileURL}
	}
	if r.LabWebsite != "" {
		props["Lab Website"] = notionapi.URLProperty{URL: r.LabWebsite}
	}
	if r.GoogleScholar != "" {
		props["Google Scholar"] = notionapi.URLProperty{URL: r.GoogleScholar}
	}
	if len(r.ResearchInterests) > 0 {
		props["Research Interests"] = notionapi.RichTextProperty{
			RichText: richText(strings.Join(r.ResearchInterests, ", ")),
		}
	}
	if len(r.TopPublications) > 0 {
		props["Top Publications"] = notionapi.RichTextProperty{
			RichText: richText(strings.Join(r.TopPublications, " | ")),
		}
	}

	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(contactDB),
		},
		Properties: props,
	}
}

func richText(s string) []notionapi.RichText {
	if s == "" {
		return nil
	}
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: s}},
	}
}
