package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
)

// NotionReporter publishes the monthly closing summary as a page in a
// Notion database, one page per period. Informational only; a failure here
// never fails the run.
type NotionReporter struct {
	client     *notionapi.Client
	databaseID string
}

// NewNotionReporter creates a reporter with the provided API token.
func NewNotionReporter(token, databaseID string) *NotionReporter {
	return &NotionReporter{
		client:     notionapi.NewClient(notionapi.Token(token)),
		databaseID: databaseID,
	}
}

// PublishSummary creates the period's summary page.
func (r *NotionReporter) PublishSummary(ctx context.Context, s Summary) error {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(r.databaseID),
		},
		Properties: summaryProperties(s),
	}

	if _, err := r.client.Page.Create(ctx, req); err != nil {
		return fmt.Errorf("PublishSummary: %w", err)
	}
	return nil
}

// summaryProperties maps a Summary onto the Notion database schema:
// a title ("Cierre <period>"), the row count, and one line of totals.
func summaryProperties(s Summary) notionapi.Properties {
	return notionapi.Properties{
		"Periodo": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{Content: fmt.Sprintf("Cierre %s", s.Period)},
				},
			},
		},
		"Registros": notionapi.NumberProperty{
			Number: float64(s.Transactions),
		},
		"Totales": notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{Content: totalsLine(s)},
				},
			},
		},
	}
}

func totalsLine(s Summary) string {
	if s.Transactions == 0 {
		return "sin movimientos"
	}
	parts := make([]string, 0, len(s.ByCurrency))
	for _, c := range s.Currencies() {
		parts = append(parts, fmt.Sprintf("%s %.2f", c, s.ByCurrency[c]))
	}
	return strings.Join(parts, " | ")
}
