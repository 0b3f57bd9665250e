package airtable

import (
	"context"
	"fmt"

	"HeadlineSync/internal/domain"
	"HeadlineSync/internal/ports"
)

// Headline Queue field names as defined in the base schema.
const (
	fieldStatus           = "status"
	fieldHeadline         = "headline"
	fieldArticlePrompt    = "article_prompt"
	fieldSEOKeyword       = "seo_keyword"
	fieldAngle            = "angle"
	fieldSubject          = "subject"
	fieldBatchID          = "batch_id"
	fieldTargetWordCount  = "target_word_count"
	fieldPriorityOrder    = "priority_order"
	fieldPublishDate      = "publish_date"
	fieldArticlesRecordID = "articles_record_id"
)

// HeadlineQueue adapts the Headline Queue table to the ports.HeadlineQueue port.
type HeadlineQueue struct {
	client *Client
	table  string
}

var _ ports.HeadlineQueue = (*HeadlineQueue)(nil)

// NewHeadlineQueue scopes a client to the Headline Queue table.
func NewHeadlineQueue(client *Client, table string) *HeadlineQueue {
	return &HeadlineQueue{client: client, table: table}
}

// FetchApproved returns all approved headlines ordered by publish date.
func (q *HeadlineQueue) FetchApproved(ctx context.Context) ([]domain.Headline, error) {
	records, err := q.client.ListRecords(ctx, q.table, ListQuery{
		FilterByFormula: fmt.Sprintf(`{%s} = "%s"`, fieldStatus, domain.StatusApproved),
		SortField:       fieldPublishDate,
		SortDirection:   "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch approved headlines: %w", err)
	}

	headlines := make([]domain.Headline, 0, len(records))
	for _, rec := range records {
		headlines = append(headlines, domain.Headline{
			ID:               rec.ID,
			Status:           domain.Status(stringField(rec.Fields, fieldStatus)),
			Headline:         stringField(rec.Fields, fieldHeadline),
			ArticlePrompt:    stringField(rec.Fields, fieldArticlePrompt),
			SEOKeyword:       stringField(rec.Fields, fieldSEOKeyword),
			Angle:            stringField(rec.Fields, fieldAngle),
			Subject:          stringField(rec.Fields, fieldSubject),
			BatchID:          stringField(rec.Fields, fieldBatchID),
			TargetWordCount:  intField(rec.Fields, fieldTargetWordCount),
			PriorityOrder:    intField(rec.Fields, fieldPriorityOrder),
			PublishDate:      stringField(rec.Fields, fieldPublishDate),
			ArticlesRecordID: stringField(rec.Fields, fieldArticlesRecordID),
		})
	}

	return headlines, nil
}

// MarkTransferred flips the headline status and stores the article
// back-reference. With an empty articleID only the status is written, which
// reconciliation uses for rows whose article already exists.
func (q *HeadlineQueue) MarkTransferred(ctx context.Context, headlineID, articleID string) error {
	fields := map[string]any{
		fieldStatus: string(domain.StatusSentToNewsAgent),
	}
	if articleID != "" {
		fields[fieldArticlesRecordID] = articleID
	}

	if _, err := q.client.UpdateRecord(ctx, q.table, headlineID, fields); err != nil {
		return fmt.Errorf("mark headline %s transferred: %w", headlineID, err)
	}

	return nil
}
