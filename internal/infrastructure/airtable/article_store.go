package airtable

import (
	"context"
	"fmt"

	"HeadlineSync/internal/domain"
	"HeadlineSync/internal/ports"
)

// Articles table field names as defined in the base schema.
const (
	fieldArticleTitle    = "article_title"
	fieldPrompt          = "prompt"
	fieldHeadlineQueueID = "headline_queue_id"
	fieldPipelineStatus  = "pipeline_status"
)

// ArticleStore adapts the Articles table to the ports.ArticleStore port.
type ArticleStore struct {
	client *Client
	table  string
}

var _ ports.ArticleStore = (*ArticleStore)(nil)

// NewArticleStore scopes a client to the Articles table.
func NewArticleStore(client *Client, table string) *ArticleStore {
	return &ArticleStore{client: client, table: table}
}

// TransferredHeadlineIDs scans the Articles table for non-empty
// headline_queue_id values, projecting only that field. This full scan is the
// de-duplication guard; it stays cheap only at low row counts.
func (s *ArticleStore) TransferredHeadlineIDs(ctx context.Context) (map[string]bool, error) {
	records, err := s.client.ListRecords(ctx, s.table, ListQuery{
		FilterByFormula: fmt.Sprintf(`NOT({%s} = '')`, fieldHeadlineQueueID),
		Fields:          []string{fieldHeadlineQueueID},
	})
	if err != nil {
		return nil, fmt.Errorf("scan transferred headline ids: %w", err)
	}

	ids := make(map[string]bool, len(records))
	for _, rec := range records {
		if id := stringField(rec.Fields, fieldHeadlineQueueID); id != "" {
			ids[id] = true
		}
	}

	return ids, nil
}

// Create inserts one Articles row from the draft. Publication date is never
// written; a human sets it during review.
func (s *ArticleStore) Create(ctx context.Context, draft domain.ArticleDraft) (domain.CreatedArticle, error) {
	fields := map[string]any{
		fieldArticleTitle:    draft.Title,
		fieldPrompt:          draft.Prompt,
		fieldSEOKeyword:      draft.SEOKeyword,
		fieldAngle:           draft.Angle,
		fieldSubject:         draft.Subject,
		fieldBatchID:         draft.BatchID,
		fieldTargetWordCount: draft.TargetWordCount,
		fieldPriorityOrder:   draft.PriorityOrder,
		fieldHeadlineQueueID: draft.HeadlineQueueID,
		fieldPipelineStatus:  draft.PipelineStatus,
	}

	created, err := s.client.CreateRecord(ctx, s.table, fields)
	if err != nil {
		return domain.CreatedArticle{}, fmt.Errorf("create article %q: %w", draft.Title, err)
	}

	return domain.CreatedArticle{ID: created.ID, Title: draft.Title}, nil
}
