package ports

import (
	"context"
	"time"

	"HeadlineSync/internal/domain"
)

// HeadlineQueue reads and updates rows of the source Headline Queue table.
type HeadlineQueue interface {
	// FetchApproved returns every approved headline, ordered ascending by
	// publish date, following pagination until exhausted.
	FetchApproved(ctx context.Context) ([]domain.Headline, error)
	// MarkTransferred sets the headline status to sent_to_news_agent and, when
	// articleID is non-empty, stores it as the back-reference.
	MarkTransferred(ctx context.Context, headlineID, articleID string) error
}

// ArticleStore reads and creates rows of the destination Articles table.
type ArticleStore interface {
	// TransferredHeadlineIDs returns the set of headline_queue_id values
	// already present in the Articles table (the de-duplication set).
	TransferredHeadlineIDs(ctx context.Context) (map[string]bool, error)
	// Create inserts one Articles row and returns its assigned identifier.
	Create(ctx context.Context, draft domain.ArticleDraft) (domain.CreatedArticle, error)
}

// Notifier pushes a run summary to an external channel (Discord webhook).
type Notifier interface {
	PublishTransferSummary(ctx context.Context, message string) error
}

// TransferLedger appends successful transfers to an audit store.
type TransferLedger interface {
	RecordTransfer(ctx context.Context, headlineID, articleID, title string, at time.Time) error
}
