package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"HeadlineSync/internal/domain"
	"HeadlineSync/internal/ports"
)

// TransferDeps wires all driven adapters into the transfer pipeline.
type TransferDeps struct {
	Queue    ports.HeadlineQueue
	Articles ports.ArticleStore
	Notifier ports.Notifier
	Ledger   ports.TransferLedger
	Logger   *slog.Logger
}

// Transfer implements the headline-to-article transfer workflow: fetch
// approved headlines, de-duplicate against existing articles, move each new
// row with an immediate status write-back, then announce the result.
type Transfer struct {
	queue    ports.HeadlineQueue
	articles ports.ArticleStore
	notifier ports.Notifier
	ledger   ports.TransferLedger
	logger   *slog.Logger
}

// NewTransfer constructs the orchestration component.
func NewTransfer(deps TransferDeps) *Transfer {
	return &Transfer{
		queue:    deps.Queue,
		articles: deps.Articles,
		notifier: deps.Notifier,
		ledger:   deps.Ledger,
		logger:   deps.Logger,
	}
}

// Run executes one complete transfer pass. Read failures abort the run;
// per-row write failures are collected into the report and skipped over.
func (t *Transfer) Run(ctx context.Context, dryRun bool) (domain.Report, error) {
	report := domain.Report{
		RunID:     uuid.NewString(),
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}

	if t.queue == nil || t.articles == nil {
		return report, fmt.Errorf("transfer pipeline is not fully wired")
	}

	logger := t.scopedLogger(report.RunID)

	headlines, err := t.queue.FetchApproved(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch approved: %w", err)
	}
	report.Approved = len(headlines)
	logger.Info("fetched approved headlines", "count", len(headlines))

	if len(headlines) == 0 {
		return report, nil
	}

	transferred, err := t.articles.TransferredHeadlineIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("load de-duplication set: %w", err)
	}
	logger.Debug("loaded de-duplication set", "size", len(transferred))

	var fresh, stuck []domain.Headline
	for _, h := range headlines {
		if transferred[h.ID] {
			stuck = append(stuck, h)
		} else {
			fresh = append(fresh, h)
		}
	}
	report.Skipped = len(stuck)

	if dryRun {
		for _, h := range fresh {
			report.Planned = append(report.Planned, h.Headline)
		}
		logger.Info("dry run, no changes made",
			"would_transfer", len(fresh),
			"already_transferred", len(stuck))
		return report, nil
	}

	t.reconcileStuck(ctx, logger, stuck, &report)
	t.transferRows(ctx, logger, fresh, &report)
	t.notify(ctx, logger, report)

	return report, nil
}

// reconcileStuck repairs rows whose article exists but whose status write-back
// failed on an earlier run. Only the status is written; the article
// back-reference is unknown here because the de-duplication scan projects a
// single field.
func (t *Transfer) reconcileStuck(ctx context.Context, logger *slog.Logger, stuck []domain.Headline, report *domain.Report) {
	for _, h := range stuck {
		if h.Status != domain.StatusApproved {
			continue
		}

		if err := t.queue.MarkTransferred(ctx, h.ID, ""); err != nil {
			logger.Error("reconcile stuck headline failed",
				"headline_id", h.ID,
				"title", h.Headline,
				"error", err)
			report.Errors = append(report.Errors, domain.RowError{
				HeadlineID: h.ID,
				Title:      h.Headline,
				Err:        err,
			})
			continue
		}

		report.Reconciled++
		logger.Info("reconciled stuck headline", "headline_id", h.ID, "title", h.Headline)
	}
}

// transferRows performs the per-row create-then-update sequence in input
// order. The status write-back follows each create immediately, never batched,
// so a mid-run failure leaves at most the in-flight row inconsistent.
func (t *Transfer) transferRows(ctx context.Context, logger *slog.Logger, fresh []domain.Headline, report *domain.Report) {
	for _, h := range fresh {
		draft := domain.NewArticleDraft(h)

		created, err := t.articles.Create(ctx, draft)
		if err != nil {
			logger.Error("create article failed",
				"headline_id", h.ID,
				"title", h.Headline,
				"error", err)
			report.Errors = append(report.Errors, domain.RowError{
				HeadlineID: h.ID,
				Title:      h.Headline,
				Err:        err,
			})
			continue
		}

		if err := t.queue.MarkTransferred(ctx, h.ID, created.ID); err != nil {
			// The article exists but the source row still reads approved; the
			// next run repairs it through reconciliation.
			logger.Error("status write-back failed after create",
				"headline_id", h.ID,
				"article_id", created.ID,
				"error", err)
			report.Errors = append(report.Errors, domain.RowError{
				HeadlineID: h.ID,
				Title:      h.Headline,
				Err:        fmt.Errorf("article %s created, write-back failed: %w", created.ID, err),
			})
			continue
		}

		report.Created = append(report.Created, created)
		logger.Info("transferred headline",
			"headline_id", h.ID,
			"article_id", created.ID,
			"title", created.Title)

		if t.ledger != nil {
			if err := t.ledger.RecordTransfer(ctx, h.ID, created.ID, created.Title, time.Now().UTC()); err != nil {
				logger.Warn("ledger append failed", "headline_id", h.ID, "error", err)
			}
		}
	}
}

// notify announces created articles; failure never affects the run outcome.
func (t *Transfer) notify(ctx context.Context, logger *slog.Logger, report domain.Report) {
	if t.notifier == nil {
		logger.Debug("no notifier configured, skipping notification")
		return
	}
	if len(report.Created) == 0 {
		return
	}

	if err := t.notifier.PublishTransferSummary(ctx, buildTransferMessage(report.Created)); err != nil {
		logger.Warn("notification failed", "error", err)
		return
	}

	logger.Info("notification sent", "articles", len(report.Created))
}

func buildTransferMessage(created []domain.CreatedArticle) string {
	titles := ""
	for _, article := range created {
		titles += fmt.Sprintf("• %s\n", article.Title)
	}

	return fmt.Sprintf(
		"**%d headline(s) transferred to the Articles queue**\n\n%s\nThe News Agent will write these automatically.",
		len(created), titles)
}

func (t *Transfer) scopedLogger(runID string) *slog.Logger {
	if t.logger == nil {
		return slog.Default().With("run_id", runID)
	}
	return t.logger.With("run_id", runID)
}
