package app

import (
	"context"
	"log/slog"

	"HeadlineSync/internal/config"
	"HeadlineSync/internal/infrastructure/airtable"
	"HeadlineSync/internal/infrastructure/discord"
	"HeadlineSync/internal/infrastructure/storage"
	"HeadlineSync/internal/logging"
	"HeadlineSync/internal/output"
	"HeadlineSync/internal/ports"
	"HeadlineSync/internal/usecase"
)

// Application wires configuration to the transfer pipeline and its adapters.
type Application struct {
	cfg      config.Config
	transfer *usecase.Transfer
	printer  *output.Printer
	ledger   *storage.PostgresLedger
}

// New builds a runnable application instance. The notifier and ledger are
// optional: both stay nil when unconfigured, and a ledger that fails to open
// degrades to a warning because it never affects the transfer outcome.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := airtable.NewClient(cfg.Airtable, baseLogger.With("component", "airtable"))
	queue := airtable.NewHeadlineQueue(client, cfg.Airtable.HeadlineTable)
	articles := airtable.NewArticleStore(client, cfg.Airtable.ArticlesTable)

	var notifier ports.Notifier
	if cfg.Notifications.Discord.WebhookURL != "" {
		notifier = discord.NewNotifier(cfg.Notifications.Discord.WebhookURL)
	}

	var pgLedger *storage.PostgresLedger
	var ledger ports.TransferLedger
	if cfg.Ledger.DSN != "" {
		opened, err := storage.Open(cfg.Ledger.DSN)
		if err != nil {
			baseLogger.Warn("transfer ledger unavailable, continuing without it", "error", err)
		} else {
			pgLedger = opened
			ledger = opened
		}
	}

	transfer := usecase.NewTransfer(usecase.TransferDeps{
		Queue:    queue,
		Articles: articles,
		Notifier: notifier,
		Ledger:   ledger,
		Logger:   baseLogger.With("component", "transfer"),
	})

	printer := output.NewPrinter(output.ResolveColors(cfg.Output.ColorMode))

	return &Application{
		cfg:      cfg,
		transfer: transfer,
		printer:  printer,
		ledger:   pgLedger,
	}
}

// Run executes one transfer pass and always prints the console summary, even
// when the run aborts partway through a read.
func (a *Application) Run(ctx context.Context, dryRun bool) error {
	report, err := a.transfer.Run(ctx, dryRun)
	output.PrintReport(a.printer, report)
	return err
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.ledger == nil {
		return nil
	}
	return a.ledger.Close()
}
