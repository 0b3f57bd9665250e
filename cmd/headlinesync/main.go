package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"HeadlineSync/internal/app"
	"HeadlineSync/internal/config"
	"HeadlineSync/internal/logging"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "preview the transfer without making changes")
	flag.Parse()

	// Local runs pick up credentials from a .env in the working directory;
	// in CI the variables come from the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger)

	err := application.Run(ctx, *dryRun)
	_ = application.Close()
	if err != nil {
		logger.Error("transfer run failed", "error", err)
		os.Exit(1)
	}
}
