package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "HEADLINE_SYNC_CONFIG"
	airtableAPIKeyEnv = "AIRTABLE_API_KEY"
	airtableBaseEnv   = "AIRTABLE_BASE_ID"
	discordWebhookEnv = "DISCORD_WEBHOOK_URL"
	databaseDSNEnv    = "DATABASE_DSN"
	logLevelEnv       = "LOG_LEVEL"
)

// Config holds all settings required across the application. It is built once
// at startup and passed down; nothing reads the environment after Load.
type Config struct {
	Airtable      AirtableConfig     `yaml:"airtable"`
	Notifications NotificationConfig `yaml:"notifications"`
	Ledger        LedgerConfig       `yaml:"ledger"`
	Logging       LoggingConfig      `yaml:"logging"`
	Output        OutputConfig       `yaml:"output"`
}

// AirtableConfig describes the spreadsheet-database API endpoints.
type AirtableConfig struct {
	BaseURL       string `yaml:"baseUrl"`
	BaseID        string `yaml:"baseId"`
	HeadlineTable string `yaml:"headlineTable"`
	ArticlesTable string `yaml:"articlesTable"`
	APIKey        string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig wires the webhook used for transfer announcements.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
}

// LedgerConfig describes the optional Postgres transfer ledger.
type LedgerConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls the slog handler level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig controls console summary rendering. ColorMode accepts
// "auto", "always", or "never".
type OutputConfig struct {
	ColorMode string `yaml:"colorMode"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate enforces startup requirements; a missing API credential is fatal
// before any network call happens.
func (c Config) Validate() error {
	if c.Airtable.APIKey == "" {
		return fmt.Errorf("%s is not set: provide it via environment or .env", airtableAPIKeyEnv)
	}
	if c.Airtable.BaseID == "" {
		return fmt.Errorf("airtable base ID is not configured")
	}
	if c.Airtable.HeadlineTable == "" || c.Airtable.ArticlesTable == "" {
		return fmt.Errorf("airtable table identifiers are not configured")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(airtableAPIKeyEnv); v != "" {
		c.Airtable.APIKey = v
	}

	if v := os.Getenv(airtableBaseEnv); v != "" {
		c.Airtable.BaseID = v
	}

	if v := os.Getenv(discordWebhookEnv); v != "" {
		c.Notifications.Discord.WebhookURL = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Ledger.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Airtable.BaseURL != "" {
		base.Airtable.BaseURL = override.Airtable.BaseURL
	}
	if override.Airtable.BaseID != "" {
		base.Airtable.BaseID = override.Airtable.BaseID
	}
	if override.Airtable.HeadlineTable != "" {
		base.Airtable.HeadlineTable = override.Airtable.HeadlineTable
	}
	if override.Airtable.ArticlesTable != "" {
		base.Airtable.ArticlesTable = override.Airtable.ArticlesTable
	}
	if override.Airtable.APIKey != "" {
		base.Airtable.APIKey = override.Airtable.APIKey
	}

	if override.Notifications.Discord.WebhookURL != "" {
		base.Notifications.Discord.WebhookURL = override.Notifications.Discord.WebhookURL
	}

	if override.Ledger.DSN != "" {
		base.Ledger.DSN = override.Ledger.DSN
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Output.ColorMode != "" {
		base.Output.ColorMode = override.Output.ColorMode
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Airtable: AirtableConfig{
			BaseURL:       "https://api.airtable.com/v0",
			BaseID:        "appN9kmTgJbjel4J1",
			HeadlineTable: "tbl00YTHfrVnKQQai",
			ArticlesTable: "tblUhbxC3LIKgORLa",
		},
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{ColorMode: "auto"},
	}
}
