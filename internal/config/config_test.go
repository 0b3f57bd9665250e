package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HEADLINE_SYNC_CONFIG", "")
	t.Setenv("AIRTABLE_API_KEY", "")

	cfg := Load()

	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.BaseURL)
	assert.NotEmpty(t, cfg.Airtable.BaseID)
	assert.NotEmpty(t, cfg.Airtable.HeadlineTable)
	assert.NotEmpty(t, cfg.Airtable.ArticlesTable)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.Output.ColorMode)
	assert.Empty(t, cfg.Airtable.APIKey)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HEADLINE_SYNC_CONFIG", "")
	t.Setenv("AIRTABLE_API_KEY", "key-from-env")
	t.Setenv("AIRTABLE_BASE_ID", "appOVERRIDE")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/webhook")
	t.Setenv("DATABASE_DSN", "postgres://ledger")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "key-from-env", cfg.Airtable.APIKey)
	assert.Equal(t, "appOVERRIDE", cfg.Airtable.BaseID)
	assert.Equal(t, "https://discord.example/webhook", cfg.Notifications.Discord.WebhookURL)
	assert.Equal(t, "postgres://ledger", cfg.Ledger.DSN)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMergesYAMLFile(t *testing.T) {
	raw := `
airtable:
  baseId: appFILE
  headlineTable: tblFileHeadlines
notifications:
  discord:
    webhookUrl: https://discord.example/from-file
logging:
  level: warn
output:
  colorMode: never
`
	path := filepath.Join(t.TempDir(), "headlinesync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	t.Setenv("HEADLINE_SYNC_CONFIG", path)
	t.Setenv("AIRTABLE_API_KEY", "")
	t.Setenv("AIRTABLE_BASE_ID", "")
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, "appFILE", cfg.Airtable.BaseID)
	assert.Equal(t, "tblFileHeadlines", cfg.Airtable.HeadlineTable)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.BaseURL)
	assert.Equal(t, "https://discord.example/from-file", cfg.Notifications.Discord.WebhookURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "never", cfg.Output.ColorMode)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	raw := `
airtable:
  apiKey: key-from-file
`
	path := filepath.Join(t.TempDir(), "headlinesync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	t.Setenv("HEADLINE_SYNC_CONFIG", path)
	t.Setenv("AIRTABLE_API_KEY", "key-from-env")

	cfg := Load()
	assert.Equal(t, "key-from-env", cfg.Airtable.APIKey)
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.Validate()
	require.ErrorContains(t, err, "AIRTABLE_API_KEY")

	cfg.Airtable.APIKey = "key"
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiresTableIdentifiers(t *testing.T) {
	cfg := defaultConfig()
	cfg.Airtable.APIKey = "key"
	cfg.Airtable.ArticlesTable = ""

	require.ErrorContains(t, cfg.Validate(), "table identifiers")
}
