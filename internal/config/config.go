// Package config loads process configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the bot. All values come from the
// process environment.
type Config struct {
	// TelegramBotToken authenticates the bot against the Telegram API.
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`

	// TelegramProxyURL optionally routes Telegram traffic through a forward
	// proxy.
	TelegramProxyURL string `envconfig:"TELEGRAM_PROXY_URL"`

	// BNBChainRPCURL is the BNB Chain JSON-RPC endpoint, used only for a
	// startup connectivity probe. Empty disables the probe.
	BNBChainRPCURL string `envconfig:"BNB_CHAIN_RPC_URL"`

	// BscScanAPIKey authenticates explorer API calls.
	BscScanAPIKey string `envconfig:"BSCSCAN_API_KEY" required:"true"`

	// BscScanAPIURL is the explorer API endpoint.
	BscScanAPIURL string `envconfig:"BSCSCAN_API_URL" default:"https://api.bscscan.com/api"`

	// DataFilePath is where the tracked-wallets snapshot is written.
	DataFilePath string `envconfig:"DATA_FILE_PATH" default:"data/tracked_wallets.json"`

	// ExplorerTimeout bounds each explorer HTTP call.
	ExplorerTimeout time.Duration `envconfig:"EXPLORER_HTTP_TIMEOUT" default:"10s"`

	// LogLevel sets the minimum log level.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// TelemetryEnabled turns on OTLP telemetry export.
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`
}

// Load sources an optional .env file from the working directory, then reads
// the configuration from the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
