package core

import (
	"net/http"
	"time"
)

// Config holds all configuration values for the generation toolkit.
// Values are read from the environment (optionally via a .env file loaded
// by the caller before LoadConfig runs).
type Config struct {
	// API credentials
	OpenAIAPIKey string

	// Image API configuration
	ImageAPIURL string // OpenAI-compatible endpoint (default: https://api.openai.com/v1)
	ImageModel  string // Image model name (default: dall-e-3)
	AITimeout   time.Duration

	// File locations
	LedgerPath    string // JSON work ledger
	CatalogPath   string // Static industry/pack catalog (YAML)
	OutputDir     string // Directory for generated artifacts
	HistoryDBPath string // SQLite attempt-history database
	LogFilePath   string

	// Published URL prefix recorded alongside successful artifacts
	URLPrefix string

	// Batch behavior
	MaxAttempts  int           // Attempts per item before giving up (default: 2)
	RetryBackoff time.Duration // Wait between retries of the same item (default: 5s)
	ItemDelay    time.Duration // Wait between items (default: 2s)

	// Post-processing target (5 slides at 200x200 each)
	StripWidth  int
	StripHeight int
}

// Default configuration values.
const (
	DefaultImageModel   = "dall-e-3"
	DefaultImageAPIURL  = "https://api.openai.com/v1"
	DefaultLedgerPath   = "data/generated_prompts.json"
	DefaultCatalogPath  = "data/catalog.yaml"
	DefaultOutputDir    = "reference_carousels"
	DefaultHistoryDB    = "data/history.db"
	DefaultLogFile      = "carouselgen.log"
	DefaultMaxAttempts  = 2
	DefaultStripWidth   = 1000
	DefaultStripHeight  = 200
	defaultAITimeoutSec = 120
)

// LoadConfig reads configuration from environment variables, applying
// defaults for anything unset. It never fails: credential presence is
// checked separately via ValidateCredentials so that read-only operations
// (status display, prompt enumeration) work without an API key.
func LoadConfig() *Config {
	return &Config{
		OpenAIAPIKey: GetEnvOrDefault("OPENAI_API_KEY", ""),

		ImageAPIURL: GetEnvOrDefault("IMAGE_API_URL", DefaultImageAPIURL),
		ImageModel:  GetEnvOrDefault("IMAGE_MODEL", DefaultImageModel),
		AITimeout:   ParseDurationEnv("AI_TIMEOUT", defaultAITimeoutSec),

		LedgerPath:    GetEnvOrDefault("LEDGER_PATH", DefaultLedgerPath),
		CatalogPath:   GetEnvOrDefault("CATALOG_PATH", DefaultCatalogPath),
		OutputDir:     GetEnvOrDefault("OUTPUT_DIR", DefaultOutputDir),
		HistoryDBPath: GetEnvOrDefault("HISTORY_DB_PATH", DefaultHistoryDB),
		LogFilePath:   GetEnvOrDefault("LOG_FILE", DefaultLogFile),

		URLPrefix: GetEnvOrDefault("URL_PREFIX", ""),

		MaxAttempts:  ParseIntEnv("MAX_ATTEMPTS", DefaultMaxAttempts),
		RetryBackoff: ParseDurationEnv("RETRY_BACKOFF", 5),
		ItemDelay:    ParseDurationEnv("ITEM_DELAY", 2),

		StripWidth:  ParseIntEnv("STRIP_WIDTH", DefaultStripWidth),
		StripHeight: ParseIntEnv("STRIP_HEIGHT", DefaultStripHeight),
	}
}

// ValidateCredentials checks that the API credential needed for generation
// is present. Returns a ConfigError if it is missing. This runs before any
// ledger access so a misconfigured run never touches the work ledger.
func (c *Config) ValidateCredentials() error {
	if c.OpenAIAPIKey == "" {
		return ErrMissingAuth("openai")
	}
	return nil
}

// GetHTTPClient returns an HTTP client configured with the given timeout.
// A zero timeout falls back to the configured AI timeout.
func (c *Config) GetHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = c.AITimeout
	}
	return &http.Client{Timeout: timeout}
}
