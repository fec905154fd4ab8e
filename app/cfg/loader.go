package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./linkmind.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	JWTSecret         string `long:"jwt-secret" env:"JWT_SECRET" description:"Shared secret for verifying identity provider tokens (required)" required:"true"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for link re-enrichment"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"300" description:"Re-enrichment scheduler interval in seconds"`
	ReenrichBatchSize int    `long:"reenrich-batch-size" env:"REENRICH_BATCH_SIZE" default:"10" description:"Maximum degraded links retried per scheduler pass"`

	// AI provider configuration
	GeminiAPIKey     string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Google AI Studio API key (AI features degrade gracefully when unset)"`
	GeminiModel      string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.0-flash-exp" description:"Model used for summarization"`
	GeminiEmbedModel string `long:"gemini-embed-model" env:"GEMINI_EMBED_MODEL" default:"text-embedding-004" description:"Model used for embeddings"`

	// Scraping configuration
	UserAgent     string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36" description:"User agent string for scraping requests"`
	ScrapeTimeout int    `long:"scrape-timeout" env:"SCRAPE_TIMEOUT" default:"30" description:"Scrape request timeout in seconds"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		JWTSecret:         raw.JWTSecret,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		ReenrichBatchSize: raw.ReenrichBatchSize,
		GeminiAPIKey:      raw.GeminiAPIKey,
		GeminiModel:       raw.GeminiModel,
		GeminiEmbedModel:  raw.GeminiEmbedModel,
		UserAgent:         raw.UserAgent,
		ScrapeTimeout:     raw.ScrapeTimeout,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
