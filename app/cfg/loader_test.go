package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:            "./test.db",
		Port:              "8080",
		JWTSecret:         "test-secret",
		WorkerCount:       2,
		SchedulerInterval: 300,
		ReenrichBatchSize: 10,
		GeminiAPIKey:      "test-key",
		GeminiModel:       "gemini-2.0-flash-exp",
		GeminiEmbedModel:  "text-embedding-004",
		UserAgent:         "Test Agent",
		ScrapeTimeout:     30,
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("Expected JWT secret 'test-secret', got '%s'", cfg.JWTSecret)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 300 {
		t.Errorf("Expected scheduler interval 300, got %d", cfg.SchedulerInterval)
	}
	if cfg.ReenrichBatchSize != 10 {
		t.Errorf("Expected re-enrich batch size 10, got %d", cfg.ReenrichBatchSize)
	}
	if cfg.GeminiModel != "gemini-2.0-flash-exp" {
		t.Errorf("Expected model 'gemini-2.0-flash-exp', got '%s'", cfg.GeminiModel)
	}
	if cfg.GeminiEmbedModel != "text-embedding-004" {
		t.Errorf("Expected embed model 'text-embedding-004', got '%s'", cfg.GeminiEmbedModel)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.ScrapeTimeout != 30 {
		t.Errorf("Expected scrape timeout 30, got %d", cfg.ScrapeTimeout)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
