package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkmind/app/ai"
	"linkmind/app/api"
	"linkmind/app/cfg"
	"linkmind/app/database"
	"linkmind/app/events"
	"linkmind/app/link"
	"linkmind/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting LinkMind server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	userRepo := database.NewUserRepository(db)
	linkRepo := database.NewLinkRepository(db)

	aiClient := ai.NewClient(ai.Config{
		APIKey:        appCfg.GeminiAPIKey,
		GenerateModel: appCfg.GeminiModel,
		EmbedModel:    appCfg.GeminiEmbedModel,
	})
	if appCfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, links will be stored with fallback summaries")
	}

	categorizer, err := link.NewCategorizer()
	if err != nil {
		slog.Error("Failed to load category rules", "error", err)
		os.Exit(1)
	}

	scrapeTimeout := time.Duration(appCfg.ScrapeTimeout) * time.Second
	fetcher := link.NewFetcher(&http.Client{Timeout: scrapeTimeout}, appCfg.UserAgent, scrapeTimeout)
	scraper := link.NewScraper(fetcher, link.NewExtractor())

	notifier := events.NewNotifier()
	subscriberID, eventCh := notifier.Subscribe()
	defer notifier.Unsubscribe(subscriberID)
	go func() {
		for ev := range eventCh {
			slog.Debug("Ingestion progress", "url", ev.URL, "stage", ev.Stage, "degraded", ev.Degraded)
		}
	}()

	ingestor := link.NewIngestor(scraper, categorizer, aiClient, linkRepo, notifier)
	searcher := link.NewSearcher(aiClient, linkRepo)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(linkRepo, aiClient)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(userRepo, linkRepo, ingestor, searcher)
	server := api.NewServer(handler, appCfg.JWTSecret)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
