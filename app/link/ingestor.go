package link

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"linkmind/app/database"
	"linkmind/app/events"
)

// Ingestor sequences scrape, categorize, summarize/embed, and persist.
// Scrape and AI failures each degrade to deterministic fallback values;
// only URL syntax is a hard precondition. A partially-informative record
// is strictly better than no record.
type Ingestor struct {
	scraper     *Scraper
	categorizer *Categorizer
	aiClient    AIClient
	linkRepo    database.LinkRepository
	notifier    *events.Notifier
}

func NewIngestor(scraper *Scraper, categorizer *Categorizer, aiClient AIClient,
	linkRepo database.LinkRepository, notifier *events.Notifier) *Ingestor {
	return &Ingestor{
		scraper:     scraper,
		categorizer: categorizer,
		aiClient:    aiClient,
		linkRepo:    linkRepo,
		notifier:    notifier,
	}
}

// aiFields is the joint result of the summarize and embed calls. The two
// calls fail independently, but the fallback replaces both so a degraded
// record stays internally consistent.
type aiFields struct {
	Summary   string
	Embedding []float64
}

// runStage executes a pipeline stage and substitutes a fallback value on
// error. The boolean reports whether the primary path succeeded.
func runStage[T any](stage func() (T, error), fallback func(err error) T) (T, bool) {
	value, err := stage()
	if err != nil {
		return fallback(err), false
	}
	return value, true
}

// Run ingests a URL for a user and returns the stored link plus a transient
// flag reporting whether the AI collaborator was available.
func (i *Ingestor) Run(ctx context.Context, userID, rawURL string) (*database.Link, bool, error) {
	pageURL, err := parseSubmittedURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	i.notifier.Publish(events.Event{URL: rawURL, Stage: events.StageScraping})

	page, scraped := runStage(
		func() (*PageContent, error) {
			return i.scraper.Run(ctx, rawURL)
		},
		func(err error) *PageContent {
			slog.Warn("Scrape failed, using fallback record", "url", rawURL, "error", err)
			return fallbackPage(rawURL, pageURL)
		},
	)

	category := i.categorizer.DefaultCategory()
	if scraped {
		category = i.categorizer.Run(page.Title, page.Content)
	}

	i.notifier.Publish(events.Event{URL: rawURL, Stage: events.StageSummarizing, Degraded: !scraped})

	fields, aiAvailable := runStage(
		func() (aiFields, error) {
			summary, err := i.aiClient.GenerateSummary(ctx, page.Content, page.Title)
			if err != nil {
				return aiFields{}, err
			}
			embedding, err := i.aiClient.EmbedText(ctx, page.Content)
			if err != nil {
				return aiFields{}, err
			}
			return aiFields{Summary: summary, Embedding: embedding}, nil
		},
		func(err error) aiFields {
			slog.Warn("AI processing failed, using fallback summary and zero embedding", "url", rawURL, "error", err)
			return aiFields{
				Summary:   fallbackSummary(page.Domain),
				Embedding: make([]float64, database.EmbeddingDimensions),
			}
		},
	)

	i.notifier.Publish(events.Event{URL: rawURL, Stage: events.StagePersisting, Degraded: !scraped || !aiAvailable})

	stored, err := i.linkRepo.CreateLink(database.NewLink{
		UserID:           userID,
		URL:              rawURL,
		Title:            page.Title,
		Summary:          fields.Summary,
		Content:          page.Content,
		Favicon:          page.Favicon,
		Domain:           page.Domain,
		Category:         category,
		ReadTime:         page.ReadTime,
		ContentEmbedding: fields.Embedding,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to persist link: %w", err)
	}

	i.notifier.Publish(events.Event{URL: rawURL, Stage: events.StageDone, Degraded: !scraped || !aiAvailable})

	slog.Info("Link ingested",
		"link_id", stored.ID,
		"url", rawURL,
		"category", category,
		"scraped", scraped,
		"ai_available", aiAvailable)

	return stored, aiAvailable, nil
}

// parseSubmittedURL validates the submitted URL syntax. This is the only
// hard precondition of ingestion.
func parseSubmittedURL(rawURL string) (*url.URL, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid URL format"}
	}
	if (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return nil, &ValidationError{Message: "Invalid URL format"}
	}
	return pageURL, nil
}

// fallbackPage builds the degraded record used when scraping fails.
func fallbackPage(rawURL string, pageURL *url.URL) *PageContent {
	domain := pageURL.Hostname()
	return &PageContent{
		Title:    fmt.Sprintf("Link from %s", domain),
		Content:  fmt.Sprintf("Content could not be extracted from %s. This link has been saved for manual review.", rawURL),
		Favicon:  FaviconServiceURL(domain),
		Domain:   domain,
		ReadTime: "Unknown",
	}
}

// fallbackSummary is the deterministic summary used when the AI collaborator
// is unavailable.
func fallbackSummary(domain string) string {
	return fmt.Sprintf("Link saved from %s. AI summarization is currently unavailable - please check your Gemini API key configuration.", domain)
}
