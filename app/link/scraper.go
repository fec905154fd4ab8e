package link

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Scraper combines fetching and extraction. Any failure along the way
// surfaces as a single *ScrapeError.
type Scraper struct {
	fetcher   *Fetcher
	extractor *Extractor
}

func NewScraper(fetcher *Fetcher, extractor *Extractor) *Scraper {
	return &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
	}
}

func (s *Scraper) Run(ctx context.Context, rawURL string) (*PageContent, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ScrapeError{URL: rawURL, Err: fmt.Errorf("failed to parse URL: %w", err)}
	}

	data, err := s.fetcher.Run(ctx, rawURL)
	if err != nil {
		return nil, &ScrapeError{URL: rawURL, Err: err}
	}

	page, err := s.extractor.Run(data, pageURL)
	if err != nil {
		return nil, &ScrapeError{URL: rawURL, Err: err}
	}

	slog.Debug("Page scraped",
		"url", rawURL,
		"title", page.Title,
		"content_length", len(page.Content))

	return page, nil
}
