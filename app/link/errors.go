package link

import (
	"fmt"
)

// ValidationError marks client-fixable input problems (malformed URL, empty
// query). The API layer maps it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FetchError reports a failed document retrieval, either at the network
// level or as a non-success HTTP status.
type FetchError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch failed: %v", e.Err)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ScrapeError wraps any failure of the fetch-and-extract step. The ingestion
// pipeline recovers from it with a degraded record and never surfaces it.
type ScrapeError struct {
	URL string
	Err error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("failed to scrape %s: %v", e.URL, e.Err)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}
