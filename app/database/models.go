package database

import (
	"time"
)

// User is an identity-provider account. Rows are upserted from verified
// token claims; the provider itself owns the account lifecycle.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Link is a saved URL plus its extracted and generated metadata.
type Link struct {
	ID               int64
	UserID           string
	URL              string
	Title            string
	Summary          string
	Content          string
	Favicon          string
	Domain           string
	Category         string
	ReadTime         string
	ContentEmbedding []float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewLink carries the fields assembled by the ingestion pipeline.
// ID and timestamps are assigned by the store.
type NewLink struct {
	UserID           string
	URL              string
	Title            string
	Summary          string
	Content          string
	Favicon          string
	Domain           string
	Category         string
	ReadTime         string
	ContentEmbedding []float64
}
