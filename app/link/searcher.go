package link

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"linkmind/app/database"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50

	// textSearchPoolSize bounds how many recent links the substring
	// fallback scans.
	textSearchPoolSize = 100
)

// Searcher ranks a user's links against a natural-language query. The
// primary path uses embedding distance; when the query embedding cannot be
// generated it falls back to case-insensitive substring matching.
type Searcher struct {
	aiClient AIClient
	linkRepo database.LinkRepository
}

func NewSearcher(aiClient AIClient, linkRepo database.LinkRepository) *Searcher {
	return &Searcher{
		aiClient: aiClient,
		linkRepo: linkRepo,
	}
}

func (s *Searcher) Run(ctx context.Context, userID, query string, limit int) ([]database.Link, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Message: "Search query is required"}
	}

	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	embedding, err := s.aiClient.EmbedText(ctx, query)
	if err != nil {
		slog.Warn("Query embedding failed, falling back to text search", "error", err)
		return s.textSearch(userID, query, limit)
	}

	return s.vectorSearch(userID, embedding, limit)
}

// vectorSearch ranks all of the owner's embedded links by Euclidean distance
// to the query embedding, nearest first.
func (s *Searcher) vectorSearch(userID string, queryEmbedding []float64, limit int) ([]database.Link, error) {
	links, err := s.linkRepo.GetUserLinks(userID, math.MaxInt32, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load links for ranking: %w", err)
	}

	// Distances are computed once per link, not per comparison
	type scoredLink struct {
		link     database.Link
		distance float64
	}

	scored := make([]scoredLink, 0, len(links))
	for _, l := range links {
		if l.ContentEmbedding != nil {
			scored = append(scored, scoredLink{
				link:     l,
				distance: euclideanDistance(l.ContentEmbedding, queryEmbedding),
			})
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].distance < scored[b].distance
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	ranked := make([]database.Link, 0, len(scored))
	for _, s := range scored {
		ranked = append(ranked, s.link)
	}

	return ranked, nil
}

// textSearch retains recent links where the query appears in title, summary,
// content, or domain.
func (s *Searcher) textSearch(userID, query string, limit int) ([]database.Link, error) {
	links, err := s.linkRepo.GetUserLinks(userID, textSearchPoolSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load links for text search: %w", err)
	}

	needle := strings.ToLower(query)

	matched := make([]database.Link, 0, len(links))
	for _, l := range links {
		if strings.Contains(strings.ToLower(l.Title), needle) ||
			strings.Contains(strings.ToLower(l.Summary), needle) ||
			strings.Contains(strings.ToLower(l.Content), needle) ||
			strings.Contains(strings.ToLower(l.Domain), needle) {
			matched = append(matched, l)
		}
	}

	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// euclideanDistance compares embedding vectors. Mismatched dimensions rank
// last rather than failing the whole search.
func euclideanDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.MaxFloat64
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}
