package link

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkmind/app/database"
)

func seedLink(repo *fakeLinkRepo, userID, title string, embedding []float64) *database.Link {
	repo.nextID++
	stored := database.Link{
		ID:               repo.nextID,
		UserID:           userID,
		URL:              "https://example.com/" + title,
		Title:            title,
		Summary:          "Summary of " + title,
		Domain:           "example.com",
		ContentEmbedding: embedding,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	repo.links = append([]database.Link{stored}, repo.links...)
	return &stored
}

func embeddingAt(value float64) []float64 {
	v := make([]float64, database.EmbeddingDimensions)
	v[0] = value
	return v
}

func TestSearcher_EmptyQuery(t *testing.T) {
	searcher := NewSearcher(&fakeAIClient{}, &fakeLinkRepo{})

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := searcher.Run(context.Background(), "user-1", query, 10)

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Expected *ValidationError for query %q, got %v", query, err)
		}
	}
}

func TestSearcher_VectorRanking(t *testing.T) {
	repo := &fakeLinkRepo{}
	far := seedLink(repo, "user-1", "far", embeddingAt(10.0))
	near := seedLink(repo, "user-1", "near", embeddingAt(1.1))
	mid := seedLink(repo, "user-1", "mid", embeddingAt(4.0))

	aiClient := &fakeAIClient{embedding: embeddingAt(1.0)}
	searcher := NewSearcher(aiClient, repo)

	results, err := searcher.Run(context.Background(), "user-1", "some query", 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].ID != near.ID || results[1].ID != mid.ID || results[2].ID != far.ID {
		t.Errorf("Expected nearest-first order [near mid far], got [%s %s %s]",
			results[0].Title, results[1].Title, results[2].Title)
	}
}

func TestSearcher_VectorRanking_TiesKeepRepositoryOrder(t *testing.T) {
	repo := &fakeLinkRepo{}
	older := seedLink(repo, "user-1", "older", embeddingAt(3.0))
	newer := seedLink(repo, "user-1", "newer", embeddingAt(3.0))

	searcher := NewSearcher(&fakeAIClient{embedding: embeddingAt(1.0)}, repo)

	results, err := searcher.Run(context.Background(), "user-1", "query", 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	// Equidistant links keep the repository's newest-first order
	if results[0].ID != newer.ID || results[1].ID != older.ID {
		t.Errorf("Expected [newer older] for equal distances, got [%s %s]",
			results[0].Title, results[1].Title)
	}
}

func TestSearcher_VectorSearchSkipsUnembeddedLinks(t *testing.T) {
	repo := &fakeLinkRepo{}
	seedLink(repo, "user-1", "no-embedding", nil)
	embedded := seedLink(repo, "user-1", "embedded", embeddingAt(2.0))

	searcher := NewSearcher(&fakeAIClient{embedding: embeddingAt(1.0)}, repo)

	results, err := searcher.Run(context.Background(), "user-1", "query", 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 || results[0].ID != embedded.ID {
		t.Errorf("Expected only the embedded link, got %d results", len(results))
	}
}

func TestSearcher_LimitClamping(t *testing.T) {
	repo := &fakeLinkRepo{}
	for i := 0; i < MaxSearchLimit+10; i++ {
		seedLink(repo, "user-1", "link", embeddingAt(float64(i)))
	}

	searcher := NewSearcher(&fakeAIClient{embedding: embeddingAt(0)}, repo)

	tests := []struct {
		name      string
		limit     int
		wantCount int
	}{
		{"zero uses default", 0, DefaultSearchLimit},
		{"negative uses default", -5, DefaultSearchLimit},
		{"above max clamps", MaxSearchLimit + 100, MaxSearchLimit},
		{"in range kept", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := searcher.Run(context.Background(), "user-1", "query", tt.limit)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("Expected %d results, got %d", tt.wantCount, len(results))
			}
		})
	}
}

func TestSearcher_OwnerScoping(t *testing.T) {
	repo := &fakeLinkRepo{}
	seedLink(repo, "user-2", "other users link", embeddingAt(1.0))
	mine := seedLink(repo, "user-1", "my link", embeddingAt(1.0))

	searcher := NewSearcher(&fakeAIClient{embedding: embeddingAt(1.0)}, repo)

	results, err := searcher.Run(context.Background(), "user-1", "query", 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 || results[0].ID != mine.ID {
		t.Errorf("Expected only user-1's link, got %d results", len(results))
	}
}

func TestSearcher_TextFallbackWhenEmbeddingFails(t *testing.T) {
	repo := &fakeLinkRepo{}
	match := seedLink(repo, "user-1", "Learning Golang Patterns", nil)
	seedLink(repo, "user-1", "Cooking at home", nil)

	aiClient := &fakeAIClient{embeddingErr: errors.New("provider down")}
	searcher := NewSearcher(aiClient, repo)

	results, err := searcher.Run(context.Background(), "user-1", "golang", 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 || results[0].ID != match.ID {
		t.Fatalf("Expected the golang link via text fallback, got %d results", len(results))
	}
}

func TestSearcher_TextFallbackMatchesAllFields(t *testing.T) {
	repo := &fakeLinkRepo{}
	repo.nextID++
	repo.links = append(repo.links, database.Link{
		ID:      repo.nextID,
		UserID:  "user-1",
		Title:   "Untitled",
		Summary: "Notes on distributed systems",
		Domain:  "example.com",
	})

	aiClient := &fakeAIClient{embeddingErr: errors.New("down")}
	searcher := NewSearcher(aiClient, repo)

	for _, query := range []string{"DISTRIBUTED", "example.com", "untitled"} {
		results, err := searcher.Run(context.Background(), "user-1", query, 10)
		if err != nil {
			t.Fatalf("Run failed for %q: %v", query, err)
		}
		if len(results) != 1 {
			t.Errorf("Expected a match for %q, got %d results", query, len(results))
		}
	}
}
