package link

import (
	"testing"
)

func newTestCategorizer(t *testing.T) *Categorizer {
	t.Helper()
	categorizer, err := NewCategorizer()
	if err != nil {
		t.Fatalf("NewCategorizer failed: %v", err)
	}
	return categorizer
}

func TestCategorizer_Labels(t *testing.T) {
	categorizer := newTestCategorizer(t)

	tests := []struct {
		name     string
		title    string
		content  string
		expected string
	}{
		{"react keyword", "Getting started with React", "components and hooks", "Development"},
		{"typescript keyword", "Why TypeScript", "types everywhere", "Development"},
		{"design keyword", "Color theory", "fundamentals of visual design", "Design"},
		{"business keyword", "How to grow a startup", "funding rounds", "Business"},
		{"machine learning keyword", "Intro to machine learning", "models and data", "Technology"},
		{"database keyword", "Choosing a database", "storage engines compared", "Database"},
		{"no keywords", "Gardening tips", "how to grow tomatoes", "General"},
		{"case insensitive", "JAVASCRIPT Weekly", "", "Development"},
		{"keyword in content only", "Weekly newsletter", "this issue covers mongodb internals", "Database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizer.Run(tt.title, tt.content); got != tt.expected {
				t.Errorf("Run(%q, %q) = '%s', expected '%s'", tt.title, tt.content, got, tt.expected)
			}
		})
	}
}

func TestCategorizer_PriorityOrder(t *testing.T) {
	categorizer := newTestCategorizer(t)

	// Development outranks Design and Database when keywords from several
	// categories are present
	got := categorizer.Run("javascript for designers", "covers design systems and sql basics")
	if got != "Development" {
		t.Errorf("Expected 'Development' to win by priority, got '%s'", got)
	}

	got = categorizer.Run("design meets sql", "")
	if got != "Design" {
		t.Errorf("Expected 'Design' to outrank 'Database', got '%s'", got)
	}
}

func TestCategorizer_Deterministic(t *testing.T) {
	categorizer := newTestCategorizer(t)

	first := categorizer.Run("Learning SQL", "joins and indexes")
	for i := 0; i < 10; i++ {
		if got := categorizer.Run("Learning SQL", "joins and indexes"); got != first {
			t.Fatalf("Categorizer not deterministic: got '%s' then '%s'", first, got)
		}
	}
}

func TestCategorizer_DefaultCategory(t *testing.T) {
	categorizer := newTestCategorizer(t)

	if categorizer.DefaultCategory() != "General" {
		t.Errorf("Expected default category 'General', got '%s'", categorizer.DefaultCategory())
	}
}
