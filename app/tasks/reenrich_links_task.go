package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"linkmind/app/database"
	"linkmind/app/link"
)

// ReenrichLinksTask retries AI summarization and embedding for links that
// were stored with fallback values while the AI collaborator was down.
type ReenrichLinksTask struct {
	Task
	linkRepo  database.LinkRepository
	aiClient  link.AIClient
	batchSize int
}

func NewReenrichLinksTask(linkRepo database.LinkRepository, aiClient link.AIClient, batchSize int) *ReenrichLinksTask {
	return &ReenrichLinksTask{
		Task:      NewTask(TaskTypeReenrichLinks, "degraded_links"),
		linkRepo:  linkRepo,
		aiClient:  aiClient,
		batchSize: batchSize,
	}
}

func (t *ReenrichLinksTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	links, err := t.linkRepo.GetDegradedLinks(t.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get degraded links: %w", err)
	}

	if len(links) == 0 {
		slog.Debug("No links need re-enrichment")
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, l := range links {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := t.reenrichLink(ctx, l)
		if err != nil {
			slog.Error("Failed to re-enrich link", "link_id", l.ID, "url", l.URL, "error", err)
			errorCount++
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ReenrichLinksTask) reenrichLink(ctx context.Context, l database.Link) error {
	summary, err := t.aiClient.GenerateSummary(ctx, l.Content, l.Title)
	if err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	embedding, err := t.aiClient.EmbedText(ctx, l.Content)
	if err != nil {
		return fmt.Errorf("failed to embed content: %w", err)
	}

	err = t.linkRepo.UpdateAIFields(l.ID, summary, embedding)
	if err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}

	slog.Debug("Link re-enriched", "link_id", l.ID, "url", l.URL)
	return nil
}
