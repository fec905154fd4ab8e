package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// EmbeddingDimensions is the fixed length of content embedding vectors.
// Degraded records store an all-zero vector of this length so they stay
// comparable in similarity queries.
const EmbeddingDimensions = 768

var _ LinkRepository = (*LinkRepositoryImpl)(nil)

// LinkRepositoryImpl handles database operations for links
type LinkRepositoryImpl struct {
	db *DB
}

func NewLinkRepository(db *DB) *LinkRepositoryImpl {
	return &LinkRepositoryImpl{db: db}
}

// CreateLink stores an assembled link record and returns it with its
// assigned ID and timestamps.
func (r *LinkRepositoryImpl) CreateLink(link NewLink) (*Link, error) {
	embedding, err := marshalEmbedding(link.ContentEmbedding)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding: %w", err)
	}

	now := time.Now().UTC()

	result, err := r.db.Exec(`
		INSERT INTO links (
			user_id, url, title, summary, content, favicon,
			domain, category, read_time, content_embedding,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, link.UserID, link.URL, link.Title, link.Summary, link.Content, link.Favicon,
		link.Domain, link.Category, link.ReadTime, embedding, now, now)

	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted link id: %w", err)
	}

	return r.GetLinkByID(id, link.UserID)
}

// GetUserLinks returns the owner's links, newest first.
func (r *LinkRepositoryImpl) GetUserLinks(userID string, limit, offset int) ([]Link, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, url, title, summary, COALESCE(content, ''),
		       COALESCE(favicon, ''), domain, COALESCE(category, ''),
		       COALESCE(read_time, ''), content_embedding, created_at, updated_at
		FROM links
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user links: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

// GetLinkByID returns the link with the given ID if it belongs to the user.
func (r *LinkRepositoryImpl) GetLinkByID(id int64, userID string) (*Link, error) {
	var link Link
	var embedding sql.NullString

	err := r.db.QueryRow(`
		SELECT id, user_id, url, title, summary, COALESCE(content, ''),
		       COALESCE(favicon, ''), domain, COALESCE(category, ''),
		       COALESCE(read_time, ''), content_embedding, created_at, updated_at
		FROM links
		WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&link.ID, &link.UserID, &link.URL, &link.Title, &link.Summary,
		&link.Content, &link.Favicon, &link.Domain, &link.Category, &link.ReadTime,
		&embedding, &link.CreatedAt, &link.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	if link.ContentEmbedding, err = unmarshalEmbedding(embedding); err != nil {
		return nil, fmt.Errorf("failed to decode embedding: %w", err)
	}

	return &link, nil
}

// DeleteLink removes a link. Ownership is enforced in the predicate, so a
// delete for someone else's link is a no-op.
func (r *LinkRepositoryImpl) DeleteLink(id int64, userID string) error {
	_, err := r.db.Exec(`
		DELETE FROM links
		WHERE id = ? AND user_id = ?
	`, id, userID)

	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	return nil
}

// GetLinkCount returns the total number of links across all users
func (r *LinkRepositoryImpl) GetLinkCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM links").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total link count: %w", err)
	}
	return count, nil
}

// GetUserLinkCount returns the total number of links for a user
func (r *LinkRepositoryImpl) GetUserLinkCount(userID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM links WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get link count: %w", err)
	}
	return count, nil
}

// GetUserLinkCountSince returns the number of links created at or after the given time
func (r *LinkRepositoryImpl) GetUserLinkCountSince(userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM links
		WHERE user_id = ? AND created_at >= ?
	`, userID, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get link count since: %w", err)
	}
	return count, nil
}

// GetUserCategories returns the distinct non-empty categories used by a user's links
func (r *LinkRepositoryImpl) GetUserCategories(userID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT category FROM links
		WHERE user_id = ? AND category IS NOT NULL AND category != ''
		ORDER BY category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// GetDegradedLinks returns links whose embedding is the all-zero fallback
// vector, oldest first, so the re-enrichment task can retry them.
func (r *LinkRepositoryImpl) GetDegradedLinks(limit int) ([]Link, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, url, title, summary, COALESCE(content, ''),
		       COALESCE(favicon, ''), domain, COALESCE(category, ''),
		       COALESCE(read_time, ''), content_embedding, created_at, updated_at
		FROM links
		WHERE content_embedding = ?
		ORDER BY created_at ASC
		LIMIT ?
	`, zeroEmbeddingJSON(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get degraded links: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

// UpdateAIFields replaces the summary and embedding of a link after a
// successful re-enrichment pass.
func (r *LinkRepositoryImpl) UpdateAIFields(id int64, summary string, embedding []float64) error {
	encoded, err := marshalEmbedding(embedding)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE links
		SET summary = ?, content_embedding = ?, updated_at = ?
		WHERE id = ?
	`, summary, encoded, time.Now().UTC(), id)

	if err != nil {
		return fmt.Errorf("failed to update AI fields: %w", err)
	}

	return nil
}

func scanLinks(rows *sql.Rows) ([]Link, error) {
	var links []Link
	for rows.Next() {
		var link Link
		var embedding sql.NullString

		err := rows.Scan(&link.ID, &link.UserID, &link.URL, &link.Title, &link.Summary,
			&link.Content, &link.Favicon, &link.Domain, &link.Category, &link.ReadTime,
			&embedding, &link.CreatedAt, &link.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}

		if link.ContentEmbedding, err = unmarshalEmbedding(embedding); err != nil {
			return nil, fmt.Errorf("failed to decode embedding: %w", err)
		}

		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating link rows: %w", err)
	}

	return links, nil
}

// marshalEmbedding encodes a vector as a JSON array for the TEXT column.
// SQLite has no native vector type; similarity ranking happens in-process.
func marshalEmbedding(embedding []float64) (interface{}, error) {
	if embedding == nil {
		return nil, nil
	}
	data, err := json.Marshal(embedding)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func unmarshalEmbedding(value sql.NullString) ([]float64, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	var embedding []float64
	if err := json.Unmarshal([]byte(value.String), &embedding); err != nil {
		return nil, err
	}
	return embedding, nil
}

// zeroEmbeddingJSON is the canonical encoding of the all-zero fallback
// vector. Encoding is deterministic, so equality identifies degraded rows.
func zeroEmbeddingJSON() string {
	data, _ := json.Marshal(make([]float64, EmbeddingDimensions))
	return string(data)
}
