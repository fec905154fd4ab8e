package api

import (
	"context"
	"time"

	"linkmind/app/database"
	"linkmind/app/link"
)

type IngestorInterface interface {
	Run(ctx context.Context, userID, rawURL string) (*database.Link, bool, error)
}

var _ IngestorInterface = (*link.Ingestor)(nil)

type SearcherInterface interface {
	Run(ctx context.Context, userID, query string, limit int) ([]database.Link, error)
}

var _ SearcherInterface = (*link.Searcher)(nil)

type Handler struct {
	userRepo database.UserRepository
	linkRepo database.LinkRepository
	ingestor IngestorInterface
	searcher SearcherInterface
}

// linkResponse is the wire shape of a stored link. Embeddings stay
// server-side.
type linkResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content,omitempty"`
	Favicon   string    `json:"favicon,omitempty"`
	Domain    string    `json:"domain"`
	Category  string    `json:"category,omitempty"`
	ReadTime  string    `json:"readTime,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// createLinkResponse is the link's fields flat at the top level with the
// transient AI flag alongside.
type createLinkResponse struct {
	linkResponse
	AIAvailable bool `json:"aiAvailable"`
}

func toLinkResponse(l database.Link) linkResponse {
	return linkResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		URL:       l.URL,
		Title:     l.Title,
		Summary:   l.Summary,
		Content:   l.Content,
		Favicon:   l.Favicon,
		Domain:    l.Domain,
		Category:  l.Category,
		ReadTime:  l.ReadTime,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toLinkResponses(links []database.Link) []linkResponse {
	out := make([]linkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, toLinkResponse(l))
	}
	return out
}

type userResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

func toUserResponse(u database.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
}
