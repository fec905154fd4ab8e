package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"linkmind/app/database"
	"linkmind/app/link"
)

func NewHandler(userRepo database.UserRepository, linkRepo database.LinkRepository,
	ingestor IngestorInterface, searcher SearcherInterface) *Handler {
	return &Handler{
		userRepo: userRepo,
		linkRepo: linkRepo,
		ingestor: ingestor,
		searcher: searcher,
	}
}

type createLinkRequest struct {
	URL string `json:"url"`
}

func (h *Handler) CreateLink(c *gin.Context) {
	var req createLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "URL is required"})
		return
	}

	stored, aiAvailable, err := h.ingestor.Run(c.Request.Context(), currentUserID(c), req.URL)
	if err != nil {
		var validationErr *link.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
			return
		}
		slog.Error("Link ingestion failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save link"})
		return
	}

	c.JSON(http.StatusOK, createLinkResponse{
		linkResponse: toLinkResponse(*stored),
		AIAvailable:  aiAvailable,
	})
}

func (h *Handler) ListLinks(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	links, err := h.linkRepo.GetUserLinks(currentUserID(c), limit, offset)
	if err != nil {
		slog.Error("Database error", "operation", "get_user_links", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, toLinkResponses(links))
}

func (h *Handler) DeleteLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid link ID"})
		return
	}

	err = h.linkRepo.DeleteLink(id, currentUserID(c))
	if err != nil {
		slog.Error("Database error", "operation", "delete_link", "link_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}

func (h *Handler) SearchLinks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Search query is required"})
		return
	}

	limit := link.DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > link.MaxSearchLimit {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search parameters"})
			return
		}
		limit = parsed
	}

	results, err := h.searcher.Run(c.Request.Context(), currentUserID(c), query, limit)
	if err != nil {
		var validationErr *link.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
			return
		}
		slog.Error("Search failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, toLinkResponses(results))
}

func (h *Handler) GetStats(c *gin.Context) {
	userID := currentUserID(c)
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)

	var totalLinks, thisWeek int
	var categories []string

	var g errgroup.Group
	g.Go(func() error {
		var err error
		totalLinks, err = h.linkRepo.GetUserLinkCount(userID)
		return err
	})
	g.Go(func() error {
		var err error
		thisWeek, err = h.linkRepo.GetUserLinkCountSince(userID, weekAgo)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = h.linkRepo.GetUserCategories(userID)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalLinks": totalLinks,
		"thisWeek":   thisWeek,
		"categories": len(categories),
		"searches":   0,
	})
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.userRepo.GetUser(currentUserID(c))
	if err != nil {
		slog.Error("Database error", "operation", "get_user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if linkCount, err := h.linkRepo.GetLinkCount(); err == nil {
		health["links"] = linkCount
	}

	c.JSON(http.StatusOK, health)
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
