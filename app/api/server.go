package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"linkmind/app/cfg"
	"linkmind/app/database"
)

const userIDContextKey = "userID"

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, jwtSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, jwtSecret)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, jwtSecret string) {
	// Health and status endpoints (unauthenticated)
	r.GET("/health", handler.GetHealth)

	authed := r.Group("/")
	authed.Use(authMiddleware(handler.userRepo, jwtSecret))
	{
		authed.POST("/links", handler.CreateLink)
		authed.GET("/links", handler.ListLinks)
		authed.DELETE("/links/:id", handler.DeleteLink)
		authed.GET("/search", handler.SearchLinks)
		authed.GET("/stats", handler.GetStats)
		authed.GET("/auth/user", handler.GetCurrentUser)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "LinkMind",
			"version":     cfg.GetVersion(),
			"description": "Personal knowledge base with AI-powered link summarization and semantic search",
			"endpoints": map[string]string{
				"create": "/links (POST, requires Authorization: Bearer <token>)",
				"list":   "/links (requires Authorization: Bearer <token>)",
				"delete": "/links/<id> (DELETE, requires Authorization: Bearer <token>)",
				"search": "/search?q=<query> (requires Authorization: Bearer <token>)",
				"stats":  "/stats (requires Authorization: Bearer <token>)",
				"user":   "/auth/user (requires Authorization: Bearer <token>)",
				"health": "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware verifies the bearer token and resolves the request user.
// The user row is upserted from the verified claims so the identity
// provider stays the source of truth for profile fields.
func authMiddleware(userRepo database.UserRepository, jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		user := database.User{ID: userID}
		user.Email, _ = claims["email"].(string)
		user.FirstName, _ = claims["first_name"].(string)
		user.LastName, _ = claims["last_name"].(string)
		user.ProfileImageURL, _ = claims["profile_image_url"].(string)

		if _, err := userRepo.UpsertUser(user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			c.Abort()
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}
