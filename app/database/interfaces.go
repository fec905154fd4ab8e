package database

import (
	"time"
)

type UserRepository interface {
	UpsertUser(user User) (*User, error)
	GetUser(id string) (*User, error)
}

type LinkRepository interface {
	CreateLink(link NewLink) (*Link, error)
	GetUserLinks(userID string, limit, offset int) ([]Link, error)
	GetLinkByID(id int64, userID string) (*Link, error)
	DeleteLink(id int64, userID string) error

	GetLinkCount() (int, error)
	GetUserLinkCount(userID string) (int, error)
	GetUserLinkCountSince(userID string, since time.Time) (int, error)
	GetUserCategories(userID string) ([]string, error)

	GetDegradedLinks(limit int) ([]Link, error)
	UpdateAIFields(id int64, summary string, embedding []float64) error
}
