package store

import (
	"errors"

	"github.com/krznanoziyal/storyassist-api/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// DocumentStore provides CRUD access to the author's documents. Handlers
// depend only on this interface; the backing store (memory or Postgres) is
// chosen at startup.
type DocumentStore interface {
	Create(doc *models.Document) error
	Get(id string) (*models.Document, error)
	List() ([]models.Document, error)
	Update(doc *models.Document) error
	Delete(id string) error
	Count() (int, error)
}

// StoryBibleStore keeps at most one generated item per (document, category)
// pair; Put overwrites any previous item for the pair.
type StoryBibleStore interface {
	Put(item *models.StoryBibleItem) error
	Get(documentID, category string) (*models.StoryBibleItem, error)
	ListByDocument(documentID string) ([]models.StoryBibleItem, error)
}
