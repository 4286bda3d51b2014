package store

import (
	"errors"

	"github.com/krznanoziyal/storyassist-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresDocumentStore persists documents via GORM. Used when DATABASE_URL
// is configured; the API contract is identical to the memory store.
type PostgresDocumentStore struct {
	db *gorm.DB
}

func NewPostgresDocumentStore(db *gorm.DB) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db}
}

func (s *PostgresDocumentStore) Create(doc *models.Document) error {
	return s.db.Create(doc).Error
}

func (s *PostgresDocumentStore) Get(id string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *PostgresDocumentStore) List() ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.Order("last_modified DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *PostgresDocumentStore) Update(doc *models.Document) error {
	result := s.db.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
		"title":         doc.Title,
		"content":       doc.Content,
		"last_modified": doc.LastModified,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresDocumentStore) Delete(id string) error {
	result := s.db.Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresDocumentStore) Count() (int, error) {
	var count int64
	if err := s.db.Model(&models.Document{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// PostgresStoryBibleStore persists story-bible items via GORM, upserting on
// the (category, document) primary key.
type PostgresStoryBibleStore struct {
	db *gorm.DB
}

func NewPostgresStoryBibleStore(db *gorm.DB) *PostgresStoryBibleStore {
	return &PostgresStoryBibleStore{db: db}
}

func (s *PostgresStoryBibleStore) Put(item *models.StoryBibleItem) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(item).Error
}

func (s *PostgresStoryBibleStore) Get(documentID, category string) (*models.StoryBibleItem, error) {
	var item models.StoryBibleItem
	if err := s.db.First(&item, "id = ?", category+"_"+documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *PostgresStoryBibleStore) ListByDocument(documentID string) ([]models.StoryBibleItem, error) {
	items := make([]models.StoryBibleItem, 0)
	if err := s.db.Where("document_id = ?", documentID).Order("type ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
