package models

import "time"

// Document represents a single manuscript the author is working on
type Document struct {
	ID           string    `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Content      string    `gorm:"type:text" json:"content"`
	LastModified time.Time `json:"last_modified"`
}

// StoryBibleItem represents one generated story-bible entry. At most one
// item exists per (document, category) pair; regeneration overwrites it.
type StoryBibleItem struct {
	ID         string `gorm:"primarykey" json:"id"` // "{category}_{documentID}"
	DocumentID string `gorm:"index;not null" json:"document_id"`
	Type       string `gorm:"not null" json:"type"` // "braindump", "genre", "characters", ...
	Title      string `json:"title"`
	Content    string `gorm:"type:text" json:"content"`
}
