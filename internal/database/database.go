package database

import (
	"fmt"
	"log"

	"github.com/krznanoziyal/storyassist-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres connection used by the optional persistent stores
func Connect(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connection established")
	return db, nil
}

// Migrate runs schema migrations for the stored entities
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Document{},
		&models.StoryBibleItem{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}
