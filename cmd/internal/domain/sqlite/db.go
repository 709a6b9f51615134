package sqlite

import (
	"fmt"
	"notekeeper/cmd/internal/domain/entity"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const MemoryPath = ":memory:"

// Init opens the database at path (MemoryPath is accepted), turns foreign
// keys on and migrates the schema.
func Init(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite only allows one writer, and an in-memory database only lives
	// as long as its single connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if path != MemoryPath {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err = db.SetupJoinTable(&entity.Note{}, "Categories", &entity.NoteCategory{}); err != nil {
		return nil, fmt.Errorf("failed to set up note_categories: %w", err)
	}

	err = db.AutoMigrate(&entity.User{}, &entity.Category{}, &entity.Note{}, &entity.NoteCategory{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
