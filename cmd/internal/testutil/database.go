package testutil

import (
	"context"
	"fmt"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/domain/sqlite"
	"testing"

	"gorm.io/gorm"
)

// NewTestDB creates a new in-memory SQLite database with the schema migrated.
// The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Init(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
	}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, owner *entity.User, name string) *entity.Category {
	t.Helper()

	category := &entity.Category{Name: name, UserID: owner.ID}
	if err := db.Omit("User").Create(category).Error; err != nil {
		t.Fatalf("failed to create category %q: %v", name, err)
	}
	return category
}

// CreateNote inserts a note directly, bypassing the repository checks.
func CreateNote(t *testing.T, db *gorm.DB, owner *entity.User, title string) *entity.Note {
	t.Helper()

	note := &entity.Note{Title: title, Content: "content of " + title, UserID: owner.ID}
	if err := db.Omit("User", "Categories").Create(note).Error; err != nil {
		t.Fatalf("failed to create note %q: %v", title, err)
	}
	return note
}

// CountLinks returns how many note_categories rows reference noteID.
func CountLinks(t *testing.T, db *gorm.DB, noteID int64) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&entity.NoteCategory{}).Where("note_id = ?", noteID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count links of note %d: %v", noteID, err)
	}
	return count
}
