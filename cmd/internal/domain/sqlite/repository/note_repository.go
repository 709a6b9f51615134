package repository

import (
	"context"
	"errors"
	"notekeeper/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// Create inserts the note unless its owner already has a note with the same title.
func (d *DefaultNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := titleTaken(tx, note.UserID, note.Title, 0)
		if err != nil {
			return err
		}

		if taken {
			return ErrDuplicateTitle
		}
		return tx.Omit(clause.Associations).Create(note).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTitle
	}

	if err != nil {
		return err
	}

	if note.Categories == nil {
		note.Categories = []entity.Category{}
	}
	return nil
}

// Update applies the non-nil fields of patch and returns the stored note.
func (d *DefaultNoteRepository) Update(ctx context.Context, id int64, patch *entity.NotePatch) (*entity.Note, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note entity.Note
		err := tx.First(&note, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}

		if err != nil {
			return err
		}

		if patch.Empty() {
			return nil
		}

		if patch.Title != nil && *patch.Title != note.Title {
			taken, err := titleTaken(tx, note.UserID, *patch.Title, note.ID)
			if err != nil {
				return err
			}

			if taken {
				return ErrDuplicateTitle
			}
		}

		return tx.Model(&note).Updates(patch.Columns()).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateTitle
	}

	if err != nil {
		return nil, err
	}
	return d.findWithCategories(ctx, id)
}

// Delete removes the note together with its category associations.
func (d *DefaultNoteRepository) Delete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("note_id = ?", id).Delete(&entity.NoteCategory{})
		if res.Error != nil {
			return res.Error
		}

		res = tx.Delete(&entity.Note{}, id)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNoteNotFound
		}
		return nil
	})
}

func (d *DefaultNoteRepository) FindByID(ctx context.Context, id int64) (*entity.Note, error) {
	note, err := d.findWithCategories(ctx, id)
	if errors.Is(err, ErrNoteNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return note, nil
}

// FindAllByOwner returns the notes of userID whose archived flag matches, newest first.
func (d *DefaultNoteRepository) FindAllByOwner(ctx context.Context, userID int64, archived bool) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.WithContext(ctx).
		Preload("Categories", orderCategories).
		Where("user_id = ? AND archived = ?", userID, archived).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notes).Error

	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindAllByCategory returns the notes of userID tagged with a category named exactly categoryName.
func (d *DefaultNoteRepository) FindAllByCategory(ctx context.Context, userID int64, categoryName string) ([]*entity.Note, error) {
	tagged := d.db.
		Table("note_categories").
		Select("note_categories.note_id").
		Joins("JOIN categories ON categories.id = note_categories.category_id").
		Where("categories.name = ?", categoryName)

	var notes []*entity.Note
	err := d.db.WithContext(ctx).
		Preload("Categories", orderCategories).
		Where("user_id = ? AND id IN (?)", userID, tagged).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notes).Error

	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindCategoriesForNote lists the categories attached to noteID, as long as userID owns the note.
func (d *DefaultNoteRepository) FindCategoriesForNote(ctx context.Context, noteID, userID int64) ([]*entity.Category, error) {
	var categories []*entity.Category
	err := d.db.WithContext(ctx).
		Select("categories.id", "categories.name", "categories.user_id").
		Joins("JOIN note_categories ON note_categories.category_id = categories.id").
		Joins("JOIN notes ON notes.id = note_categories.note_id").
		Where("note_categories.note_id = ? AND notes.user_id = ?", noteID, userID).
		Order("categories.id").
		Find(&categories).Error

	if err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategories links every category in categoryIDs to the note.
//
// Either all of them are linked or none: the note and every category must
// belong to userID. Links that already exist are left as they are.
func (d *DefaultNoteRepository) AddCategories(ctx context.Context, noteID, userID int64, categoryIDs []int64) (*entity.Note, error) {
	ids := uniqueIDs(categoryIDs)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var notes int64
		err := tx.Model(&entity.Note{}).
			Where("id = ? AND user_id = ?", noteID, userID).
			Count(&notes).Error
		if err != nil {
			return err
		}

		if notes == 0 {
			return ErrNoteNotOwned
		}

		if len(ids) == 0 {
			return nil
		}

		var owned int64
		err = tx.Model(&entity.Category{}).
			Where("id IN ? AND user_id = ?", ids, userID).
			Count(&owned).Error
		if err != nil {
			return err
		}

		if owned != int64(len(ids)) {
			return ErrCategoryNotOwned
		}

		links := make([]*entity.NoteCategory, len(ids))
		for i, id := range ids {
			links[i] = &entity.NoteCategory{NoteID: noteID, CategoryID: id}
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})

	if err != nil {
		return nil, err
	}
	return d.findWithCategories(ctx, noteID)
}

// RemoveCategory unlinks categoryID from the note. The delete only matches
// notes owned by userID, so a foreign note looks exactly like a missing link.
func (d *DefaultNoteRepository) RemoveCategory(ctx context.Context, noteID, userID, categoryID int64) (*entity.Note, error) {
	owned := d.db.
		Model(&entity.Note{}).
		Select("id").
		Where("user_id = ?", userID)

	res := d.db.WithContext(ctx).
		Where("note_id = ? AND category_id = ? AND note_id IN (?)", noteID, categoryID, owned).
		Delete(&entity.NoteCategory{})

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, ErrCategoryNotLinked
	}
	return d.findWithCategories(ctx, noteID)
}

func (d *DefaultNoteRepository) findWithCategories(ctx context.Context, id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.WithContext(ctx).
		Preload("Categories", orderCategories).
		First(&note, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func titleTaken(tx *gorm.DB, userID int64, title string, exceptID int64) (bool, error) {
	var count int64
	err := tx.Model(&entity.Note{}).
		Where("user_id = ? AND title = ? AND id <> ?", userID, title, exceptID).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func orderCategories(db *gorm.DB) *gorm.DB {
	return db.Order("categories.id")
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
