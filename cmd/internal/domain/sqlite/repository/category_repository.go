package repository

import (
	"context"
	"errors"
	"notekeeper/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *DefaultCategoryRepository {
	return &DefaultCategoryRepository{db: db}
}

func (c *DefaultCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&entity.Category{}).
			Where("user_id = ? AND name = ?", category.UserID, category.Name).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrDuplicateCategory
		}
		return tx.Omit(clause.Associations).Create(category).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCategory
	}
	return err
}

func (c *DefaultCategoryRepository) FindAllByOwner(ctx context.Context, userID int64) ([]*entity.Category, error) {
	var categories []*entity.Category
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&categories).Error

	if err != nil {
		return nil, err
	}
	return categories, nil
}
