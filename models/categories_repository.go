package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// maxIDAttempts bounds how many times CreateCategory recomputes the next id
// after losing an insert race to a concurrent writer.
const maxIDAttempts = 3

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	return findCategory(r.db.WithContext(ctx), id)
}

// CreateCategory stores a new category under max(id)+1, or 1 when the table
// is empty. The primary key rejects a second writer that read the same
// maximum; that writer retries with a fresh read.
func (r *CategoriesRepository) CreateCategory(ctx context.Context, fields CategoryFields) (*Category, error) {
	var err error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		var category *Category
		category, err = r.insertWithNextID(ctx, fields)
		if err == nil {
			return category, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("assign category id after %d attempts: %w", maxIDAttempts, err)
}

func (r *CategoriesRepository) insertWithNextID(ctx context.Context, fields CategoryFields) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID sql.NullInt64
		if err := tx.Model(&Category{}).Select("MAX(id)").Row().Scan(&maxID); err != nil {
			return fmt.Errorf("read max category id: %w", err)
		}

		category = Category{
			ID:             nextCategoryID(maxID),
			CategoryFields: fields,
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func nextCategoryID(maxID sql.NullInt64) uint {
	if !maxID.Valid {
		return 1
	}
	return uint(maxID.Int64) + 1
}

func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id uint, fields CategoryFields) (*Category, error) {
	var category *Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findCategory(tx, id)
		if err != nil {
			return err
		}

		found.CategoryFields = fields
		if err := tx.Model(found).Update("nombre", fields.Name).Error; err != nil {
			return err
		}
		category = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category that no product references.
// A referenced category is left untouched and ErrCategoryInUse is returned.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, id)
		if err != nil {
			return err
		}

		var dependents int64
		if err := tx.Model(&Product{}).Where("categoria_id = ?", id).Count(&dependents).Error; err != nil {
			return fmt.Errorf("count products of category %d: %w", id, err)
		}
		if dependents > 0 {
			return ErrCategoryInUse
		}

		return tx.Delete(category).Error
	})
}

func findCategory(tx *gorm.DB, id uint) (*Category, error) {
	var category Category
	if err := tx.Where("id = ?", id).Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err // Other DB error
	}
	return &category, nil
}
