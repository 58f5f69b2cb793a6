package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ProductFilters narrows a product listing. A zero CategoryID means no filter.
type ProductFilters struct {
	CategoryID uint
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, filters ProductFilters) ([]Product, error) {
	var products []Product

	query := r.db.WithContext(ctx).Model(&Product{})

	// Filter
	if filters.CategoryID > 0 {
		query = query.Where("categoria_id = ?", filters.CategoryID)
	}

	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	return findProduct(r.db.WithContext(ctx), id)
}

// CreateProduct inserts a product whose category must already exist.
// The database assigns the id.
func (r *ProductsRepository) CreateProduct(ctx context.Context, fields ProductFields) (*Product, error) {
	fields.Normalize()

	var product Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCategory(tx, fields.CategoryID); err != nil {
			return err
		}

		product = Product{ProductFields: fields}
		return tx.Omit(clause.Associations).Create(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct overwrites every field of a product. The target category is
// checked before the product itself, so a request that is wrong on both
// counts reports the missing category.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uint, fields ProductFields) (*Product, error) {
	fields.Normalize()

	var product *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCategory(tx, fields.CategoryID); err != nil {
			return err
		}

		found, err := findProduct(tx, id)
		if err != nil {
			return err
		}

		found.ProductFields = fields
		if err := tx.Model(found).
			Select("nombre", "categoria_id", "precio", "stock", "url").
			Omit(clause.Associations).
			Updates(found).Error; err != nil {
			return err
		}
		product = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product. Nothing depends on products, so no
// reference check is made.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
}

func findProduct(tx *gorm.DB, id uint) (*Product, error) {
	var product Product
	if err := tx.Where("id = ?", id).Take(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}
