package models_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tiendaonline/tienda-api/app/database/databasetest"
	"github.com/tiendaonline/tienda-api/models"
)

func category(name string) models.CategoryFields {
	return models.CategoryFields{Name: name}
}

func TestCreateCategoryAssignsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(databasetest.Open(t))

	first, err := repo.CreateCategory(ctx, category("A"))
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.ID, "empty table starts at 1")

	second, err := repo.CreateCategory(ctx, category("B"))
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.ID)

	third, err := repo.CreateCategory(ctx, category("C"))
	require.NoError(t, err)
	assert.Equal(t, uint(3), third.ID)

	// Gaps below the maximum are not filled.
	require.NoError(t, repo.DeleteCategory(ctx, second.ID))
	fourth, err := repo.CreateCategory(ctx, category("D"))
	require.NoError(t, err)
	assert.Equal(t, uint(4), fourth.ID)
}

func TestCreateCategoryRetriesOnIDCollision(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t)
	repo := models.NewCategoriesRepository(db)

	// Steal the computed id once, inside the same transaction, so the insert
	// collides on the primary key as it would against a concurrent writer.
	creates := 0
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:steal_id", func(tx *gorm.DB) {
		c, ok := tx.Statement.Dest.(*models.Category)
		if !ok {
			return
		}
		creates++
		if creates == 1 {
			tx.Session(&gorm.Session{NewDB: true}).Exec("INSERT INTO categoria (id, nombre) VALUES (?, ?)", c.ID, "thief")
		}
	}))

	created, err := repo.CreateCategory(ctx, category("A"))
	require.NoError(t, err)
	assert.Equal(t, 2, creates, "the colliding attempt is retried once")
	assert.Equal(t, "A", created.Name)

	all, err := repo.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "the failed attempt is rolled back")
	assert.Equal(t, created.ID, all[0].ID)
}

func TestGetCategory(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(databasetest.Open(t))

	created, err := repo.CreateCategory(ctx, category("Shoes"))
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *found)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(databasetest.Open(t))

	created, err := repo.CreateCategory(ctx, category("Shoes"))
	require.NoError(t, err)

	updated, err := repo.UpdateCategory(ctx, created.ID, category("Zapatos"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Zapatos", updated.Name)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zapatos", found.Name)

	_, err = repo.UpdateCategory(ctx, 42, category("X"))
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t)
	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)

	withProducts, err := categoriesRepo.CreateCategory(ctx, category("A"))
	require.NoError(t, err)
	empty, err := categoriesRepo.CreateCategory(ctx, category("B"))
	require.NoError(t, err)
	_, err = productsRepo.CreateProduct(ctx, product("Sneaker", withProducts.ID, "49.99", 10))
	require.NoError(t, err)

	err = categoriesRepo.DeleteCategory(ctx, withProducts.ID)
	assert.ErrorIs(t, err, models.ErrCategoryInUse)
	_, err = categoriesRepo.GetByID(ctx, withProducts.ID)
	assert.NoError(t, err, "a rejected delete leaves the category in place")

	require.NoError(t, categoriesRepo.DeleteCategory(ctx, empty.ID))
	_, err = categoriesRepo.GetByID(ctx, empty.ID)
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)

	err = categoriesRepo.DeleteCategory(ctx, empty.ID)
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(databasetest.Open(t))

	all, err := repo.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, name := range []string{"A", "B", "C"} {
		_, err := repo.CreateCategory(ctx, category(name))
		require.NoError(t, err)
	}

	all, err = repo.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, uint(3), all[2].ID)
}
