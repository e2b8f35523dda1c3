package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lampstore/internal/model"
)

func seedProduct(t *testing.T, repo ProductRepository, id string, stock int) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.Product{
		ID:       id,
		Name:     "Lamp " + id,
		Price:    50,
		Quantity: stock,
		InStock:  stock > 0,
	}))
}

func TestDecrementStock_SufficientStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	seedProduct(t, repo, "a", 3)

	ok, err := repo.DecrementStock(ctx, db, "a", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	product, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Quantity)
}

func TestDecrementStock_InsufficientStockSkipped(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	seedProduct(t, repo, "a", 1)

	ok, err := repo.DecrementStock(ctx, db, "a", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	// stock untouched, never negative
	product, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Quantity)
}

func TestDecrementStock_ExactStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	seedProduct(t, repo, "a", 2)

	ok, err := repo.DecrementStock(ctx, db, "a", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	product, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
}

func TestDecrementStock_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	ok, err := repo.DecrementStock(context.Background(), db, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	featured := &model.Product{ID: "f", Name: "Featured Lamp", Price: 80, Quantity: 1, Featured: true}
	plain := &model.Product{ID: "p", Name: "Plain Lamp", Price: 40, Quantity: 1}
	require.NoError(t, repo.Create(ctx, featured))
	require.NoError(t, repo.Create(ctx, plain))

	wantFeatured := true
	products, err := repo.List(ctx, ProductFilter{Featured: &wantFeatured})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "f", products[0].ID)

	products, err = repo.List(ctx, ProductFilter{Search: "Plain"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p", products[0].ID)
}
