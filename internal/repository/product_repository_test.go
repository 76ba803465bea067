package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
)

func TestProductCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	product := createTestProduct(t, db, "Desk Lamp", "24.99", 10)
	require.NotZero(t, product.ID)

	loaded, err := repo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", loaded.Name)
	requireDecimalEqual(t, "24.99", loaded.Price)

	loaded.Stock = 0
	require.NoError(t, repo.Update(ctx, loaded))

	reloaded, err := repo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.InStock())

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.Get(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	_, err := repo.Get(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Product{ID: 42, Name: "x", Price: mustDecimal(t, "1"), Stock: 1}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), domain.ErrNotFound)
}

func TestProductListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	createTestProduct(t, db, "Desk Lamp", "24.99", 10)
	createTestProduct(t, db, "Floor Lamp", "89.00", 0)
	createTestProduct(t, db, "Coffee Mug", "5.50", 100)
	createTestProduct(t, db, "Mechanical Keyboard", "120.00", 3)

	names := func(products []*domain.Product) []string {
		out := make([]string, len(products))
		for i, p := range products {
			out[i] = p.Name
		}
		return out
	}

	t.Run("in stock only", func(t *testing.T) {
		products, err := repo.List(ctx, domain.ProductFilter{InStockOnly: true})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Desk Lamp", "Coffee Mug", "Mechanical Keyboard"}, names(products))
	})

	t.Run("name exact is case-insensitive", func(t *testing.T) {
		products, err := repo.List(ctx, domain.ProductFilter{Name: "desk lamp"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Desk Lamp"}, names(products))
	})

	t.Run("name contains", func(t *testing.T) {
		products, err := repo.List(ctx, domain.ProductFilter{NameContains: "lamp"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Desk Lamp", "Floor Lamp"}, names(products))
	})

	t.Run("price comparisons", func(t *testing.T) {
		lt := mustDecimal(t, "25.00")
		products, err := repo.List(ctx, domain.ProductFilter{PriceLT: &lt})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Desk Lamp", "Coffee Mug"}, names(products))

		gt := mustDecimal(t, "80.00")
		products, err = repo.List(ctx, domain.ProductFilter{PriceGT: &gt})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Floor Lamp", "Mechanical Keyboard"}, names(products))
	})

	t.Run("price range", func(t *testing.T) {
		min := mustDecimal(t, "10.00")
		max := mustDecimal(t, "100.00")
		products, err := repo.List(ctx, domain.ProductFilter{PriceMin: &min, PriceMax: &max})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Desk Lamp", "Floor Lamp"}, names(products))
	})

	t.Run("search covers description", func(t *testing.T) {
		products, err := repo.List(ctx, domain.ProductFilter{Search: "keyboard"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Mechanical Keyboard"}, names(products))
	})

	t.Run("ordering by price descending", func(t *testing.T) {
		products, err := repo.List(ctx, domain.ProductFilter{Ordering: "-price"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Mechanical Keyboard", "Floor Lamp", "Desk Lamp", "Coffee Mug"}, names(products))
	})

	t.Run("unknown ordering rejected", func(t *testing.T) {
		_, err := repo.List(ctx, domain.ProductFilter{Ordering: "stock; DROP TABLE products"})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	admin := createTestUser(t, db, "admin", true)
	createTestUser(t, db, "alice", false)

	loaded, err := repo.Get(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsStaff)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, byName.IsStaff)

	_, err = repo.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Create(ctx, &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
