package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(DriverSQLite, ":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string, staff bool) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, IsStaff: staff}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestProduct(t *testing.T, db *DB, name, price string, stock int64) *domain.Product {
	t.Helper()
	product := &domain.Product{
		Name:        name,
		Description: name + " description",
		Price:       mustDecimal(t, price),
		Stock:       stock,
	}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), product))
	return product
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(mustDecimal(t, want)), "expected %s, got %s", want, got)
}
