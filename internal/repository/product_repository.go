package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = "id, name, description, price, stock, created_at, updated_at"

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := r.db.Rebind(`
		INSERT INTO products (name, description, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.Stock, now, now,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("product creation error: %w", err)
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := r.db.Rebind(`
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, updated_at = ?
		WHERE id = ?
	`)
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.Price, product.Stock, now, product.ID)
	if err != nil {
		return fmt.Errorf("product update error: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	product.UpdatedAt = now
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("product delete error: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)
	var product domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Description,
		&product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product retrieval error: %w", err)
	}
	return &product, nil
}

// orderings whitelists the sortable columns.
var orderings = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
	"stock": "stock",
}

// List returns products matching the filter. Predicates compose with
// AND; name matching is case-insensitive.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.InStockOnly {
		conds = append(conds, "stock > 0")
	}
	if filter.Name != "" {
		conds = append(conds, "LOWER(name) = ?")
		args = append(args, strings.ToLower(filter.Name))
	}
	if filter.NameContains != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.NameContains)+"%")
	}
	if filter.Price != nil {
		conds = append(conds, "price = ?")
		args = append(args, *filter.Price)
	}
	if filter.PriceLT != nil {
		conds = append(conds, "price < ?")
		args = append(args, *filter.PriceLT)
	}
	if filter.PriceGT != nil {
		conds = append(conds, "price > ?")
		args = append(args, *filter.PriceGT)
	}
	if filter.PriceMin != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.PriceMax)
	}
	if filter.Search != "" {
		conds = append(conds, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	orderBy := "id"
	if filter.Ordering != "" {
		field := filter.Ordering
		desc := strings.HasPrefix(field, "-")
		if desc {
			field = field[1:]
		}
		column, ok := orderings[field]
		if !ok {
			return nil, &domain.ValidationError{Field: "ordering", Message: fmt.Sprintf("cannot order by %q", field)}
		}
		orderBy = column
		if desc {
			orderBy += " DESC"
		}
	}
	query += " ORDER BY " + orderBy

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("product listing error: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description,
			&product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("product scan error: %w", err)
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}
