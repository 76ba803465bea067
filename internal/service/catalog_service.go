package service

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/repository"
)

// CatalogService guards the product catalog: reads are open to anyone,
// writes require a staff actor.
type CatalogService struct {
	products *repository.ProductRepository
}

func NewCatalogService(products *repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts is the public listing: only in-stock products, with the
// caller's filter predicates applied on top.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.InStockOnly = true
	return s.products.List(ctx, filter)
}

// GetProduct is open to anyone and is not restricted by stock.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor *domain.User, request domain.CreateProductRequest) (*domain.Product, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	product := request.ToProduct()
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("Product created: ID=%d, Name=%q", product.ID, product.Name)
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor *domain.User, id int64, request domain.CreateProductRequest) (*domain.Product, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = request.Name
	product.Description = request.Description
	product.Price = request.Price
	product.Stock = request.Stock
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("Product deleted: ID=%d", id)
	return nil
}

// ProductInfo aggregates the whole catalog: every product regardless of
// stock, the count, and the maximum price.
type ProductInfo struct {
	Products []*domain.Product
	Count    int64
	MaxPrice decimal.Decimal
}

// GetProductInfo derives count and max price from the one fetched list
// so the aggregates always agree with it.
func (s *CatalogService) GetProductInfo(ctx context.Context) (*ProductInfo, error) {
	products, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}
	info := &ProductInfo{Products: products, Count: int64(len(products)), MaxPrice: decimal.Zero}
	for _, product := range products {
		if product.Price.GreaterThan(info.MaxPrice) {
			info.MaxPrice = product.Price
		}
	}
	return info, nil
}

func requireStaff(actor *domain.User) error {
	if actor == nil || !actor.IsStaff {
		return domain.ErrPermissionDenied
	}
	return nil
}
