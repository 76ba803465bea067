package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/httpapi"
)

type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	InStock     bool            `json:"in_stock"`
}

type ProductInfoResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int64             `json:"count"`
	MaxPrice decimal.Decimal   `json:"max_price"`
}

type OrderItemResponse struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int64           `json:"quantity"`
	ItemSubtotal decimal.Decimal `json:"item_subtotal"`
}

type OrderResponse struct {
	OrderID    uuid.UUID           `json:"order_id"`
	UserID     int64               `json:"user_id"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []OrderItemResponse `json:"items"`
	TotalPrice decimal.Decimal     `json:"total_price"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

func mapProduct(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		InStock:     product.InStock(),
	}
}

func mapProducts(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = mapProduct(product)
	}
	return responses
}

func mapOrder(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			ItemSubtotal: item.Subtotal(),
		}
	}
	return OrderResponse{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		Items:      items,
		TotalPrice: order.Total(),
	}
}

func mapOrders(orders []*domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = mapOrder(order)
	}
	return responses
}

func mapUsers(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = UserResponse{ID: user.ID, Username: user.Username, IsStaff: user.IsStaff}
	}
	return responses
}

// validate checks the validate tags on request DTOs.
var validate = validator.New()

// respondError translates the domain error taxonomy into the JSON
// envelope with the matching status code.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return httpapi.BadRequestResponse(c, "Validation failed", map[string]interface{}{
			validationErr.Field: validationErr.Message,
		})
	case errors.Is(err, domain.ErrNotFound):
		return httpapi.NotFoundResponse(c, "Not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		return httpapi.ForbiddenResponse(c, "Permission denied")
	case errors.Is(err, domain.ErrConflict):
		return httpapi.ConflictResponse(c, "Conflict", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return httpapi.InternalServerErrorResponse(c, "Internal server error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// respondValidation reports validator tag failures field by field.
func respondValidation(c *fiber.Ctx, err error) error {
	details := map[string]interface{}{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return httpapi.BadRequestResponse(c, "Validation failed", details)
}
