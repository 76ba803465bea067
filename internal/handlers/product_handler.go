package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/httpapi"
	"github.com/simple-ecommerce/storefront-service/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// ListProducts is the public catalog listing: in-stock products only,
// with filter/search/ordering query parameters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	products, err := h.catalog.ListProducts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Products retrieved successfully", mapProducts(products))
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return httpapi.BadRequestResponse(c, "Invalid product ID", map[string]interface{}{
			"id": c.Params("id"),
		})
	}

	product, err := h.catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Product retrieved successfully", mapProduct(product))
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var request domain.CreateProductRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if err := validate.Struct(request); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), ActorFromCtx(c), request)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.CreatedResponse(c, "Product created successfully", mapProduct(product))
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return httpapi.BadRequestResponse(c, "Invalid product ID", map[string]interface{}{
			"id": c.Params("id"),
		})
	}

	var request domain.CreateProductRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if err := validate.Struct(request); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), ActorFromCtx(c), id, request)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Product updated successfully", mapProduct(product))
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return httpapi.BadRequestResponse(c, "Invalid product ID", map[string]interface{}{
			"id": c.Params("id"),
		})
	}

	if err := h.catalog.DeleteProduct(c.UserContext(), ActorFromCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return httpapi.NoContentResponse(c)
}

// GetProductInfo aggregates the whole catalog in one response.
func (h *ProductHandler) GetProductInfo(c *fiber.Ctx) error {
	info, err := h.catalog.GetProductInfo(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Product info retrieved successfully", ProductInfoResponse{
		Products: mapProducts(info.Products),
		Count:    info.Count,
		MaxPrice: info.MaxPrice,
	})
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	return strconv.ParseInt(c.Params(param), 10, 64)
}

func parseProductFilter(c *fiber.Ctx) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		Name:         c.Query("name"),
		NameContains: c.Query("name_contains"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
	}

	decimalParams := []struct {
		name   string
		target **decimal.Decimal
	}{
		{"price", &filter.Price},
		{"price_lt", &filter.PriceLT},
		{"price_gt", &filter.PriceGT},
		{"price_min", &filter.PriceMin},
		{"price_max", &filter.PriceMax},
	}
	for _, param := range decimalParams {
		raw := c.Query(param.name)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.ProductFilter{}, &domain.ValidationError{
				Field:   param.name,
				Message: "must be a decimal number",
			}
		}
		*param.target = &value
	}
	return filter, nil
}
