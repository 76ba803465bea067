package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/httpapi"
	"github.com/simple-ecommerce/storefront-service/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var request domain.CreateOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if err := validate.Struct(request); err != nil {
		return respondValidation(c, err)
	}

	order, err := h.orders.CreateOrder(c.UserContext(), ActorFromCtx(c), request)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.CreatedResponse(c, "Order created successfully", mapOrder(order))
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequestResponse(c, "Invalid order ID", map[string]interface{}{
			"order_id": c.Params("id"),
		})
	}

	order, err := h.orders.GetOrder(c.UserContext(), ActorFromCtx(c), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Order retrieved successfully", mapOrder(order))
}

// ListOrders returns every order for staff, the actor's own otherwise.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.UserContext(), ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Orders retrieved successfully", mapOrders(orders))
}

// MyOrders is the convenience listing scoped to the actor.
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.MyOrders(c.UserContext(), ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Orders retrieved successfully", mapOrders(orders))
}

func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequestResponse(c, "Invalid order ID", map[string]interface{}{
			"order_id": c.Params("id"),
		})
	}

	var request domain.UpdateOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if err := validate.Struct(request); err != nil {
		return respondValidation(c, err)
	}

	order, err := h.orders.UpdateOrder(c.UserContext(), ActorFromCtx(c), orderID, request)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Order updated successfully", mapOrder(order))
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequestResponse(c, "Invalid order ID", map[string]interface{}{
			"order_id": c.Params("id"),
		})
	}

	if err := h.orders.DeleteOrder(c.UserContext(), ActorFromCtx(c), orderID); err != nil {
		return respondError(c, err)
	}
	return httpapi.NoContentResponse(c)
}
