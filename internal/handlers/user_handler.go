package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simple-ecommerce/storefront-service/internal/httpapi"
	"github.com/simple-ecommerce/storefront-service/internal/service"
)

type UserHandler struct {
	identity *service.IdentityService
}

func NewUserHandler(identity *service.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// ListUsers is staff only.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.identity.ListUsers(c.UserContext(), ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.SuccessResponse(c, "Users retrieved successfully", mapUsers(users))
}
