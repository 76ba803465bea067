package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/httpapi"
	"github.com/simple-ecommerce/storefront-service/internal/service"
)

const actorKey = "actor"

// NewAuthMiddleware resolves the X-User-ID header, set by the upstream
// identity collaborator and trusted unconditionally, into an account.
// Requests without the header pass through anonymous; open routes
// accept them, protected routes reject them downstream.
func NewAuthMiddleware(identity *service.IdentityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("X-User-ID")
		if header == "" {
			return c.Next()
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			return httpapi.UnauthorizedResponse(c, "Invalid user identity")
		}

		actor, err := identity.ResolveActor(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httpapi.UnauthorizedResponse(c, "Unknown user identity")
			}
			return httpapi.InternalServerErrorResponse(c, "Identity lookup failed", nil)
		}

		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(c *fiber.Ctx) error {
	if ActorFromCtx(c) == nil {
		return httpapi.UnauthorizedResponse(c, "Authentication required")
	}
	return c.Next()
}

// ActorFromCtx returns the resolved actor, or nil for anonymous
// requests.
func ActorFromCtx(c *fiber.Ctx) *domain.User {
	actor, _ := c.Locals(actorKey).(*domain.User)
	return actor
}
