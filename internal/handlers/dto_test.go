package handlers

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "price", Message: "must be positive"}, fiber.StatusBadRequest},
		{"not found", domain.ErrNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load order: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{"permission denied", domain.ErrPermissionDenied, fiber.StatusForbidden},
		{"conflict", domain.ErrConflict, fiber.StatusConflict},
		{"wrapped conflict", fmt.Errorf("%w: order commit failed: %v", domain.ErrConflict, errors.New("serialization failure")), fiber.StatusConflict},
		{"unknown", errors.New("disk on fire"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return respondError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
