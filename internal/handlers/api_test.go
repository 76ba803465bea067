package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/repository"
	"github.com/simple-ecommerce/storefront-service/internal/service"
)

type testAPI struct {
	app *fiber.App
	db  *repository.DB

	admin *domain.User
	alice *domain.User
	bob   *domain.User
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := repository.Open(repository.DriverSQLite, ":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	identity := service.NewIdentityService(repository.NewUserRepository(db))
	catalog := service.NewCatalogService(repository.NewProductRepository(db))
	orders := service.NewOrderService(repository.NewOrderRepository(db), nil)

	app := NewApp(
		db,
		NewAuthMiddleware(identity),
		NewProductHandler(catalog),
		NewOrderHandler(orders),
		NewUserHandler(identity),
	)

	api := &testAPI{
		app:   app,
		db:    db,
		admin: &domain.User{Username: "admin", IsStaff: true},
		alice: &domain.User{Username: "alice"},
		bob:   &domain.User{Username: "bob"},
	}
	users := repository.NewUserRepository(db)
	for _, user := range []*domain.User{api.admin, api.alice, api.bob} {
		require.NoError(t, users.Create(context.Background(), user))
	}
	return api
}

// request performs an HTTP call against the app. A nil actor makes an
// anonymous request.
func (a *testAPI) request(t *testing.T, method, path string, body interface{}, actor *domain.User) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		req.Header.Set("X-User-ID", strconv.FormatInt(actor.ID, 10))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func (a *testAPI) createProduct(t *testing.T, name, price string, stock int64) ProductResponse {
	t.Helper()
	resp := a.request(t, fiber.MethodPost, "/api/v1/products", fiber.Map{
		"name":  name,
		"price": price,
		"stock": stock,
	}, a.admin)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var product ProductResponse
	decodeData(t, resp, &product)
	return product
}

func (a *testAPI) createOrder(t *testing.T, actor *domain.User, items []fiber.Map) OrderResponse {
	t.Helper()
	resp := a.request(t, fiber.MethodPost, "/api/v1/orders", fiber.Map{"items": items}, actor)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var order OrderResponse
	decodeData(t, resp, &order)
	return order
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	require.NoError(t, err)
	require.True(t, got.Equal(expected), "expected %s, got %s", want, got)
}

func TestHealthEndpoint(t *testing.T) {
	api := newTestAPI(t)
	resp := api.request(t, fiber.MethodGet, "/api/v1/health", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	resp := api.request(t, fiber.MethodGet, "/api/v1/nope", nil, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUnknownIdentityRejected(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "424242")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUsersEndpointStaffOnly(t *testing.T) {
	api := newTestAPI(t)

	resp := api.request(t, fiber.MethodGet, "/api/v1/users", nil, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = api.request(t, fiber.MethodGet, "/api/v1/users", nil, api.alice)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = api.request(t, fiber.MethodGet, "/api/v1/users", nil, api.admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var users []UserResponse
	decodeData(t, resp, &users)
	require.Len(t, users, 3)
}
