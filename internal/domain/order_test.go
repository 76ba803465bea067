package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "shipped", "delivered", "cancelled"} {
		status, err := ParseOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	_, err := ParseOrderStatus("returned")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}

func TestNewOrderDefaultsToPending(t *testing.T) {
	order := NewOrder(7, "")
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, int64(7), order.UserID)
	assert.NotEqual(t, order.ID.String(), NewOrder(7, "").ID.String(), "order IDs must be unique")
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name            string
		items           []NewOrderItem
		requireNonEmpty bool
		wantErr         bool
	}{
		{"valid", []NewOrderItem{{ProductID: 1, Quantity: 2}}, true, false},
		{"zero quantity", []NewOrderItem{{ProductID: 1, Quantity: 0}}, true, true},
		{"negative quantity", []NewOrderItem{{ProductID: 1, Quantity: -3}}, false, true},
		{"missing product", []NewOrderItem{{ProductID: 0, Quantity: 1}}, true, true},
		{"empty required", nil, true, true},
		{"empty allowed on replace", []NewOrderItem{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems(tt.items, tt.requireNonEmpty)
			if tt.wantErr {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderItemWireKeys(t *testing.T) {
	// Requests and responses share the product_id key.
	var request CreateOrderRequest
	payload := []byte(`{"status":"pending","items":[{"product_id":42,"quantity":3}]}`)
	require.NoError(t, json.Unmarshal(payload, &request))
	require.Len(t, request.Items, 1)
	assert.Equal(t, int64(42), request.Items[0].ProductID)
	assert.Equal(t, int64(3), request.Items[0].Quantity)

	out, err := json.Marshal(OrderItem{ProductID: 42, Quantity: 3})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"product_id":42`)
}

func TestProductValidate(t *testing.T) {
	product := &Product{Name: "Lamp", Price: dec(t, "10.00"), Stock: 5}
	require.NoError(t, product.Validate())

	tests := []struct {
		name    string
		mutate  func(*Product)
		field   string
	}{
		{"empty name", func(p *Product) { p.Name = "  " }, "name"},
		{"zero price", func(p *Product) { p.Price = dec(t, "0") }, "price"},
		{"negative price", func(p *Product) { p.Price = dec(t, "-1.50") }, "price"},
		{"negative stock", func(p *Product) { p.Stock = -1 }, "stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := *product
			tt.mutate(&bad)
			err := bad.Validate()
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestProductInStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 1}).InStock())
	assert.False(t, (&Product{Stock: 0}).InStock())
}
