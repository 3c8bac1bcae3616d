package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func validOrderRequest() createOrderRequest {
	return createOrderRequest{
		Items: []orderItemRequest{
			{
				PizzaID:  primitive.NewObjectID().Hex(),
				Name:     "Margherita",
				Price:    9.5,
				Quantity: 2,
			},
		},
		Total: 19.0,
		DeliveryAddress: deliveryAddressRequest{
			FullName: "Mario Rossi",
			Phone:    "+39 333 1234567",
			Address:  "Via Roma 1",
			City:     "Napoli",
			ZipCode:  "80100",
		},
		PaymentMethod: "card",
	}
}

func TestBuildOrderFromRequest(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()

	order, errs := buildOrderFromRequest(validOrderRequest(), userID, now)
	require.Empty(t, errs)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 19.0, order.Total)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Margherita", order.Items[0].Name)
	assert.Equal(t, now.Add(45*time.Minute), order.EstimatedDelivery)
}

func TestBuildOrderFromRequestCollectsAllErrors(t *testing.T) {
	req := createOrderRequest{
		Items:         nil,
		Total:         -1,
		PaymentMethod: "bitcoin",
	}

	_, errs := buildOrderFromRequest(req, primitive.NewObjectID(), time.Now())

	assert.Contains(t, errs, "Order must have at least one item")
	assert.Contains(t, errs, "Total cannot be negative")
	assert.Contains(t, errs, "Full name is required")
	assert.Contains(t, errs, "Phone is required")
	assert.Contains(t, errs, "Address is required")
	assert.Contains(t, errs, "City is required")
	assert.Contains(t, errs, "ZIP code is required")
	assert.Contains(t, errs, "Invalid payment method")
}

func TestBuildOrderFromRequestItemValidation(t *testing.T) {
	req := validOrderRequest()
	req.Items = append(req.Items,
		orderItemRequest{Name: "Diavola", Price: 11, Quantity: 0},
		orderItemRequest{PizzaID: "not-an-object-id", Name: "Funghi", Price: 10, Quantity: 1},
	)

	_, errs := buildOrderFromRequest(req, primitive.NewObjectID(), time.Now())

	assert.Contains(t, errs, "Item quantity must be at least 1")
	assert.Contains(t, errs, "Invalid pizzaId: not-an-object-id")
}

func TestBuildOrderFromRequestAllowsItemWithoutPizzaID(t *testing.T) {
	req := validOrderRequest()
	req.Items = []orderItemRequest{{Name: "Custom", Price: 12, Quantity: 1}}

	order, errs := buildOrderFromRequest(req, primitive.NewObjectID(), time.Now())

	require.Empty(t, errs)
	require.Len(t, order.Items, 1)
	assert.Nil(t, order.Items[0].PizzaID)
}

func TestQuantityAfterOrder(t *testing.T) {
	tests := []struct {
		name    string
		onHand  int
		ordered int
		want    int
	}{
		{"partial", 10, 3, 7},
		{"exact", 5, 5, 0},
		{"over", 2, 10, 0},
		{"empty shelf", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quantityAfterOrder(tt.onHand, tt.ordered))
		})
	}
}

func TestSoldOutFor(t *testing.T) {
	assert.True(t, soldOutFor(0))
	assert.False(t, soldOutFor(1))
	assert.False(t, soldOutFor(50))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{"pending", "preparing", "delivering", "delivered", "cancelled"} {
		assert.True(t, models.IsValidOrderStatus(status), status)
	}
	assert.False(t, models.IsValidOrderStatus("shipped"))
	assert.False(t, models.IsValidOrderStatus(""))
	assert.False(t, models.IsValidOrderStatus("Pending"))
}
