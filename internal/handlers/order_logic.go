package handlers

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

type orderItemRequest struct {
	PizzaID     string  `json:"pizzaId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	PhotoName   string  `json:"photoName"`
	Ingredients string  `json:"ingredients"`
}

type deliveryAddressRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
}

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items"`
	Total           float64                `json:"total"`
	DeliveryAddress deliveryAddressRequest `json:"deliveryAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Notes           string                 `json:"notes"`
}

// buildOrderFromRequest validates a checkout submission and assembles the
// order document. All violations are collected so the client gets the full
// field-level error list in one response; nothing is written on failure.
//
// The total is taken from the client as-is. It is a known integrity gap of
// the contract, not an oversight.
func buildOrderFromRequest(req createOrderRequest, userID primitive.ObjectID, now time.Time) (models.Order, []string) {
	var errs []string

	if len(req.Items) == 0 {
		errs = append(errs, "Order must have at least one item")
	}
	if req.Total < 0 {
		errs = append(errs, "Total cannot be negative")
	}

	address := models.DeliveryAddress{
		FullName: strings.TrimSpace(req.DeliveryAddress.FullName),
		Phone:    strings.TrimSpace(req.DeliveryAddress.Phone),
		Address:  strings.TrimSpace(req.DeliveryAddress.Address),
		City:     strings.TrimSpace(req.DeliveryAddress.City),
		ZipCode:  strings.TrimSpace(req.DeliveryAddress.ZipCode),
	}
	if address.FullName == "" {
		errs = append(errs, "Full name is required")
	}
	if address.Phone == "" {
		errs = append(errs, "Phone is required")
	}
	if address.Address == "" {
		errs = append(errs, "Address is required")
	}
	if address.City == "" {
		errs = append(errs, "City is required")
	}
	if address.ZipCode == "" {
		errs = append(errs, "ZIP code is required")
	}

	if req.PaymentMethod != "card" && req.PaymentMethod != "cash" {
		errs = append(errs, "Invalid payment method")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			errs = append(errs, "Item quantity must be at least 1")
			continue
		}

		var pizzaID *primitive.ObjectID
		if trimmed := strings.TrimSpace(item.PizzaID); trimmed != "" {
			parsed, err := primitive.ObjectIDFromHex(trimmed)
			if err != nil {
				errs = append(errs, "Invalid pizzaId: "+trimmed)
				continue
			}
			pizzaID = &parsed
		}

		items = append(items, models.OrderItem{
			PizzaID:     pizzaID,
			Name:        strings.TrimSpace(item.Name),
			Price:       item.Price,
			Quantity:    item.Quantity,
			PhotoName:   item.PhotoName,
			Ingredients: item.Ingredients,
		})
	}

	if len(errs) > 0 {
		return models.Order{}, errs
	}

	return models.Order{
		UserID:            userID,
		Items:             items,
		Total:             req.Total,
		DeliveryAddress:   address,
		PaymentMethod:     req.PaymentMethod,
		Notes:             strings.TrimSpace(req.Notes),
		Status:            models.OrderStatusPending,
		EstimatedDelivery: now.Add(models.EstimatedDeliveryWindow),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// quantityAfterOrder clamps the decremented quantity at zero: ordering more
// than is on hand empties the shelf instead of failing the order.
func quantityAfterOrder(onHand, ordered int) int {
	if ordered >= onHand {
		return 0
	}
	return onHand - ordered
}

// soldOutFor derives the stored soldOut flag from a quantity.
func soldOutFor(quantity int) bool {
	return quantity == 0
}
