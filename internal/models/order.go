package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. The transition graph is deliberately permissive: an admin
// may move an order between any two statuses (operator trust).
const (
	OrderStatusPending    = "pending"
	OrderStatusPreparing  = "preparing"
	OrderStatusDelivering = "delivering"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// EstimatedDeliveryWindow is added to the creation time to produce the
// estimatedDelivery timestamp.
const EstimatedDeliveryWindow = 45 * time.Minute

// OrderItem is a snapshot of a catalog item at order time. PizzaID may be
// nil; snapshots keep historical orders intact when the catalog is edited
// or a pizza is deleted.
type OrderItem struct {
	PizzaID     *primitive.ObjectID `bson:"pizzaId,omitempty" json:"pizzaId,omitempty"`
	Name        string              `bson:"name" json:"name"`
	Price       float64             `bson:"price" json:"price"`
	Quantity    int                 `bson:"quantity" json:"quantity"`
	PhotoName   string              `bson:"photoName,omitempty" json:"photoName,omitempty"`
	Ingredients string              `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
}

// DeliveryAddress holds the delivery contact details captured at checkout.
type DeliveryAddress struct {
	FullName string `bson:"fullName" json:"fullName"`
	Phone    string `bson:"phone" json:"phone"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	ZipCode  string `bson:"zipCode" json:"zipCode"`
}

// Order is the persisted order document.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Total             float64            `bson:"total" json:"total"`
	DeliveryAddress   DeliveryAddress    `bson:"deliveryAddress" json:"deliveryAddress"`
	PaymentMethod     string             `bson:"paymentMethod" json:"paymentMethod"`
	Notes             string             `bson:"notes" json:"notes"`
	Status            string             `bson:"status" json:"status"`
	EstimatedDelivery time.Time          `bson:"estimatedDelivery" json:"estimatedDelivery"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidOrderStatus reports whether s is one of the five order statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusDelivering,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
