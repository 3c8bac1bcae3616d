package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPizzaQuantity is the on-hand quantity assigned when a pizza is
// created without an explicit quantity.
const DefaultPizzaQuantity = 50

// DefaultPizzaPhoto is used when no image is uploaded for a pizza.
const DefaultPizzaPhoto = "images/pizzas/default.jpg"

// Pizza is a catalog item. SoldOut is derived from Quantity and must be
// recomputed on every quantity mutation; it is stored so list responses
// never need a second pass.
type Pizza struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Ingredients string             `bson:"ingredients" json:"ingredients"`
	Price       float64            `bson:"price" json:"price"`
	PhotoName   string             `bson:"photoName" json:"photoName"`
	SoldOut     bool               `bson:"soldOut" json:"soldOut"`
	Popular     bool               `bson:"popular" json:"popular"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
