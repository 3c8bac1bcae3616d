package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// CreatePizza adds a catalog item from an admin multipart form. soldOut is
// derived from the initial quantity, never taken from the form.
func CreatePizza(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /pizzas/createPizza"
		defer handlePanic(c, route)

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			respondError(c, http.StatusUnsupportedMediaType, route, "multipart/form-data required")
			return
		}

		input, err := parseMultipartPizzaRequest(c, uploadDir)
		if err != nil {
			respondError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if !input.NameSet || input.Name == "" {
			respondError(c, http.StatusBadRequest, route, "name required")
			return
		}
		if !input.IngredientsSet || input.Ingredients == "" {
			respondError(c, http.StatusBadRequest, route, "ingredients required")
			return
		}
		if !input.PriceSet || input.Price < 0 {
			respondError(c, http.StatusBadRequest, route, "invalid price")
			return
		}

		quantity := models.DefaultPizzaQuantity
		if input.QuantitySet {
			if input.Quantity < 0 {
				respondError(c, http.StatusBadRequest, route, "quantity must be zero or greater")
				return
			}
			quantity = input.Quantity
		}

		photoName := models.DefaultPizzaPhoto
		if input.PhotoSet {
			photoName = input.PhotoName
		}

		now := time.Now()
		pizza := models.Pizza{
			Name:        input.Name,
			Ingredients: input.Ingredients,
			Price:       input.Price,
			PhotoName:   photoName,
			SoldOut:     soldOutFor(quantity),
			Popular:     input.PopularSet && input.Popular,
			Quantity:    quantity,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("pizzas").InsertOne(ctx, pizza)
		if err != nil {
			if input.PhotoSet {
				if cleanupErr := safeDeleteUpload(uploadDir, input.PhotoName); cleanupErr != nil {
					log.WithError(cleanupErr).Warn("CreatePizza: image cleanup failed")
				}
			}
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusBadRequest, route, "Pizza with this name already exists")
				return
			}
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		pizza.ID = res.InsertedID.(primitive.ObjectID)
		log.WithField("name", pizza.Name).Info("pizza created")
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Pizza created successfully",
			"data":    pizza,
		})
	}
}

// UpdatePizza applies a partial multipart update. A quantity change
// recomputes soldOut in the same write; a replaced image deletes the old
// stored file.
func UpdatePizza(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /pizzas/:id"
		defer handlePanic(c, route)

		pizzaID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			respondError(c, http.StatusUnsupportedMediaType, route, "multipart/form-data required")
			return
		}

		input, err := parseMultipartPizzaRequest(c, uploadDir)
		if err != nil {
			respondError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Pizza
		err = db.Collection("pizzas").FindOne(ctx, bson.M{"_id": pizzaID}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Pizza not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		updateSet := bson.M{}

		if input.NameSet {
			if input.Name == "" {
				respondError(c, http.StatusBadRequest, route, "name required")
				return
			}
			updateSet["name"] = input.Name
		}
		if input.IngredientsSet {
			if input.Ingredients == "" {
				respondError(c, http.StatusBadRequest, route, "ingredients required")
				return
			}
			updateSet["ingredients"] = input.Ingredients
		}
		if input.PriceSet {
			if input.Price < 0 {
				respondError(c, http.StatusBadRequest, route, "invalid price")
				return
			}
			updateSet["price"] = input.Price
		}
		if input.QuantitySet {
			if input.Quantity < 0 {
				respondError(c, http.StatusBadRequest, route, "quantity must be zero or greater")
				return
			}
			updateSet["quantity"] = input.Quantity
			updateSet["soldOut"] = soldOutFor(input.Quantity)
		}
		if input.PopularSet {
			updateSet["popular"] = input.Popular
		}
		if input.PhotoSet {
			updateSet["photoName"] = input.PhotoName
		}

		if len(updateSet) == 0 {
			respondError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		updateSet["updatedAt"] = time.Now()

		var updated models.Pizza
		err = db.Collection("pizzas").FindOneAndUpdate(
			ctx,
			bson.M{"_id": pizzaID},
			bson.M{"$set": updateSet},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Pizza not found")
			return
		}
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusBadRequest, route, "Pizza with this name already exists")
				return
			}
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if input.PhotoSet && existing.PhotoName != models.DefaultPizzaPhoto && existing.PhotoName != input.PhotoName {
			if err := safeDeleteUpload(uploadDir, existing.PhotoName); err != nil {
				log.WithError(err).Warn("UpdatePizza: old image delete failed")
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Pizza updated successfully",
			"data":    updated,
		})
	}
}

// DeletePizza removes a catalog item outright. Orders keep their line-item
// snapshots, so history survives the delete.
func DeletePizza(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /pizzas/:id"
		defer handlePanic(c, route)

		pizzaID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Pizza
		err = db.Collection("pizzas").FindOneAndDelete(ctx, bson.M{"_id": pizzaID}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Pizza not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if existing.PhotoName != models.DefaultPizzaPhoto {
			if err := safeDeleteUpload(uploadDir, existing.PhotoName); err != nil {
				log.WithError(err).Warn("DeletePizza: image delete failed")
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Pizza deleted successfully",
		})
	}
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdatePizzaQuantity sets the on-hand quantity directly, recomputing
// soldOut in the same write.
func UpdatePizzaQuantity(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /pizzas/:id/quantity"
		defer handlePanic(c, route)

		pizzaID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req quantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if *req.Quantity < 0 {
			respondError(c, http.StatusBadRequest, route, "quantity must be zero or greater")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Pizza
		err = db.Collection("pizzas").FindOneAndUpdate(
			ctx,
			bson.M{"_id": pizzaID},
			bson.M{"$set": bson.M{
				"quantity":  *req.Quantity,
				"soldOut":   soldOutFor(*req.Quantity),
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Pizza not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Quantity updated successfully",
			"data":    updated,
		})
	}
}
