package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// GetAllPizzas returns the full menu, newest first.
func GetAllPizzas(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /pizzas"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("pizzas").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		pizzas := make([]models.Pizza, 0)
		if err := cursor.All(ctx, &pizzas); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(pizzas),
			"data":    pizzas,
		})
	}
}

func GetPopularPizzas(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /pizzas/popular"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("pizzas").Find(ctx, bson.M{"popular": true})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		pizzas := make([]models.Pizza, 0)
		if err := cursor.All(ctx, &pizzas); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(pizzas),
			"data":    pizzas,
		})
	}
}

func GetPizzaByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /pizzas/:id"
		defer handlePanic(c, route)

		pizzaID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var pizza models.Pizza
		err = db.Collection("pizzas").FindOne(ctx, bson.M{"_id": pizzaID}).Decode(&pizza)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Pizza not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": pizza})
	}
}
