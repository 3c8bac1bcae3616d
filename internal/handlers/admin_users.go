package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// GetAllUsers lists active customer accounts, newest first. Admin accounts
// and soft-deleted accounts are excluded.
func GetAllUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/users"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{
			"role":      models.RoleUser,
			"isDeleted": bson.M{"$ne": true},
		}
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("users").Find(ctx, filter, opts)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		data := make([]gin.H, 0, len(users))
		for _, user := range users {
			data = append(data, sanitizeUser(user))
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(data),
			"data":    data,
		})
	}
}

// DeleteUser soft-deletes a customer account. The account disappears from
// listings and login; its orders and messages stay in place. Admin accounts
// cannot be deleted.
func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/users/:id"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if user.Role == models.RoleAdmin {
			respondError(c, http.StatusForbidden, route, "Cannot delete admin users")
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()},
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.WithField("userId", userID.Hex()).Info("user soft deleted")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User hidden (soft deleted) successfully",
		})
	}
}

// GetDashboardStats aggregates the numbers shown on the admin dashboard.
// Revenue sums the totals of all non-cancelled orders.
func GetDashboardStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		totalPizzas, err := db.Collection("pizzas").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		totalOrders, err := db.Collection("orders").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		pendingOrders, err := db.Collection("orders").CountDocuments(ctx, bson.M{
			"status": models.OrderStatusPending,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		totalUsers, err := db.Collection("users").CountDocuments(ctx, bson.M{
			"role":      models.RoleUser,
			"isDeleted": bson.M{"$ne": true},
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.OrderStatusCancelled}}}},
			{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
		}

		cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		totalRevenue := 0.0
		var revenue []struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.All(ctx, &revenue); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}
		if len(revenue) > 0 {
			totalRevenue = revenue[0].Total
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"totalPizzas":   totalPizzas,
				"totalOrders":   totalOrders,
				"pendingOrders": pendingOrders,
				"totalUsers":    totalUsers,
				"totalRevenue":  totalRevenue,
			},
		})
	}
}
