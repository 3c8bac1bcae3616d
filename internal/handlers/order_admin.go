package handlers

import (
	"context"
	"math"
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

type orderOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderWithOwner struct {
	models.Order
	User orderOwner `json:"user"`
}

// GetAllOrders lists orders for the back office, newest first, with optional
// status filtering and pagination. Orders owned by soft-deleted users are
// dropped from the returned page; the total (and the page count derived from
// it) still includes them.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		owners, err := activeOwners(ctx, db, orders)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		data := make([]orderWithOwner, 0, len(orders))
		for _, order := range orders {
			owner, ok := owners[order.UserID]
			if !ok {
				continue
			}
			data = append(data, orderWithOwner{
				Order: order,
				User:  orderOwner{Name: owner.Name, Email: owner.Email},
			})
		}

		pages := int64(0)
		if total > 0 {
			pages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(data),
			"total":   total,
			"page":    page,
			"pages":   pages,
			"data":    data,
		})
	}
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sets an order's status to any of the five values. There
// is no transition matrix: the back office may move an order between any two
// statuses, and no inventory is touched here.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		if !models.IsValidOrderStatus(req.Status) {
			respondError(c, http.StatusBadRequest, route, "Invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Order not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.WithFields(log.Fields{"orderId": orderID.Hex(), "status": req.Status}).Info("order status updated")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order status updated successfully",
			"data":    updated,
		})
	}
}

// DeleteOrder removes an order outright, bypassing the status rules. No
// inventory is restored.
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if result.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, route, "Order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order deleted successfully",
		})
	}
}
