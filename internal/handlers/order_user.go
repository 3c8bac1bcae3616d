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

// CreateOrder places an order for the authenticated user and decrements the
// on-hand quantity of every referenced pizza. The insert and the per-item
// adjustments run inside one session transaction so a failed adjustment does
// not leave an orphan order behind.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, validationErrs := buildOrderFromRequest(req, auth.ID, time.Now())
		if len(validationErrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "validation failed",
				"errors":  validationErrs,
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var orderID primitive.ObjectID
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				orderID = id
			}

			for _, item := range order.Items {
				if item.PizzaID == nil {
					continue
				}
				if err := adjustPizzaQuantity(sessCtx, db, *item.PizzaID, -item.Quantity); err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		order.ID = orderID
		log.WithFields(log.Fields{"orderId": orderID.Hex(), "userId": auth.ID.Hex()}).Info("order created")
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully",
			"data":    order,
		})
	}
}

// adjustPizzaQuantity applies a signed quantity delta to one pizza as a
// single atomic pipeline update. Decrements clamp at zero and soldOut is
// recomputed from the resulting quantity in the same write. A delta against
// a pizza that no longer exists matches nothing and is ignored, keeping
// historical line items harmless.
func adjustPizzaQuantity(ctx context.Context, db *mongo.Database, pizzaID primitive.ObjectID, delta int) error {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"quantity": bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$quantity", delta}}}},
		}}},
		{{Key: "$set", Value: bson.M{
			"soldOut":   bson.M{"$eq": bson.A{"$quantity", 0}},
			"updatedAt": time.Now(),
		}}},
	}

	res, err := db.Collection("pizzas").UpdateOne(ctx, bson.M{"_id": pizzaID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		log.WithField("pizzaId", pizzaID.Hex()).Warn("inventory adjustment skipped: pizza not found")
	}
	return nil
}

func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/my-orders"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": auth.ID}, opts)
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

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(orders),
			"data":    orders,
		})
	}
}

func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Order not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.UserID != auth.ID {
			respondError(c, http.StatusForbidden, route, "Not authorized to view this order")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": orderWithOwner{
			Order: order,
			User:  orderOwner{Name: auth.Name, Email: auth.Email},
		}})
	}
}

// CancelOrder cancels a pending order owned by the caller and restores the
// on-hand quantity of every referenced pizza. Restoration recomputes soldOut
// from the restored quantity rather than forcing it false.
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /orders/:id/cancel"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Order not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.UserID != auth.ID {
			respondError(c, http.StatusForbidden, route, "Not authorized to cancel this order")
			return
		}

		if order.Status != models.OrderStatusPending {
			respondError(c, http.StatusBadRequest, route, "Can only cancel pending orders")
			return
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			for _, item := range order.Items {
				if item.PizzaID == nil {
					continue
				}
				if err := adjustPizzaQuantity(sessCtx, db, *item.PizzaID, item.Quantity); err != nil {
					return nil, err
				}
			}

			res := db.Collection("orders").FindOneAndUpdate(
				sessCtx,
				bson.M{"_id": orderID, "status": models.OrderStatusPending},
				bson.M{"$set": bson.M{
					"status":    models.OrderStatusCancelled,
					"updatedAt": time.Now(),
				}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			)
			return nil, res.Decode(&order)
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.WithFields(log.Fields{"orderId": orderID.Hex(), "userId": auth.ID.Hex()}).Info("order cancelled")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order cancelled successfully",
			"data":    order,
		})
	}
}
