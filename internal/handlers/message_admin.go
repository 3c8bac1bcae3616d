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

// GetAllMessages lists support threads for the back office, newest first,
// optionally filtered by status. Threads from soft-deleted users are
// excluded.
func GetAllMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /messages"
		defer handlePanic(c, route)

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("messages").Find(ctx, filter, opts)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.Message, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		active, err := activeMessageOwners(ctx, db, messages)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		data := make([]models.Message, 0, len(messages))
		for _, message := range messages {
			if _, ok := active[message.UserID]; !ok {
				continue
			}
			data = append(data, message)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(data),
			"data":    data,
		})
	}
}

// AdminReply appends a staff reply, marks the thread replied and flags it
// unread for the user.
func AdminReply(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /messages/:id/admin-reply"
		defer handlePanic(c, route)

		messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req replyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var message models.Message
		err = db.Collection("messages").FindOne(ctx, bson.M{"_id": messageID}).Decode(&message)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Message not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		applyReply(&message, strings.TrimSpace(req.Message), "Admin", true, time.Now())

		if err := persistReply(ctx, db, message); err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.WithField("messageId", messageID.Hex()).Info("admin reply sent")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Reply sent successfully",
			"data":    message,
		})
	}
}

type messageStatusRequest struct {
	Status string `json:"status"`
}

// UpdateMessageStatus assigns a thread status. Closing a thread does not
// block further replies at this layer; the storefront hides the reply form
// on its own.
func UpdateMessageStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /messages/:id/status"
		defer handlePanic(c, route)

		messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req messageStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		if !models.IsValidMessageStatus(req.Status) {
			respondError(c, http.StatusBadRequest, route, "Invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Message
		err = db.Collection("messages").FindOneAndUpdate(
			ctx,
			bson.M{"_id": messageID},
			bson.M{"$set": bson.M{
				"status":        req.Status,
				"unreadByAdmin": false,
				"updatedAt":     time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "Message not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Status updated successfully",
			"data":    updated,
		})
	}
}

// GetAdminUnreadCount counts threads waiting on the back office.
func GetAdminUnreadCount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /messages/admin/unread-count"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("messages").CountDocuments(ctx, bson.M{"unreadByAdmin": true})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
	}
}
