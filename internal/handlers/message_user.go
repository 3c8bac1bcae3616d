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

type createMessageRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type replyRequest struct {
	Message string `json:"message" binding:"required"`
}

// CreateMessage starts a support thread. The caller's name and email are
// snapshotted onto the thread.
func CreateMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /messages"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		var req createMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		subject := strings.TrimSpace(req.Subject)
		body := strings.TrimSpace(req.Message)
		if subject == "" || body == "" {
			respondError(c, http.StatusBadRequest, route, "Subject and message are required")
			return
		}

		now := time.Now()
		message := models.Message{
			UserID:        auth.ID,
			UserName:      auth.Name,
			UserEmail:     auth.Email,
			Subject:       subject,
			Message:       body,
			Status:        models.MessageStatusPending,
			UnreadByUser:  false,
			UnreadByAdmin: true,
			Replies:       []models.MessageReply{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("messages").InsertOne(ctx, message)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		message.ID = res.InsertedID.(primitive.ObjectID)

		log.WithField("userId", auth.ID.Hex()).Info("message created")
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Message sent successfully",
			"data":    message,
		})
	}
}

func GetUserMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /messages/my-messages"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("messages").Find(ctx, bson.M{"userId": auth.ID}, opts)
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

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(messages),
			"data":    messages,
		})
	}
}

// GetMessageByID returns one thread for its owner or an admin. Viewing
// clears the viewer's own unread flag as a side effect of the read.
func GetMessageByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /messages/:id"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
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

		if message.UserID != auth.ID && !auth.IsAdmin() {
			respondError(c, http.StatusForbidden, route, "Not authorized")
			return
		}

		clearUnreadFor(&message, auth.IsAdmin())

		unreadField := "unreadByUser"
		if auth.IsAdmin() {
			unreadField = "unreadByAdmin"
		}
		if _, err := db.Collection("messages").UpdateByID(ctx, messageID, bson.M{
			"$set": bson.M{unreadField: false},
		}); err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": message})
	}
}

// ReplyToMessage appends an owner reply and marks the thread unread for the
// admin side.
func ReplyToMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /messages/:id/reply"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

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

		if message.UserID != auth.ID {
			respondError(c, http.StatusForbidden, route, "Not authorized")
			return
		}

		applyReply(&message, strings.TrimSpace(req.Message), auth.Name, false, time.Now())

		if err := persistReply(ctx, db, message); err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Reply sent successfully",
			"data":    message,
		})
	}
}

// GetUnreadCount returns how many of the caller's threads carry unread
// admin replies.
func GetUnreadCount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /messages/unread-count"
		defer handlePanic(c, route)

		auth, ok := currentUser(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("messages").CountDocuments(ctx, bson.M{
			"userId":       auth.ID,
			"unreadByUser": true,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
	}
}

// persistReply writes back the reply list, flags and status after applyReply.
func persistReply(ctx context.Context, db *mongo.Database, message models.Message) error {
	_, err := db.Collection("messages").UpdateByID(ctx, message.ID, bson.M{
		"$set": bson.M{
			"replies":       message.Replies,
			"status":        message.Status,
			"unreadByUser":  message.UnreadByUser,
			"unreadByAdmin": message.UnreadByAdmin,
			"updatedAt":     message.UpdatedAt,
		},
	})
	return err
}
