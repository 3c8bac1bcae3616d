package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message thread statuses.
const (
	MessageStatusPending = "pending"
	MessageStatusReplied = "replied"
	MessageStatusClosed  = "closed"
)

// MessageReply is an entry in a thread's append-only reply list.
type MessageReply struct {
	Message    string    `bson:"message" json:"message"`
	IsAdmin    bool      `bson:"isAdmin" json:"isAdmin"`
	SenderName string    `bson:"senderName" json:"senderName"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Message is a two-sided support thread. The user's name and email are
// snapshotted so the thread stays readable after account changes. Each side
// has its own unread flag: a reply flips the other party's flag on and the
// sender's off, and viewing a thread clears the viewer's own flag.
type Message struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	UserName      string             `bson:"userName" json:"userName"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	Subject       string             `bson:"subject" json:"subject"`
	Message       string             `bson:"message" json:"message"`
	Status        string             `bson:"status" json:"status"`
	UnreadByUser  bool               `bson:"unreadByUser" json:"unreadByUser"`
	UnreadByAdmin bool               `bson:"unreadByAdmin" json:"unreadByAdmin"`
	Replies       []MessageReply     `bson:"replies" json:"replies"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidMessageStatus reports whether s is one of the three thread statuses.
func IsValidMessageStatus(s string) bool {
	switch s {
	case MessageStatusPending, MessageStatusReplied, MessageStatusClosed:
		return true
	}
	return false
}
