package handlers

import (
	"time"

	"backend/internal/models"
)

// applyReply appends a reply and flips the unread flags toward the other
// party. Admin replies also move the thread to the replied status.
func applyReply(m *models.Message, body, senderName string, isAdmin bool, now time.Time) {
	m.Replies = append(m.Replies, models.MessageReply{
		Message:    body,
		IsAdmin:    isAdmin,
		SenderName: senderName,
		CreatedAt:  now,
	})

	if isAdmin {
		m.Status = models.MessageStatusReplied
		m.UnreadByUser = true
		m.UnreadByAdmin = false
	} else {
		m.UnreadByUser = false
		m.UnreadByAdmin = true
	}
	m.UpdatedAt = now
}

// clearUnreadFor clears the viewer's own unread flag. Reading a thread is
// the only query with a write side effect in this API.
func clearUnreadFor(m *models.Message, isAdmin bool) {
	if isAdmin {
		m.UnreadByAdmin = false
	} else {
		m.UnreadByUser = false
	}
}
