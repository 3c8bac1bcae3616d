package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/models"
)

func TestApplyReplyFromAdmin(t *testing.T) {
	now := time.Now()
	m := &models.Message{
		Status:        models.MessageStatusPending,
		UnreadByAdmin: true,
	}

	applyReply(m, "We are on it", "Admin", true, now)

	require.Len(t, m.Replies, 1)
	assert.Equal(t, "We are on it", m.Replies[0].Message)
	assert.True(t, m.Replies[0].IsAdmin)
	assert.Equal(t, "Admin", m.Replies[0].SenderName)
	assert.Equal(t, models.MessageStatusReplied, m.Status)
	assert.True(t, m.UnreadByUser)
	assert.False(t, m.UnreadByAdmin)
	assert.Equal(t, now, m.UpdatedAt)
}

func TestApplyReplyFromUser(t *testing.T) {
	m := &models.Message{
		Status:       models.MessageStatusReplied,
		UnreadByUser: true,
	}

	applyReply(m, "Thanks, one more thing", "Mario Rossi", false, time.Now())

	require.Len(t, m.Replies, 1)
	assert.False(t, m.Replies[0].IsAdmin)
	// user replies do not move the thread status
	assert.Equal(t, models.MessageStatusReplied, m.Status)
	assert.False(t, m.UnreadByUser)
	assert.True(t, m.UnreadByAdmin)
}

func TestApplyReplyOnClosedThread(t *testing.T) {
	m := &models.Message{Status: models.MessageStatusClosed}

	applyReply(m, "reopening?", "Mario Rossi", false, time.Now())

	assert.Equal(t, models.MessageStatusClosed, m.Status)
	assert.True(t, m.UnreadByAdmin)
}

func TestClearUnreadFor(t *testing.T) {
	m := &models.Message{UnreadByUser: true, UnreadByAdmin: true}

	clearUnreadFor(m, false)
	assert.False(t, m.UnreadByUser)
	assert.True(t, m.UnreadByAdmin)

	clearUnreadFor(m, true)
	assert.False(t, m.UnreadByAdmin)
}

func TestIsValidMessageStatus(t *testing.T) {
	for _, status := range []string{"pending", "replied", "closed"} {
		assert.True(t, models.IsValidMessageStatus(status), status)
	}
	assert.False(t, models.IsValidMessageStatus("archived"))
	assert.False(t, models.IsValidMessageStatus(""))
}
