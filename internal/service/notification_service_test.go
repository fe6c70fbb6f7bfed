package service

import (
	"testing"

	"dms-backend/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLifecycleEventsAreRouted(t *testing.T) {
	uploaded, ok := notificationConfigs[events.TypeDocumentUploaded]
	require.True(t, ok)
	assert.Equal(t, targetBroadcast, uploaded.Target)

	deleted, ok := notificationConfigs[events.TypeDocumentDeleted]
	require.True(t, ok)
	assert.Equal(t, targetBroadcast, deleted.Target)
}

func TestBuildNotificationFillsTemplate(t *testing.T) {
	s := &NotificationService{}

	evt := events.New(events.TypeDocumentDeleted, map[string]interface{}{
		"file_name": "tender-2026.pdf",
	})
	assert.Equal(t, events.TypeDocumentDeleted, evt.EventType())
	assert.False(t, evt.Timestamp().IsZero())

	config := notificationConfigs[events.TypeDocumentDeleted]
	notif := s.buildNotification(nil, events.TypeDocumentDeleted, config, evt)

	assert.Equal(t, "Document removed", notif.Title)
	assert.Equal(t, "tender-2026.pdf was removed", notif.Message)
	assert.Nil(t, notif.UserId)
	assert.NotEqual(t, uuid.Nil, notif.Id)
}
