package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventTypeUpdated, EntityTypeTransaction, map[string]int32{"id": 7})

	assert.Equal(t, "transaction.updated", event.Type)
	assert.Equal(t, EntityTypeTransaction, event.Entity)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventToJSON(t *testing.T) {
	event := CategoryCreated(map[string]string{"name": "Food"})

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "category.created", decoded["type"])
	assert.Equal(t, "category", decoded["entity"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Food", payload["name"])
}

func TestEventHelpers(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{CategoryCreated(nil), "category.created"},
		{CategoryDeleted(nil), "category.deleted"},
		{TransactionCreated(nil), "transaction.created"},
		{TransactionUpdated(nil), "transaction.updated"},
		{TransactionDeleted(nil), "transaction.deleted"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.Type)
	}
}
