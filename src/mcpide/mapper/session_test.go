package mapper

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	now := time.Now()
	s := &entity.Session{
		UUID:            factory.UUID(),
		Initialized:     true,
		ProtocolVersion: "2025-06-18",
		ClientInfo:      entity.Implementation{Name: "claude", Version: "1.0.0"},
		Subscriptions:   map[string]bool{"file:///a": true},
		Data:            map[string]interface{}{"k": "v"},
		CreatedAt:       now,
		LastActive:      now,
	}

	m := SessionToModel(s)
	assert.Equal(t, "claude", m.ClientName)

	got, err := ModelToSession(m)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	s.Subscriptions["file:///b"] = true
	s.Data["other"] = 1
	assert.Len(t, m.Subscriptions, 1)
	assert.Len(t, m.Data, 1)
}

func TestUUIDToSession(t *testing.T) {
	id := factory.UUID()
	now := time.Now()
	s := UUIDToSession(id, now)

	assert.Equal(t, id, s.UUID)
	assert.False(t, s.Initialized)
	assert.NotNil(t, s.Subscriptions)
	assert.NotNil(t, s.Data)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.LastActive)
}

func TestContextToSessionUUID(t *testing.T) {
	id := factory.UUID()

	got, err := ContextToSessionUUID(context.WithValue(context.Background(), entity.SessionContextKey, id))
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = ContextToSessionUUID(context.Background())
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}
