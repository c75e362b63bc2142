package mapper

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/model"
)

// SessionToModel maps a Session entity to its model equivalent.
// Maps are copied so the stored model never aliases caller owned state.
func SessionToModel(f *entity.Session) *model.Session {
	return &model.Session{
		UUID:            f.UUID,
		Initialized:     f.Initialized,
		ProtocolVersion: f.ProtocolVersion,
		ClientName:      f.ClientInfo.Name,
		ClientVersion:   f.ClientInfo.Version,
		Subscriptions:   copySubscriptions(f.Subscriptions),
		Data:            copyData(f.Data),
		CreatedAt:       f.CreatedAt,
		LastActive:      f.LastActive,
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(f *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:            f.UUID,
		Initialized:     f.Initialized,
		ProtocolVersion: f.ProtocolVersion,
		ClientInfo: entity.Implementation{
			Name:    f.ClientName,
			Version: f.ClientVersion,
		},
		Subscriptions: copySubscriptions(f.Subscriptions),
		Data:          copyData(f.Data),
		CreatedAt:     f.CreatedAt,
		LastActive:    f.LastActive,
	}, nil
}

// UUIDToSession initializes a new Session entity with the assigned uuid.
func UUIDToSession(u uuid.UUID, now time.Time) *entity.Session {
	return &entity.Session{
		UUID:          u,
		Subscriptions: map[string]bool{},
		Data:          map[string]interface{}{},
		CreatedAt:     now,
		LastActive:    now,
	}
}

// ContextToSessionUUID extracts the UUID from a context
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}

func copySubscriptions(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyData(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
