package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// Session is the repository layer model for an individual MCP client session.
type Session struct {
	UUID            uuid.UUID
	Initialized     bool
	ProtocolVersion string
	ClientName      string
	ClientVersion   string
	Subscriptions   map[string]bool
	Data            map[string]interface{}
	CreatedAt       time.Time
	LastActive      time.Time
}

// Expired reports whether the session has been idle since before cutoff.
func (s *Session) Expired(cutoff time.Time) bool {
	return s.LastActive.Before(cutoff)
}
