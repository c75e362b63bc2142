// Package entity contains the domain types of the mcpide service.
package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// MCP methods handled or sent by the server.
const (
	MethodInitialize           = "initialize"
	MethodInitialized          = "notifications/initialized"
	MethodPing                 = "ping"
	MethodToolsList            = "tools/list"
	MethodToolsCall            = "tools/call"
	MethodResourcesList        = "resources/list"
	MethodResourcesRead        = "resources/read"
	MethodResourcesSubscribe   = "resources/subscribe"
	MethodResourcesUnsubscribe = "resources/unsubscribe"
	MethodIDEConnected         = "ide_connected"
	MethodProgress             = "notifications/progress"
	MethodResourcesListChanged = "notifications/resources/list_changed"
	MethodResourcesUpdated     = "notifications/resources/updated"
)

// Keys of Session.Data.
const (
	SessionDataKeyIDEPid       = "idePid"
	SessionDataKeyCapabilities = "clientCapabilities"
)

// ConnectionState is the lifecycle state of a WebSocket connection.
type ConnectionState int32

// Connection states, in lifecycle order.
const (
	ConnectionConnecting ConnectionState = iota
	ConnectionConnected
	ConnectionClosing
	ConnectionClosed
)

// String implements fmt.Stringer.
func (s ConnectionState) String() string {
	switch s {
	case ConnectionConnecting:
		return "connecting"
	case ConnectionConnected:
		return "connected"
	case ConnectionClosing:
		return "closing"
	case ConnectionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session entity representing the server side state of a single MCP client connection.
type Session struct {
	UUID            uuid.UUID              `json:"uuid" zap:"uuid"`
	Initialized     bool                   `json:"initialized" zap:"initialized"`
	ProtocolVersion string                 `json:"protocolVersion" zap:"protocolVersion"`
	ClientInfo      Implementation         `json:"clientInfo" zap:"clientInfo"`
	Subscriptions   map[string]bool        `json:"-" zap:"-"`
	Data            map[string]interface{} `json:"-" zap:"-"`
	CreatedAt       time.Time              `json:"createdAt" zap:"createdAt"`
	LastActive      time.Time              `json:"lastActive" zap:"lastActive"`
}

// Subscribed reports whether the session asked for updates about uri.
func (s *Session) Subscribed(uri string) bool {
	return s.Subscriptions[uri]
}
