package entity

import "github.com/gofrs/uuid"

// EventKind enumerates the lifecycle events emitted by the server.
type EventKind int

// Lifecycle events.
const (
	EventServerStarted EventKind = iota + 1
	EventServerStopped
	EventClientConnected
	EventClientDisconnected
	EventAuthenticationFailed
	EventIDEConnected
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventServerStarted:
		return "server_started"
	case EventServerStopped:
		return "server_stopped"
	case EventClientConnected:
		return "client_connected"
	case EventClientDisconnected:
		return "client_disconnected"
	case EventAuthenticationFailed:
		return "authentication_failed"
	case EventIDEConnected:
		return "ide_connected"
	default:
		return "unknown"
	}
}

// Event is implemented by every event payload.
type Event interface {
	Kind() EventKind
}

// ServerStarted is emitted once the server listens and its lock file exists.
type ServerStarted struct {
	Port         int
	Host         string
	AuthToken    string
	LockFilePath string
}

// ServerStopped is emitted once the server released its port and lock file.
type ServerStopped struct {
	Port int
}

// ClientConnected is emitted after a successful handshake.
type ClientConnected struct {
	ConnectionUUID uuid.UUID
	Peer           string
}

// ClientDisconnected is emitted when a connected client goes away.
type ClientDisconnected struct {
	ConnectionUUID uuid.UUID
	Peer           string
	Reason         string
}

// AuthenticationFailed is emitted when a handshake is rejected.
type AuthenticationFailed struct {
	Peer   string
	Reason string
}

// IDEConnected is emitted when the client announces itself with ide_connected.
type IDEConnected struct {
	SessionUUID uuid.UUID
	PID         int
}

// Kind implements Event.
func (ServerStarted) Kind() EventKind { return EventServerStarted }

// Kind implements Event.
func (ServerStopped) Kind() EventKind { return EventServerStopped }

// Kind implements Event.
func (ClientConnected) Kind() EventKind { return EventClientConnected }

// Kind implements Event.
func (ClientDisconnected) Kind() EventKind { return EventClientDisconnected }

// Kind implements Event.
func (AuthenticationFailed) Kind() EventKind { return EventAuthenticationFailed }

// Kind implements Event.
func (IDEConnected) Kind() EventKind { return EventIDEConnected }
