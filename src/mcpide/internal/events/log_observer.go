package events

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"go.uber.org/zap"
)

type logObserver struct {
	logger *zap.SugaredLogger
}

// NewLogObserver returns an Observer that writes each event to the log. Auth tokens are never logged.
func NewLogObserver(logger *zap.SugaredLogger) Observer {
	return &logObserver{logger: logger}
}

func (o *logObserver) Observe(ctx context.Context, event entity.Event) {
	kind := zap.String("event", event.Kind().String())

	switch e := event.(type) {
	case entity.ServerStarted:
		o.logger.Infow("server started", kind, zap.String("host", e.Host), zap.Int("port", e.Port), zap.String("lockFile", e.LockFilePath))
	case entity.ServerStopped:
		o.logger.Infow("server stopped", kind, zap.Int("port", e.Port))
	case entity.ClientConnected:
		o.logger.Infow("client connected", kind, zap.Stringer("uuid", e.ConnectionUUID), zap.String("peer", e.Peer))
	case entity.ClientDisconnected:
		o.logger.Infow("client disconnected", kind, zap.Stringer("uuid", e.ConnectionUUID), zap.String("peer", e.Peer), zap.String("reason", e.Reason))
	case entity.AuthenticationFailed:
		o.logger.Warnw("authentication failed", kind, zap.String("peer", e.Peer), zap.String("reason", e.Reason))
	case entity.IDEConnected:
		o.logger.Infow("ide connected", kind, zap.Stringer("session", e.SessionUUID), zap.Int("pid", e.PID))
	default:
		o.logger.Debugw("event", kind)
	}
}
