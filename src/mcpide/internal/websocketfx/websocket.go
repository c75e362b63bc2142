package websocketfx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/events"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/lockfile"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/wsframe"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	_configKey = "websocket"
	_nameKey   = "websocket"

	// EnvPort advertises the listening port to child processes.
	EnvPort = "CLAUDE_CODE_SSE_PORT"
	// EnvIntegration tells child processes that an IDE integration is available.
	EnvIntegration = "ENABLE_IDE_INTEGRATION"

	_defaultHost             = "127.0.0.1"
	_defaultHandshakeTimeout = 30 * time.Second
	_defaultHeartbeat        = 30 * time.Second
	_defaultWriteTimeout     = 10 * time.Second
	_defaultHandshakeRate    = 10
	_defaultHandshakeBurst   = 20

	_reasonShutdown = "Server shutting down"
)

// _connectionNamespace scopes the UUIDv5 connection ids.
var _connectionNamespace = uuid.Must(uuid.FromString("4f3d8e4a-9b57-4c1e-8f0e-2d6a7c1b5e90"))

// Module is an fx module serving MCP over WebSocket.
var Module = fx.Provide(New)

// WebSocketModule owns the listening socket, its connections and the lock file that advertises them.
type WebSocketModule interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
	// Port is the bound port, or 0 while the server is not listening.
	Port() int
	AuthToken() string
	LockFilePath() string
	ConnectionCount() int
}

// Router receives the text messages of one connection.
type Router interface {
	HandleMessage(ctx context.Context, payload []byte)
	// Close is called once the connection is gone. Pending work on the connection must be released.
	Close()
	UUID() uuid.UUID
}

// ConnectionManager will manage each active connection and its corresponding Router throughout the lifecycle of a connection.
type ConnectionManager interface {
	NewConnection(ctx context.Context, id uuid.UUID, sender jsonrpc.Sender) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

type settings struct {
	Host                    string  `yaml:"host"`
	Port                    int     `yaml:"port"`
	HandshakeTimeoutSeconds int     `yaml:"handshakeTimeoutSeconds"`
	HeartbeatSeconds        int     `yaml:"heartbeatSeconds"`
	WriteTimeoutSeconds     int     `yaml:"writeTimeoutSeconds"`
	HandshakeRatePerSecond  float64 `yaml:"handshakeRatePerSecond"`
	HandshakeBurst          int     `yaml:"handshakeBurst"`
}

type module struct {
	host             string
	port             int
	handshakeTimeout time.Duration
	heartbeat        time.Duration
	writeTimeout     time.Duration
	authToken        string

	connectionMgr ConnectionManager
	limiter       *rate.Limiter
	lockFiles     lockfile.Store
	events        events.Bus
	clock         clock.Clock
	logger        *zap.SugaredLogger
	stats         tally.Scope

	ln           net.Listener
	boundPort    atomic.Int32
	lockFilePath string
	ctx          context.Context
	cancel       context.CancelFunc
	group        errgroup.Group
	accepted     atomic.Uint64
	sockets      sync.Map // every accepted net.Conn until its goroutine returns
	conns        sync.Map
	connCount    atomic.Int64
	stopOnce     sync.Once
	stopErr      error
}

// Params define values to be used by WebSocketModule.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	LockFiles lockfile.Store
	Events    events.Bus
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

// New creates the WebSocket server. It starts listening when the fx application starts.
func New(p Params) (WebSocketModule, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	token, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generating auth token: %w", err)
	}

	m := &module{
		authToken: token.String(),
		lockFiles: p.LockFiles,
		events:    p.Events,
		clock:     p.Clock,
		logger:    p.Logger.With("plugin", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
	}
	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})
	return m, nil
}

// OnStart binds the listener, begins accepting connections and advertises the server through the environment and a lock file.
func (m *module) OnStart(ctx context.Context) error {
	if m.connectionMgr == nil {
		return errors.New("cannot start server, no connection manager set")
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(m.host, strconv.Itoa(m.port)))
	if err != nil {
		return fmt.Errorf("binding %s:%d: %w", m.host, m.port, err)
	}
	m.ln = ln
	port := ln.Addr().(*net.TCPAddr).Port
	m.boundPort.Store(int32(port))

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.group.Go(m.acceptLoop)

	path, err := m.lockFiles.Create(port, m.authToken)
	if err != nil {
		return multierr.Append(err, m.OnStop(ctx))
	}
	m.lockFilePath = path

	if err := multierr.Append(
		os.Setenv(EnvPort, strconv.Itoa(port)),
		os.Setenv(EnvIntegration, "true"),
	); err != nil {
		return multierr.Append(err, m.OnStop(ctx))
	}

	m.events.Emit(ctx, entity.ServerStarted{
		Port:         port,
		Host:         m.host,
		AuthToken:    m.authToken,
		LockFilePath: path,
	})
	return nil
}

// OnStop withdraws the lock file and environment markers, then closes the listener and every socket,
// including those still in the handshake. Waiting for connection goroutines is bounded by ctx.
// It is safe to call more than once and after a failed start.
func (m *module) OnStop(ctx context.Context) error {
	m.stopOnce.Do(func() {
		if m.ln == nil {
			return
		}
		port := m.Port()

		m.cancel()
		if err := m.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			m.stopErr = multierr.Append(m.stopErr, fmt.Errorf("closing listener: %w", err))
		}

		if m.lockFilePath != "" {
			m.stopErr = multierr.Append(m.stopErr, m.lockFiles.Remove(m.lockFilePath))
			m.lockFilePath = ""
		}
		m.stopErr = multierr.Combine(
			m.stopErr,
			os.Unsetenv(EnvPort),
			os.Unsetenv(EnvIntegration),
		)
		m.boundPort.Store(0)

		m.conns.Range(func(_, value interface{}) bool {
			value.(*connection).close(wsframe.CloseGoingAway, _reasonShutdown)
			return true
		})
		m.sockets.Range(func(key, _ interface{}) bool {
			if err := key.(net.Conn).Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				m.logger.Debugw("closing socket", zap.Error(err))
			}
			return true
		})
		m.stopErr = multierr.Append(m.stopErr, m.wait(ctx))

		m.events.Emit(ctx, entity.ServerStopped{Port: port})
	})
	return m.stopErr
}

// wait blocks until the accept loop and every connection goroutine returned, or ctx is done.
func (m *module) wait(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- m.group.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("waiting for connections to close: %w", ctx.Err())
	}
}

// RegisterConnectionManager sets the connection manager, which keeps track of current active connections and provides a Router implementation.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}

func (m *module) Port() int {
	return int(m.boundPort.Load())
}

func (m *module) AuthToken() string {
	return m.authToken
}

func (m *module) LockFilePath() string {
	return m.lockFilePath
}

func (m *module) ConnectionCount() int {
	return int(m.connCount.Load())
}

// acceptLoop runs until the listener is closed. Every accepted socket is served on its own goroutine.
func (m *module) acceptLoop() error {
	m.logger.Infow("accepting connections", zap.String("address", m.ln.Addr().String()))
	for {
		conn, err := m.ln.Accept()
		if err != nil {
			if m.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			m.logger.Warnw("accepting connection", zap.Error(err))
			continue
		}

		seq := m.accepted.Add(1)
		m.sockets.Store(conn, struct{}{})
		m.group.Go(func() error {
			defer m.sockets.Delete(conn)
			m.serve(m.ctx, conn, seq)
			return nil
		})
	}
}

func (m *module) track(c *connection) {
	m.conns.Store(c.id, c)
	m.stats.Gauge("connections").Update(float64(m.connCount.Add(1)))
}

func (m *module) untrack(c *connection) {
	if _, ok := m.conns.LoadAndDelete(c.id); ok {
		m.stats.Gauge("connections").Update(float64(m.connCount.Add(-1)))
	}
}

// processConfig will parse the configuration for any values required by this module.
func (m *module) processConfig(cfg config.Provider) error {
	s := settings{}
	if err := cfg.Get(_configKey).Populate(&s); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKey, err)
	}

	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("invalid %s.port %d", _configKey, s.Port)
	}

	m.host = s.Host
	if m.host == "" {
		m.host = _defaultHost
	}
	if ip := net.ParseIP(m.host); m.host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		return fmt.Errorf("%s.host must be a loopback address, got %q", _configKey, m.host)
	}
	m.port = s.Port

	m.handshakeTimeout = secondsOr(s.HandshakeTimeoutSeconds, _defaultHandshakeTimeout)
	m.heartbeat = secondsOr(s.HeartbeatSeconds, _defaultHeartbeat)
	m.writeTimeout = secondsOr(s.WriteTimeoutSeconds, _defaultWriteTimeout)

	limit := rate.Limit(s.HandshakeRatePerSecond)
	if s.HandshakeRatePerSecond <= 0 {
		limit = _defaultHandshakeRate
	}
	burst := s.HandshakeBurst
	if burst <= 0 {
		burst = _defaultHandshakeBurst
	}
	m.limiter = rate.NewLimiter(limit, burst)

	return nil
}

func secondsOr(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
