package websocketfx

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	mcperrors "github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/handshake"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/wsframe"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

const (
	_readChunkSize = 32 * 1024

	_reasonHeartbeat = "Heartbeat timeout"
	_reasonPeerGone  = "Connection lost"
	_reasonRouter    = "Failed to create connection"
)

// connection is one upgraded socket. Reads happen on the serving goroutine, writes from any goroutine.
type connection struct {
	id           uuid.UUID
	peer         string
	netConn      net.Conn
	writeTimeout time.Duration
	logger       *zap.SugaredLogger
	stats        tally.Scope

	state    atomic.Int32
	lastSeen atomic.Int64

	writeMu sync.Mutex

	closeOnce   sync.Once
	closed      chan struct{}
	closeReason string
}

// serve runs the handshake on a freshly accepted socket and, when it succeeds, the connection until it closes.
func (m *module) serve(ctx context.Context, netConn net.Conn, seq uint64) {
	peer := netConn.RemoteAddr().String()

	if err := m.limiter.Wait(ctx); err != nil {
		netConn.Close()
		return
	}

	reader := bufio.NewReader(netConn)
	key, subprotocol, err := m.upgrade(netConn, reader)
	if err != nil {
		if ctx.Err() != nil {
			// Aborted by shutdown.
			netConn.Close()
			return
		}
		m.reject(ctx, netConn, peer, err)
		return
	}

	c := &connection{
		id:           uuid.NewV5(_connectionNamespace, key+"|"+strconv.FormatUint(seq, 10)),
		peer:         peer,
		netConn:      netConn,
		writeTimeout: m.writeTimeout,
		stats:        m.stats,
		closed:       make(chan struct{}),
	}
	c.logger = m.logger.With(zap.Stringer("uuid", c.id))
	c.touch(m.clock.Now())

	if err := handshake.WriteAccept(netConn, key, subprotocol); err != nil {
		m.logger.Warnw("writing handshake response", zap.String("peer", peer), zap.Error(err))
		netConn.Close()
		return
	}
	c.state.Store(int32(entity.ConnectionConnected))

	router, err := m.connectionMgr.NewConnection(ctx, c.id, c)
	if err != nil {
		c.logger.Errorw("creating connection", zap.Error(err))
		c.close(wsframe.CloseInternalError, _reasonRouter)
		return
	}

	m.track(c)
	if ctx.Err() != nil {
		c.close(wsframe.CloseGoingAway, _reasonShutdown)
	}
	m.events.Emit(ctx, entity.ClientConnected{ConnectionUUID: c.id, Peer: peer})

	c.run(ctx, reader, router, m)

	m.untrack(c)
	router.Close()
	m.connectionMgr.RemoveConnection(ctx, c.id)
	c.state.Store(int32(entity.ConnectionClosed))
	m.events.Emit(ctx, entity.ClientDisconnected{ConnectionUUID: c.id, Peer: peer, Reason: c.closeReason})
}

// upgrade reads and validates the opening handshake within the handshake window.
func (m *module) upgrade(netConn net.Conn, reader *bufio.Reader) (key string, subprotocol string, err error) {
	if err := netConn.SetReadDeadline(time.Now().Add(m.handshakeTimeout)); err != nil {
		return "", "", err
	}

	req, err := handshake.ReadRequest(reader)
	if err != nil {
		return "", "", err
	}
	if err := handshake.ValidateUpgrade(req); err != nil {
		return "", "", err
	}
	if err := handshake.Authenticate(req, m.authToken); err != nil {
		return "", "", err
	}

	if err := netConn.SetReadDeadline(time.Time{}); err != nil {
		return "", "", err
	}
	return handshake.ClientKey(req), handshake.RequestedSubprotocol(req), nil
}

func (m *module) reject(ctx context.Context, netConn net.Conn, peer string, err error) {
	defer netConn.Close()

	status := http.StatusBadRequest
	reason := err.Error()
	var upgradeErr *handshake.UpgradeError
	if errors.As(err, &upgradeErr) {
		status = upgradeErr.Status
		reason = upgradeErr.Reason
	}

	m.stats.Tagged(map[string]string{"reason": reason}).Counter("handshake_failures").Inc(1)
	if upgradeErr == nil {
		// Timeouts and resets leave nothing to answer.
		m.logger.Debugw("handshake aborted", zap.String("peer", peer), zap.Error(err))
	} else {
		_ = netConn.SetWriteDeadline(time.Now().Add(m.writeTimeout))
		if werr := handshake.WriteReject(netConn, status); werr != nil {
			m.logger.Debugw("writing handshake rejection", zap.String("peer", peer), zap.Error(werr))
		}
	}

	m.events.Emit(ctx, entity.AuthenticationFailed{Peer: peer, Reason: reason})
}

// run reads frames until the connection closes, with the heartbeat running alongside.
func (c *connection) run(ctx context.Context, reader io.Reader, router Router, m *module) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.heartbeat(m)
	}()

	c.readLoop(ctx, reader, router, m)
	c.close(wsframe.CloseGoingAway, _reasonPeerGone)
	wg.Wait()
}

func (c *connection) readLoop(ctx context.Context, reader io.Reader, router Router, m *module) {
	buf := make([]byte, 0, _readChunkSize)
	chunk := make([]byte, _readChunkSize)

	for {
		n, err := reader.Read(chunk)
		if n > 0 {
			c.touch(m.clock.Now())
			buf = append(buf, chunk[:n]...)

			rest, done := c.drain(ctx, buf, router)
			if done {
				return
			}
			buf = append(buf[:0], rest...)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				c.logger.Debugw("reading from connection", zap.Error(err))
			}
			return
		}
	}
}

// drain handles every complete frame at the front of buf and returns the unconsumed tail.
// done is true once the connection must stop reading.
func (c *connection) drain(ctx context.Context, buf []byte, router Router) (rest []byte, done bool) {
	for {
		frame, consumed, err := wsframe.ParseFrame(buf, wsframe.MaxPayload)
		if errors.Is(err, wsframe.ErrNeedMoreData) {
			return buf, false
		}
		if err != nil {
			var protoErr *wsframe.ProtocolError
			if errors.As(err, &protoErr) {
				c.stats.Tagged(map[string]string{"reason": protoErr.Reason}).Counter("protocol_errors").Inc(1)
				c.logger.Warnw("protocol error", zap.String("peer", c.peer), zap.Error(err))
				c.close(protoErr.Code, protoErr.Reason)
			} else {
				c.close(wsframe.CloseInternalError, err.Error())
			}
			return nil, true
		}
		buf = buf[consumed:]
		c.stats.Tagged(map[string]string{"opcode": frame.Opcode.String()}).Counter("frames_received").Inc(1)

		switch frame.Opcode {
		case wsframe.OpText:
			router.HandleMessage(ctx, frame.Payload)
		case wsframe.OpPing:
			if err := c.write(wsframe.OpPong, frame.Payload); err != nil {
				c.logger.Debugw("answering ping", zap.Error(err))
			}
		case wsframe.OpPong:
			// Any received frame already counts as liveness.
		case wsframe.OpClose:
			code, reason := wsframe.ParseClosePayload(frame.Payload)
			if code == wsframe.CloseNoStatus {
				code = wsframe.CloseNormal
			}
			c.close(code, reason)
			return nil, true
		}
	}
}

// heartbeat pings the client every interval and closes the connection when nothing arrived for two intervals.
func (c *connection) heartbeat(m *module) {
	ticker := m.clock.NewTicker(m.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
			return
		case now := <-ticker.C():
			if now.Sub(time.Unix(0, c.lastSeen.Load())) > 2*m.heartbeat {
				c.logger.Infow("closing idle connection", zap.String("peer", c.peer))
				c.close(wsframe.CloseGoingAway, _reasonHeartbeat)
				return
			}
			if err := c.write(wsframe.OpPing, nil); err != nil {
				c.logger.Debugw("sending ping", zap.Error(err))
			}
		}
	}
}

// Send writes one text message. It implements jsonrpc.Sender.
func (c *connection) Send(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.write(wsframe.OpText, payload)
}

func (c *connection) write(op wsframe.Opcode, payload []byte) error {
	if entity.ConnectionState(c.state.Load()) != entity.ConnectionConnected {
		return mcperrors.ConnectionClosedError
	}
	return c.writeFrame(op, payload)
}

func (c *connection) writeFrame(op wsframe.Opcode, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.netConn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	if _, err := c.netConn.Write(wsframe.SerializeFrame(op, payload)); err != nil {
		return fmt.Errorf("writing %s frame: %w", op, err)
	}
	c.stats.Tagged(map[string]string{"opcode": op.String()}).Counter("frames_sent").Inc(1)
	return nil
}

// close sends a CLOSE frame and shuts the socket. Only the first call has any effect.
func (c *connection) close(code uint16, reason string) {
	c.closeOnce.Do(func() {
		c.state.Store(int32(entity.ConnectionClosing))
		c.closeReason = reason

		if err := c.writeFrame(wsframe.OpClose, wsframe.ClosePayload(code, reason)); err != nil {
			c.logger.Debugw("sending close frame", zap.Error(err))
		}
		if err := c.netConn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			c.logger.Debugw("closing socket", zap.Error(err))
		}
		close(c.closed)
	})
}

func (c *connection) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}
