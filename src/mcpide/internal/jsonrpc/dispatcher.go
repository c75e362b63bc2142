// Package jsonrpc implements the JSON-RPC 2.0 layer of an MCP connection.
// A Dispatcher decodes inbound text frames, routes calls and notifications to a jsonrpc2.Handler,
// correlates responses with server initiated requests and serializes every reply through a Sender.
package jsonrpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const (
	// MaxMessageSize is the largest inbound message accepted by the dispatcher.
	MaxMessageSize = 1 << 20

	_defaultRequestTimeout = 30 * time.Second
	_defaultSweepInterval  = 5 * time.Second
	_defaultMaxPending     = 100

	_errSend = "sending %q: %w"
)

// Sender writes one serialized message to the peer. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, payload []byte) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, payload []byte) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, payload []byte) error {
	return f(ctx, payload)
}

// Conn is the server to client half of a connection.
type Conn interface {
	// Request sends a server initiated request and waits for its response, decoding the result into result when it is non-nil.
	Request(ctx context.Context, method string, params interface{}, result interface{}) error
	// Notify sends a notification. It does not wait for any acknowledgement.
	Notify(ctx context.Context, method string, params interface{}) error
	StartProgress(ctx context.Context, token protocol.ProgressToken, message string) error
	UpdateProgress(ctx context.Context, token protocol.ProgressToken, progress float64, message string) error
	CompleteProgress(ctx context.Context, token protocol.ProgressToken, message string) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dropped messages and handler failures.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clock.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = c
	}
}

// WithRequestTimeout sets how long a server initiated request may stay pending.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.requestTimeout = timeout
		}
	}
}

// WithSweepInterval sets how often pending requests are checked for timeouts.
func WithSweepInterval(interval time.Duration) Option {
	return func(d *Dispatcher) {
		if interval > 0 {
			d.sweepInterval = interval
		}
	}
}

// WithMaxPending caps the number of concurrent server initiated requests.
func WithMaxPending(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxPending = n
		}
	}
}

// Dispatcher routes the messages of a single connection.
type Dispatcher struct {
	sender  Sender
	handler jsonrpc2.Handler
	logger  *zap.SugaredLogger
	clock   clock.Clock

	requestTimeout time.Duration
	sweepInterval  time.Duration
	maxPending     int

	mu      sync.Mutex
	pending map[jsonrpc2.ID]*pendingRequest
	nextID  int32
	closed  bool

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ Conn = (*Dispatcher)(nil)

// New creates a Dispatcher and starts its pending request sweep. Close must be called to release it.
func New(sender Sender, handler jsonrpc2.Handler, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender:         sender,
		handler:        handler,
		logger:         zap.NewNop().Sugar(),
		clock:          clock.New(),
		requestTimeout: _defaultRequestTimeout,
		sweepInterval:  _defaultSweepInterval,
		maxPending:     _defaultMaxPending,
		pending:        make(map[jsonrpc2.ID]*pendingRequest),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	ticker := d.clock.NewTicker(d.sweepInterval)
	d.wg.Add(1)
	go d.sweepLoop(ticker)

	return d
}

// Handle processes one inbound message. Calls are answered exactly once, either before Handle returns
// or later by whoever the handler passed its replier to. Notifications are never answered.
func (d *Dispatcher) Handle(ctx context.Context, payload []byte) {
	if len(payload) > MaxMessageSize {
		d.send(ctx, nil, nil, jsonrpc2.Errorf(jsonrpc2.InvalidRequest, "Invalid Request: message exceeds %d bytes", MaxMessageSize))
		return
	}

	kind, id, err := classify(payload)
	switch kind {
	case kindInvalid:
		d.logger.Debugw("rejecting message", zap.Error(err))
		d.send(ctx, id, nil, err)
		return
	case kindDropped:
		d.logger.Warnw("dropping error response without id", zap.ByteString("payload", payload))
		return
	}

	msg, err := jsonrpc2.DecodeMessage(payload)
	if err != nil {
		if kind == kindResponse {
			d.logger.Warnw("dropping malformed response", zap.Error(err))
			return
		}
		d.send(ctx, id, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "Invalid Request: "+err.Error()))
		return
	}

	switch m := msg.(type) {
	case *jsonrpc2.Call:
		d.handleCall(ctx, m)
	case *jsonrpc2.Notification:
		d.handleNotification(ctx, m)
	case *jsonrpc2.Response:
		d.resolve(m.ID(), m.Result(), m.Err())
	}
}

// Notify sends a notification to the peer.
func (d *Dispatcher) Notify(ctx context.Context, method string, params interface{}) error {
	if d.isClosed() {
		return errors.ConnectionClosedError
	}

	payload, err := encodeRequest(nil, method, params)
	if err != nil {
		return fmt.Errorf("encoding notification %q: %w", method, err)
	}
	if err := d.sender.Send(ctx, payload); err != nil {
		return fmt.Errorf(_errSend, method, err)
	}
	return nil
}

// Close rejects every pending request and stops the sweep. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		pending := d.pending
		d.pending = make(map[jsonrpc2.ID]*pendingRequest)
		d.mu.Unlock()

		for _, p := range pending {
			p.complete(nil, errors.ConnectionClosedError)
		}

		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) handleCall(ctx context.Context, call *jsonrpc2.Call) {
	id := call.ID()
	reply := d.replier(&id, call.Method())

	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("handler panicked", "method", call.Method(), "panic", r)
			reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "Internal error: %v", r))
		}
	}()

	if err := d.handler(ctx, reply, call); err != nil {
		// Replies that were already sent are left alone by the replier.
		reply(ctx, nil, err)
	}
}

func (d *Dispatcher) handleNotification(ctx context.Context, n *jsonrpc2.Notification) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("notification handler panicked", "method", n.Method(), "panic", r)
		}
	}()

	noop := func(context.Context, interface{}, error) error { return nil }
	if err := d.handler(ctx, noop, n); err != nil {
		d.logger.Warnw("notification handler failed", "method", n.Method(), zap.Error(err))
	}
}

// replier returns a jsonrpc2.Replier that sends at most one response for id.
func (d *Dispatcher) replier(id *jsonrpc2.ID, method string) jsonrpc2.Replier {
	var once sync.Once
	return func(ctx context.Context, result interface{}, err error) error {
		sendErr := errors.DuplicateReplyError
		once.Do(func() {
			sendErr = d.send(ctx, id, result, err)
		})
		if sendErr == errors.DuplicateReplyError {
			d.logger.Debugw("ignoring duplicate reply", "method", method, zap.Stringer("id", idStringer{id}))
		}
		return sendErr
	}
}

func (d *Dispatcher) send(ctx context.Context, id *jsonrpc2.ID, result interface{}, err error) error {
	payload, encErr := encodeResponse(id, result, err)
	if encErr != nil {
		d.logger.Errorw("encoding response", zap.Error(encErr))
		return encErr
	}
	if sendErr := d.sender.Send(ctx, payload); sendErr != nil {
		d.logger.Warnw("sending response", zap.Error(sendErr))
		return sendErr
	}
	return nil
}

func (d *Dispatcher) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

type idStringer struct {
	id *jsonrpc2.ID
}

func (s idStringer) String() string {
	if s.id == nil {
		return "null"
	}
	return fmt.Sprintf("%q", *s.id)
}
