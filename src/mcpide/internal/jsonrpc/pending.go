package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

// ErrRequestTimeout is delivered to a server initiated request that got no response in time.
var ErrRequestTimeout = jsonrpc2.NewError(jsonrpc2.InternalError, "Request timeout")

type pendingResult struct {
	result json.RawMessage
	err    error
}

type pendingRequest struct {
	method  string
	created time.Time
	done    chan pendingResult
}

// complete never blocks; each request is completed by whoever removed it from the table.
func (p *pendingRequest) complete(result json.RawMessage, err error) {
	p.done <- pendingResult{result: result, err: err}
}

// Request sends a server initiated request and waits for the matching response.
func (d *Dispatcher) Request(ctx context.Context, method string, params interface{}, result interface{}) error {
	id, p, err := d.register(method)
	if err != nil {
		return err
	}

	payload, err := encodeRequest(&id, method, params)
	if err != nil {
		d.unregister(id)
		return fmt.Errorf("encoding request %q: %w", method, err)
	}
	if err := d.sender.Send(ctx, payload); err != nil {
		d.unregister(id)
		return fmt.Errorf(_errSend, method, err)
	}

	select {
	case res := <-p.done:
		if res.err != nil {
			return res.err
		}
		if result == nil || len(res.result) == 0 {
			return nil
		}
		if err := json.Unmarshal(res.result, result); err != nil {
			return fmt.Errorf("decoding result of %q: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		d.unregister(id)
		return ctx.Err()
	}
}

// PendingCount returns the number of server initiated requests awaiting a response.
func (d *Dispatcher) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Dispatcher) register(method string) (jsonrpc2.ID, *pendingRequest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return jsonrpc2.ID{}, nil, errors.ConnectionClosedError
	}
	if len(d.pending) >= d.maxPending {
		return jsonrpc2.ID{}, nil, jsonrpc2.NewError(jsonrpc2.InternalError, errors.TooManyPendingError.Error())
	}

	d.nextID++
	id := jsonrpc2.NewNumberID(d.nextID)
	p := &pendingRequest{
		method:  method,
		created: d.clock.Now(),
		done:    make(chan pendingResult, 1),
	}
	d.pending[id] = p
	return id, p, nil
}

func (d *Dispatcher) unregister(id jsonrpc2.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, id)
}

// resolve completes the pending request for id. Responses for unknown ids are dropped.
func (d *Dispatcher) resolve(id jsonrpc2.ID, result []byte, err error) {
	d.mu.Lock()
	p, ok := d.pending[id]
	delete(d.pending, id)
	d.mu.Unlock()

	if !ok {
		d.logger.Debugw("dropping response for unknown request", zap.Stringer("id", idStringer{&id}))
		return
	}
	p.complete(result, err)
}

// sweep rejects every pending request created at or before now minus the request timeout.
func (d *Dispatcher) sweep(now time.Time) int {
	cutoff := now.Add(-d.requestTimeout)

	d.mu.Lock()
	var expired []*pendingRequest
	for id, p := range d.pending {
		if !p.created.After(cutoff) {
			expired = append(expired, p)
			delete(d.pending, id)
		}
	}
	d.mu.Unlock()

	for _, p := range expired {
		d.logger.Warnw("server request timed out", "method", p.method, "age", now.Sub(p.created))
		p.complete(nil, ErrRequestTimeout)
	}
	return len(expired)
}

func (d *Dispatcher) sweepLoop(ticker clock.Ticker) {
	defer d.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C():
			d.sweep(d.clock.Now())
		}
	}
}
