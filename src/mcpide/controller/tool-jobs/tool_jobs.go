// Package tooljobs runs tools/call invocations. Every job runs on its own goroutine, so a tool that
// waits on the user never delays other requests, and answers its request exactly once.
package tooljobs

import (
	"context"
	"encoding/json"
	stderr "errors"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	toolcache "github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-cache"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	mcpclient "github.com/ideconnect/mcp-ide/src/mcpide/gateway/mcp-client"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "tool_jobs"

	// FailurePrefix starts the text of every failed tool result.
	FailurePrefix = "Tool execution failed: "
)

// ErrDeferred is returned by an Executor that will complete its job later through the Completion.
var ErrDeferred = errors.New("tool result deferred")

// Executor runs a tool. It either returns the result, returns an error, or returns ErrDeferred and
// later calls Resolve or Reject on cb.
type Executor func(ctx context.Context, args json.RawMessage, cb *Completion) (interface{}, error)

// Queue tracks in-flight tool jobs.
type Queue interface {
	// Add starts job. reply is called exactly once with the tool result, unless the job is abandoned.
	// It fails with errors.DuplicateRequestError when the same request id of the same session is still running.
	Add(ctx context.Context, job entity.ToolJob, exec Executor, reply jsonrpc2.Replier) error
	// Abandon cancels every job of a closed session. Their late results are dropped.
	Abandon(ctx context.Context, sessionID uuid.UUID) int
	// InFlight returns the number of running jobs.
	InFlight() int
}

// Params are inbound parameters to initialize a new queue.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cache     toolcache.Cache
	Client    mcpclient.Gateway
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type runningJob struct {
	job    entity.ToolJob
	reply  jsonrpc2.Replier
	cb     *Completion
	cancel context.CancelFunc
}

type queue struct {
	cache  toolcache.Cache
	client mcpclient.Gateway
	logger *zap.SugaredLogger
	stats  tally.Scope

	mu   sync.Mutex
	jobs map[string]*runningJob
	wg   sync.WaitGroup
}

// New creates a tool job queue. Running jobs are cancelled when the application stops.
func New(p Params) Queue {
	q := &queue{
		cache:  p.Cache,
		client: p.Client,
		logger: p.Logger.With("plugin", _nameKey),
		stats:  p.Stats.SubScope(_nameKey),
		jobs:   make(map[string]*runningJob),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			q.abandonAll()
			q.wg.Wait()
			return nil
		},
	})
	return q
}

func (q *queue) Add(ctx context.Context, job entity.ToolJob, exec Executor, reply jsonrpc2.Replier) error {
	key := job.Key()
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	jobCtx = context.WithValue(jobCtx, entity.SessionContextKey, job.SessionUUID)

	r := &runningJob{
		job:    job,
		reply:  reply,
		cb:     newCompletion(q.logger, job.Name),
		cancel: cancel,
	}

	q.mu.Lock()
	if _, ok := q.jobs[key]; ok {
		q.mu.Unlock()
		cancel()
		q.logger.Warnw("rejecting duplicate tool job", "tool", job.Name, "key", key)
		return errors.DuplicateRequestError
	}
	q.jobs[key] = r
	q.updateGauge()
	q.mu.Unlock()

	q.stats.Counter("started").Inc(1)

	if result, ok := q.cache.Get(job.Name, job.Arguments); ok {
		q.stats.Counter("cache_hits").Inc(1)
		q.finish(jobCtx, r, result)
		return nil
	}

	q.startProgress(jobCtx, job)

	q.wg.Add(1)
	go q.run(jobCtx, r, exec)
	return nil
}

func (q *queue) Abandon(ctx context.Context, sessionID uuid.UUID) int {
	q.mu.Lock()
	var abandoned []*runningJob
	for key, r := range q.jobs {
		if r.job.SessionUUID == sessionID {
			abandoned = append(abandoned, r)
			delete(q.jobs, key)
		}
	}
	q.updateGauge()
	q.mu.Unlock()

	for _, r := range abandoned {
		r.cancel()
		r.cb.seal()
	}
	if len(abandoned) > 0 {
		q.stats.Counter("abandoned").Inc(int64(len(abandoned)))
		q.logger.Infow("abandoned tool jobs", zap.Stringer("uuid", sessionID), "count", len(abandoned))
	}
	return len(abandoned)
}

func (q *queue) InFlight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

func (q *queue) run(ctx context.Context, r *runningJob, exec Executor) {
	defer q.wg.Done()
	defer r.cancel()

	result, err := q.execute(ctx, r, exec)
	if stderr.Is(err, ErrDeferred) {
		select {
		case o := <-r.cb.ch:
			result, err = o.result, o.err
		case <-ctx.Done():
			q.logger.Debugw("deferred tool job cancelled", "tool", r.job.Name, "key", r.job.Key())
			return
		}
	} else {
		r.cb.seal()
	}

	if err != nil {
		q.fail(ctx, r, err)
		return
	}

	toolResult, err := ToToolResult(result)
	if err != nil {
		q.fail(ctx, r, err)
		return
	}
	q.cache.Put(r.job.Name, r.job.Arguments, toolResult)
	q.finish(ctx, r, toolResult)
}

func (q *queue) execute(ctx context.Context, r *runningJob, exec Executor) (result interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			q.logger.Errorw("tool panicked", "tool", r.job.Name, "panic", p)
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return exec(ctx, r.job.Arguments, r.cb)
}

func (q *queue) fail(ctx context.Context, r *runningJob, err error) {
	q.logger.Warnw("tool failed", "tool", r.job.Name, zap.Error(err))
	q.finish(ctx, r, FailureResult(err))
}

// finish replies with result unless the job was abandoned in the meantime.
func (q *queue) finish(ctx context.Context, r *runningJob, result *entity.ToolResult) {
	key := r.job.Key()

	q.mu.Lock()
	current, ok := q.jobs[key]
	if ok && current == r {
		delete(q.jobs, key)
		q.updateGauge()
	}
	q.mu.Unlock()

	if !ok || current != r {
		q.logger.Infow("dropping result of abandoned tool job", "tool", r.job.Name, "key", key)
		return
	}

	if result.IsError {
		q.stats.Counter("failed").Inc(1)
	} else {
		q.stats.Counter("succeeded").Inc(1)
	}

	if err := r.reply(ctx, result, nil); err != nil {
		q.logger.Warnw("replying to tool call", "tool", r.job.Name, zap.Error(err))
	}
	q.completeProgress(ctx, r.job, result)
}

func (q *queue) startProgress(ctx context.Context, job entity.ToolJob) {
	if job.ProgressToken == nil {
		return
	}
	if err := q.client.StartProgress(ctx, *job.ProgressToken, fmt.Sprintf("Running %s", job.Name)); err != nil {
		q.logger.Debugw("starting tool progress", "tool", job.Name, zap.Error(err))
	}
}

func (q *queue) completeProgress(ctx context.Context, job entity.ToolJob, result *entity.ToolResult) {
	if job.ProgressToken == nil {
		return
	}
	message := "Completed"
	if result.IsError {
		message = "Failed"
	}
	if err := q.client.CompleteProgress(ctx, *job.ProgressToken, message); err != nil {
		q.logger.Debugw("completing tool progress", "tool", job.Name, zap.Error(err))
	}
}

func (q *queue) abandonAll() {
	q.mu.Lock()
	sessions := make(map[uuid.UUID]struct{})
	for _, r := range q.jobs {
		sessions[r.job.SessionUUID] = struct{}{}
	}
	q.mu.Unlock()

	for id := range sessions {
		q.Abandon(context.Background(), id)
	}
}

func (q *queue) updateGauge() {
	q.stats.Gauge("in_flight").Update(float64(len(q.jobs)))
}
