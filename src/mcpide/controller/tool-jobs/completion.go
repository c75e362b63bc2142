package tooljobs

import (
	"sync"

	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"go.uber.org/zap"
)

type outcome struct {
	result interface{}
	err    error
}

// Completion finishes a deferred tool job. Only the first Resolve or Reject counts.
type Completion struct {
	once   sync.Once
	ch     chan outcome
	logger *zap.SugaredLogger
	tool   string
}

func newCompletion(logger *zap.SugaredLogger, tool string) *Completion {
	return &Completion{
		ch:     make(chan outcome, 1),
		logger: logger,
		tool:   tool,
	}
}

// Resolve completes the job with result. It reports whether the result was accepted.
func (c *Completion) Resolve(result interface{}) bool {
	return c.complete(outcome{result: result})
}

// Reject completes the job with a failure. It reports whether the failure was accepted.
func (c *Completion) Reject(err error) bool {
	if err == nil {
		err = errors.New("rejected")
	}
	return c.complete(outcome{err: err})
}

func (c *Completion) complete(o outcome) bool {
	accepted := false
	c.once.Do(func() {
		c.ch <- o
		accepted = true
	})
	if !accepted {
		c.logger.Warnw("dropping late tool completion", "tool", c.tool)
	}
	return accepted
}

// seal makes every later completion a no-op.
func (c *Completion) seal() {
	c.once.Do(func() {})
}
