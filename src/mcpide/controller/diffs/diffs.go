// Package diffs tracks the diff tabs proposed to the user and the tool calls waiting on their decision.
package diffs

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	editorhost "github.com/ideconnect/mcp-ide/src/mcpide/gateway/editor-host"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"github.com/sergi/go-diff/diffmatchpatch"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "diffs"

// OutcomeFunc receives the outcome of a diff exactly once.
type OutcomeFunc func(outcome entity.DiffOutcome)

// Controller owns the pending diff tabs of every session.
type Controller interface {
	// Open shows the proposed change to the user. done is called once the user decides or the tab is closed.
	Open(ctx context.Context, sessionID uuid.UUID, req *entity.OpenDiffRequest, done OutcomeFunc) error
	// Resolve applies the user's decision to the pending tab.
	Resolve(ctx context.Context, tabName string, decision entity.DiffDecision) error
	// CloseAll closes every pending tab of the session, rejecting their diffs, and returns how many were closed.
	CloseAll(ctx context.Context, sessionID uuid.UUID) (int, error)
	// Abandon forgets the pending tabs of a closed session without reporting an outcome.
	Abandon(ctx context.Context, sessionID uuid.UUID)
	// Pending returns the number of tabs awaiting a decision for the session.
	Pending(sessionID uuid.UUID) int
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Host   editorhost.Gateway
	FS     fs.FS
	Logger *zap.SugaredLogger
	Stats  tally.Scope
}

type pendingDiff struct {
	session  uuid.UUID
	proposal *entity.DiffProposal
	done     OutcomeFunc
}

type controller struct {
	host   editorhost.Gateway
	fs     fs.FS
	logger *zap.SugaredLogger
	stats  tally.Scope
	dmp    *diffmatchpatch.DiffMatchPatch

	mu   sync.Mutex
	tabs map[string]*pendingDiff
}

// New creates a new diffs controller.
func New(p Params) Controller {
	return &controller{
		host:   p.Host,
		fs:     p.FS,
		logger: p.Logger.With("plugin", _nameKey),
		stats:  p.Stats.SubScope(_nameKey),
		dmp:    diffmatchpatch.New(),
		tabs:   make(map[string]*pendingDiff),
	}
}

func (c *controller) Open(ctx context.Context, sessionID uuid.UUID, req *entity.OpenDiffRequest, done OutcomeFunc) error {
	original, err := c.readOriginal(req.OldFilePath)
	if err != nil {
		return err
	}

	proposal := &entity.DiffProposal{
		TabName:         req.TabName,
		OldFilePath:     req.OldFilePath,
		NewFilePath:     req.NewFilePath,
		NewFileContents: req.NewFileContents,
		Patch:           c.dmp.PatchToText(c.dmp.PatchMake(original, req.NewFileContents)),
	}

	c.mu.Lock()
	if _, ok := c.tabs[req.TabName]; ok {
		c.mu.Unlock()
		return fmt.Errorf("diff tab %q is already open", req.TabName)
	}
	c.tabs[req.TabName] = &pendingDiff{session: sessionID, proposal: proposal, done: done}
	c.mu.Unlock()

	c.stats.Counter("opened").Inc(1)

	// The host may decide before ShowDiff returns, so the tab is registered first.
	err = c.host.ShowDiff(ctx, proposal, func(decision entity.DiffDecision) {
		if err := c.Resolve(context.Background(), proposal.TabName, decision); err != nil {
			c.logger.Warnw("dropping diff decision", "tab", proposal.TabName, zap.Error(err))
		}
	})
	if err != nil {
		c.take(req.TabName)
		return fmt.Errorf("showing diff %q: %w", req.TabName, err)
	}
	return nil
}

func (c *controller) Resolve(ctx context.Context, tabName string, decision entity.DiffDecision) error {
	p := c.take(tabName)
	if p == nil {
		return &errors.DiffTabNotFoundError{TabName: tabName}
	}

	outcome := entity.DiffOutcome{Result: entity.DiffResultRejected, TabName: tabName}
	if decision.Accepted {
		outcome.Result = entity.DiffResultSaved
		outcome.Contents = decision.FinalContents
		if outcome.Contents == "" {
			outcome.Contents = p.proposal.NewFileContents
		}
		c.stats.Counter("accepted").Inc(1)
	} else {
		c.stats.Counter("rejected").Inc(1)
	}

	if err := c.host.CloseDiff(ctx, tabName); err != nil {
		c.logger.Warnw("closing diff tab", "tab", tabName, zap.Error(err))
	}
	p.done(outcome)
	return nil
}

func (c *controller) CloseAll(ctx context.Context, sessionID uuid.UUID) (int, error) {
	closed := c.takeSession(sessionID)
	for tab, p := range closed {
		if err := c.host.CloseDiff(ctx, tab); err != nil {
			c.logger.Warnw("closing diff tab", "tab", tab, zap.Error(err))
		}
		p.done(entity.DiffOutcome{Result: entity.DiffResultRejected, TabName: tab})
	}
	c.stats.Counter("rejected").Inc(int64(len(closed)))
	return len(closed), nil
}

func (c *controller) Abandon(ctx context.Context, sessionID uuid.UUID) {
	abandoned := c.takeSession(sessionID)
	for tab := range abandoned {
		if err := c.host.CloseDiff(ctx, tab); err != nil {
			c.logger.Warnw("closing diff tab", "tab", tab, zap.Error(err))
		}
	}
	if len(abandoned) > 0 {
		c.logger.Infow("abandoned diff tabs", zap.Stringer("uuid", sessionID), "count", len(abandoned))
	}
}

func (c *controller) Pending(sessionID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, p := range c.tabs {
		if p.session == sessionID {
			n++
		}
	}
	return n
}

func (c *controller) take(tabName string) *pendingDiff {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.tabs[tabName]
	if !ok {
		return nil
	}
	delete(c.tabs, tabName)
	return p
}

func (c *controller) takeSession(sessionID uuid.UUID) map[string]*pendingDiff {
	c.mu.Lock()
	defer c.mu.Unlock()

	taken := make(map[string]*pendingDiff)
	for tab, p := range c.tabs {
		if p.session == sessionID {
			taken[tab] = p
			delete(c.tabs, tab)
		}
	}
	return taken
}

// readOriginal returns the current contents of path, or nothing when the diff creates a new file.
func (c *controller) readOriginal(path string) (string, error) {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	return string(data), nil
}
