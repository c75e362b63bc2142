// Package editorhost is the gateway to the editor that embeds the MCP server.
// The default host is headless: it keeps published diagnostics in memory and can accept proposed diffs on its own.
package editorhost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyAutoAccept = "editor.autoAcceptDiffs"

	_fileMode = os.FileMode(0o644)
)

// DecisionFunc is called once when the user accepts or rejects a proposed diff.
type DecisionFunc func(decision entity.DiffDecision)

// Gateway exposes the editor features used by the built-in tools.
type Gateway interface {
	// Diagnostics returns the diagnostics of uri, or of every document when uri is empty.
	Diagnostics(ctx context.Context, uri protocol.DocumentURI) ([]entity.FileDiagnostics, error)
	// PublishDiagnostics replaces the diagnostics known for uri.
	PublishDiagnostics(ctx context.Context, uri protocol.DocumentURI, diagnostics []protocol.Diagnostic) error
	OpenFile(ctx context.Context, req *entity.OpenFileRequest) error
	// ShowDiff presents proposal to the user. decide may be called before ShowDiff returns.
	ShowDiff(ctx context.Context, proposal *entity.DiffProposal, decide DecisionFunc) error
	CloseDiff(ctx context.Context, tabName string) error
}

// Params are the inbound parameters for the editor host gateway.
type Params struct {
	fx.In

	Config config.Provider
	FS     fs.FS
	Logger *zap.SugaredLogger
}

type headless struct {
	fs         fs.FS
	logger     *zap.SugaredLogger
	autoAccept bool

	mu          sync.Mutex
	diagnostics map[protocol.DocumentURI][]protocol.Diagnostic
	openTabs    map[string]struct{}
}

// New returns the headless editor host.
func New(p Params) (Gateway, error) {
	var autoAccept bool
	if err := p.Config.Get(_configKeyAutoAccept).Populate(&autoAccept); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyAutoAccept, err)
	}

	return &headless{
		fs:          p.FS,
		logger:      p.Logger,
		autoAccept:  autoAccept,
		diagnostics: make(map[protocol.DocumentURI][]protocol.Diagnostic),
		openTabs:    make(map[string]struct{}),
	}, nil
}

func (h *headless) Diagnostics(ctx context.Context, uri protocol.DocumentURI) ([]entity.FileDiagnostics, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if uri != "" {
		return []entity.FileDiagnostics{{URI: uri, Diagnostics: copyDiagnostics(h.diagnostics[uri])}}, nil
	}

	result := make([]entity.FileDiagnostics, 0, len(h.diagnostics))
	for u, d := range h.diagnostics {
		result = append(result, entity.FileDiagnostics{URI: u, Diagnostics: copyDiagnostics(d)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].URI < result[j].URI })
	return result, nil
}

func (h *headless) PublishDiagnostics(ctx context.Context, uri protocol.DocumentURI, diagnostics []protocol.Diagnostic) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(diagnostics) == 0 {
		delete(h.diagnostics, uri)
		return nil
	}
	h.diagnostics[uri] = copyDiagnostics(diagnostics)
	return nil
}

func (h *headless) OpenFile(ctx context.Context, req *entity.OpenFileRequest) error {
	exists, err := h.fs.FileExists(req.FilePath)
	if err != nil {
		return fmt.Errorf("checking %q: %w", req.FilePath, err)
	}
	if !exists {
		return fmt.Errorf("file not found: %s", req.FilePath)
	}

	h.logger.Infow("open file", "path", req.FilePath, "startLine", req.StartLine, "endLine", req.EndLine)
	return nil
}

func (h *headless) ShowDiff(ctx context.Context, proposal *entity.DiffProposal, decide DecisionFunc) error {
	h.mu.Lock()
	h.openTabs[proposal.TabName] = struct{}{}
	h.mu.Unlock()

	h.logger.Infow("showing diff", "tab", proposal.TabName, "path", proposal.NewFilePath, "autoAccept", h.autoAccept)
	if !h.autoAccept {
		return nil
	}

	if err := h.fs.MkdirAll(filepath.Dir(proposal.NewFilePath), 0o755); err != nil {
		return fmt.Errorf("creating parent of %q: %w", proposal.NewFilePath, err)
	}
	if err := h.fs.WriteFile(proposal.NewFilePath, []byte(proposal.NewFileContents), _fileMode); err != nil {
		return fmt.Errorf("saving %q: %w", proposal.NewFilePath, err)
	}

	h.closeTab(proposal.TabName)
	decide(entity.DiffDecision{Accepted: true, FinalContents: proposal.NewFileContents})
	return nil
}

func (h *headless) CloseDiff(ctx context.Context, tabName string) error {
	h.closeTab(tabName)
	return nil
}

func (h *headless) closeTab(tabName string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.openTabs, tabName)
}

func copyDiagnostics(in []protocol.Diagnostic) []protocol.Diagnostic {
	if in == nil {
		return []protocol.Diagnostic{}
	}
	return append([]protocol.Diagnostic(nil), in...)
}
