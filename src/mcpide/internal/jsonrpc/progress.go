package jsonrpc

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"go.lsp.dev/protocol"
)

const _progressTotal = 100

// StartProgress reports that the work identified by token has begun.
func (d *Dispatcher) StartProgress(ctx context.Context, token protocol.ProgressToken, message string) error {
	return d.progress(ctx, token, 0, message)
}

// UpdateProgress reports progress between 0 and 100. Values outside that range are clamped.
func (d *Dispatcher) UpdateProgress(ctx context.Context, token protocol.ProgressToken, progress float64, message string) error {
	switch {
	case progress < 0:
		progress = 0
	case progress > _progressTotal:
		progress = _progressTotal
	}
	return d.progress(ctx, token, progress, message)
}

// CompleteProgress always reports 100.
func (d *Dispatcher) CompleteProgress(ctx context.Context, token protocol.ProgressToken, message string) error {
	return d.progress(ctx, token, _progressTotal, message)
}

func (d *Dispatcher) progress(ctx context.Context, token protocol.ProgressToken, progress float64, message string) error {
	return d.Notify(ctx, entity.MethodProgress, &entity.ProgressParams{
		ProgressToken: &token,
		Progress:      progress,
		Total:         _progressTotal,
		Message:       message,
	})
}
