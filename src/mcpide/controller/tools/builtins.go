package tools

import (
	"context"
	"encoding/json"
	"fmt"

	tooljobs "github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-jobs"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Names of the built-in tools.
const (
	ToolGetWorkspaceFolders = "getWorkspaceFolders"
	ToolGetDiagnostics      = "getDiagnostics"
	ToolOpenFile            = "openFile"
	ToolOpenDiff            = "openDiff"
	ToolCloseAllDiffTabs    = "closeAllDiffTabs"
)

const (
	_schemaEmpty = `{"type":"object","properties":{}}`

	_schemaGetDiagnostics = `{"type":"object","properties":{` +
		`"uri":{"type":"string","description":"Optional file URI. Diagnostics of every file are returned when omitted."}}}`

	_schemaOpenFile = `{"type":"object","properties":{` +
		`"filePath":{"type":"string","description":"Path of the file to open"},` +
		`"preview":{"type":"boolean","description":"Open in preview mode","default":false},` +
		`"makeFrontmost":{"type":"boolean","description":"Focus the editor","default":true},` +
		`"startLine":{"type":"integer","minimum":1,"description":"First line to select"},` +
		`"endLine":{"type":"integer","minimum":1,"description":"Last line to select"}},` +
		`"required":["filePath"]}`

	_schemaOpenDiff = `{"type":"object","properties":{` +
		`"old_file_path":{"type":"string","description":"Path of the file being changed"},` +
		`"new_file_path":{"type":"string","description":"Path the proposed contents are saved to"},` +
		`"new_file_contents":{"type":"string","description":"Proposed contents"},` +
		`"tab_name":{"type":"string","description":"Name of the diff tab"}},` +
		`"required":["old_file_path","new_file_path","new_file_contents","tab_name"]}`
)

type workspaceFoldersResult struct {
	Success  bool                       `json:"success"`
	Folders  []protocol.WorkspaceFolder `json:"folders"`
	RootPath string                     `json:"rootPath"`
}

type diagnosticsArgs struct {
	URI string `json:"uri"`
}

func (c *controller) builtins() []Tool {
	return []Tool{
		{
			Definition: entity.ToolDefinition{
				Name:        ToolGetWorkspaceFolders,
				Description: "Get the workspace folders open in the editor",
				InputSchema: json.RawMessage(_schemaEmpty),
			},
			Execute: c.getWorkspaceFolders,
		},
		{
			Definition: entity.ToolDefinition{
				Name:        ToolGetDiagnostics,
				Description: "Get language diagnostics from the editor",
				InputSchema: json.RawMessage(_schemaGetDiagnostics),
			},
			Execute: c.getDiagnostics,
		},
		{
			Definition: entity.ToolDefinition{
				Name:        ToolOpenFile,
				Description: "Open a file in the editor and optionally select a range of lines",
				InputSchema: json.RawMessage(_schemaOpenFile),
			},
			Execute: c.openFile,
		},
		{
			Definition: entity.ToolDefinition{
				Name:        ToolOpenDiff,
				Description: "Show a proposed change and wait until the user accepts or rejects it",
				InputSchema: json.RawMessage(_schemaOpenDiff),
			},
			Execute: c.openDiff,
		},
		{
			Definition: entity.ToolDefinition{
				Name:        ToolCloseAllDiffTabs,
				Description: "Close every diff tab opened by this session",
				InputSchema: json.RawMessage(_schemaEmpty),
			},
			Execute: c.closeAllDiffTabs,
		},
	}
}

func (c *controller) getWorkspaceFolders(ctx context.Context, args json.RawMessage, cb *tooljobs.Completion) (interface{}, error) {
	folders := c.workspace.Folders()
	result := workspaceFoldersResult{Success: true, Folders: folders}
	if paths := c.workspace.Paths(); len(paths) > 0 {
		result.RootPath = paths[0]
	}
	return result, nil
}

func (c *controller) getDiagnostics(ctx context.Context, args json.RawMessage, cb *tooljobs.Completion) (interface{}, error) {
	var a diagnosticsArgs
	if err := mapper.ArgumentsToStruct(args, &a); err != nil {
		return nil, err
	}

	target := protocol.DocumentURI(a.URI)
	if a.URI != "" {
		parsed, err := uri.Parse(a.URI)
		if err != nil {
			return nil, fmt.Errorf("invalid uri %q: %w", a.URI, err)
		}
		target = protocol.DocumentURI(parsed)
	}

	return c.host.Diagnostics(ctx, target)
}

func (c *controller) openFile(ctx context.Context, args json.RawMessage, cb *tooljobs.Completion) (interface{}, error) {
	var req entity.OpenFileRequest
	if err := mapper.ArgumentsToStruct(args, &req); err != nil {
		return nil, err
	}
	req.FilePath = c.workspace.Resolve(req.FilePath)

	if err := c.host.OpenFile(ctx, &req); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Opened file: %s", req.FilePath), nil
}

func (c *controller) openDiff(ctx context.Context, args json.RawMessage, cb *tooljobs.Completion) (interface{}, error) {
	var req entity.OpenDiffRequest
	if err := mapper.ArgumentsToStruct(args, &req); err != nil {
		return nil, err
	}
	session, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	req.OldFilePath = c.workspace.Resolve(req.OldFilePath)
	req.NewFilePath = c.workspace.Resolve(req.NewFilePath)

	err = c.diffs.Open(ctx, session, &req, func(o entity.DiffOutcome) {
		cb.Resolve(o.ToolResult())
	})
	if err != nil {
		return nil, err
	}
	return nil, tooljobs.ErrDeferred
}

func (c *controller) closeAllDiffTabs(ctx context.Context, args json.RawMessage, cb *tooljobs.Completion) (interface{}, error) {
	session, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	n, err := c.diffs.CloseAll(ctx, session)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("CLOSED_%d_DIFF_TABS", n), nil
}
