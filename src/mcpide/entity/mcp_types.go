package entity

import (
	"encoding/json"

	"go.lsp.dev/protocol"
)

// Implementation names and versions an MCP client or server.
type Implementation struct {
	Name    string `json:"name" validate:"required"`
	Version string `json:"version" validate:"required"`
}

// InitializeParams are sent by the client to open an MCP session.
type InitializeParams struct {
	ProtocolVersion string          `json:"protocolVersion" validate:"required"`
	Capabilities    json.RawMessage `json:"capabilities,omitempty"`
	ClientInfo      *Implementation `json:"clientInfo" validate:"required"`
}

// ListChangedCapability advertises list change notifications for a subsystem.
type ListChangedCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ResourcesCapability advertises the resources subsystem.
type ResourcesCapability struct {
	ListChanged bool `json:"listChanged"`
	Subscribe   bool `json:"subscribe"`
}

// ServerCapabilities always carries both tools and resources, clients expect both keys.
type ServerCapabilities struct {
	Tools     ListChangedCapability `json:"tools"`
	Resources ResourcesCapability   `json:"resources"`
}

// InitializeResult is returned from initialize.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitempty"`
}

// PaginatedParams carry an optional opaque cursor.
type PaginatedParams struct {
	Cursor string `json:"cursor,omitempty"`
}

// ToolDefinition describes a tool in tools/list.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ListToolsResult is returned from tools/list.
type ListToolsResult struct {
	Tools      []ToolDefinition `json:"tools"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// RequestMeta is the _meta member of a request.
type RequestMeta struct {
	ProgressToken *protocol.ProgressToken `json:"progressToken,omitempty"`
}

// CallToolParams are the params of tools/call.
type CallToolParams struct {
	Name      string          `json:"name" validate:"required"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Meta      *RequestMeta    `json:"_meta,omitempty"`
}

// ContentTypeText is the only content type produced by tools.
const ContentTypeText = "text"

// Content is one item of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the result of tools/call. Tool failures are reported with IsError, never as JSON-RPC errors.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

// TextResult builds a successful single text tool result.
func TextResult(text string) *ToolResult {
	return &ToolResult{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// Resource describes a resource in resources/list.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ListResourcesResult is returned from resources/list.
type ListResourcesResult struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// ResourceParams name a single resource, used by resources/read, subscribe and unsubscribe.
type ResourceParams struct {
	URI string `json:"uri" validate:"required"`
}

// ResourceContents holds either Text or a base64 Blob.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

// ReadResourceResult is returned from resources/read.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// ResourceUpdatedParams are sent with notifications/resources/updated.
type ResourceUpdatedParams struct {
	URI string `json:"uri"`
}

// IDEConnectedParams are sent by the client with ide_connected. PID is optional but must be positive.
type IDEConnectedParams struct {
	PID *int `json:"pid,omitempty" validate:"omitempty,gt=0"`
}

// ProgressParams are sent with notifications/progress.
type ProgressParams struct {
	ProgressToken *protocol.ProgressToken `json:"progressToken"`
	Progress      float64                 `json:"progress"`
	Total         float64                 `json:"total"`
	Message       string                  `json:"message,omitempty"`
}
