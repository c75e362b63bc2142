package tooljobs

import (
	"encoding/json"
	"fmt"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
)

// ToToolResult converts what an executor returned into a tools/call result.
// Strings are wrapped in a text item, ToolResults are kept and anything else is JSON encoded.
func ToToolResult(v interface{}) (*entity.ToolResult, error) {
	switch r := v.(type) {
	case nil:
		return &entity.ToolResult{Content: []entity.Content{}}, nil
	case *entity.ToolResult:
		if r == nil {
			return &entity.ToolResult{Content: []entity.Content{}}, nil
		}
		return r, nil
	case entity.ToolResult:
		return &r, nil
	case string:
		return entity.TextResult(r), nil
	case json.RawMessage:
		return entity.TextResult(string(r)), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding tool result: %w", err)
		}
		return entity.TextResult(string(b)), nil
	}
}

// FailureResult reports err as a failed tool result.
func FailureResult(err error) *entity.ToolResult {
	return &entity.ToolResult{
		Content: []entity.Content{{Type: entity.ContentTypeText, Text: FailurePrefix + err.Error()}},
		IsError: true,
	}
}
