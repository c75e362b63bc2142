package entity

import (
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// ToolJob is one tools/call invocation.
type ToolJob struct {
	Name          string
	Arguments     json.RawMessage
	RequestID     jsonrpc2.ID
	SessionUUID   uuid.UUID
	ProgressToken *protocol.ProgressToken
}

// Key identifies the job among all in-flight jobs. Request ids are only unique per connection.
func (j ToolJob) Key() string {
	return fmt.Sprintf("%s/%q", j.SessionUUID, j.RequestID)
}
