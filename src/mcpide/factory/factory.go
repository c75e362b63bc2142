package factory

import (
	"encoding/json"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// JSONRPCNotification is a factory for a JSON-RPC notification containing the specified method and parameters.
func JSONRPCNotification(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewNotification(method, params)
	return req
}

// Session returns an initialized session for a random uuid.
func Session() *entity.Session {
	return &entity.Session{
		UUID:            UUID(),
		Initialized:     true,
		ProtocolVersion: "2025-06-18",
		ClientInfo:      entity.Implementation{Name: "test-client", Version: "0.0.1"},
		Subscriptions:   map[string]bool{},
		Data:            map[string]interface{}{},
	}
}

// RawJSON marshals v, panicking on failure. It is intended for test fixtures only.
func RawJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
