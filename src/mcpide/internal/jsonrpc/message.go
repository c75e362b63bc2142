package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"

	"go.lsp.dev/jsonrpc2"
)

const _version = "2.0"

var (
	_null        = []byte("null")
	_emptyObject = json.RawMessage("{}")
)

// envelope holds the raw members of an inbound message so that its shape can be checked
// before it is decoded into a typed jsonrpc2.Message.
type envelope struct {
	JSONRPC json.RawMessage `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  json.RawMessage `json:"method"`
	Params  json.RawMessage `json:"params"`
	Result  json.RawMessage `json:"result"`
	Error   json.RawMessage `json:"error"`
}

type messageKind int

const (
	kindInvalid messageKind = iota
	kindCall
	kindNotification
	kindResponse
	// kindDropped is a well formed message that must not be answered, such as an error response with a null id.
	kindDropped
)

// classify checks the envelope against JSON-RPC 2.0. When the message is invalid the returned id is
// the request id to echo back, or nil when none can be recovered.
func classify(payload []byte) (messageKind, *jsonrpc2.ID, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return kindInvalid, nil, jsonrpc2.NewError(jsonrpc2.ParseError, "Parse error: empty message")
	}
	if !json.Valid(trimmed) {
		return kindInvalid, nil, jsonrpc2.NewError(jsonrpc2.ParseError, "Parse error: invalid JSON")
	}
	if trimmed[0] == '[' {
		return kindInvalid, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "Invalid Request: batch messages are not supported")
	}
	if trimmed[0] != '{' {
		return kindInvalid, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "Invalid Request: message must be an object")
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return kindInvalid, nil, jsonrpc2.NewError(jsonrpc2.ParseError, "Parse error: "+err.Error())
	}

	id, idErr := decodeID(env.ID)
	if idErr != nil {
		return kindInvalid, nil, idErr
	}

	var version string
	if err := json.Unmarshal(env.JSONRPC, &version); err != nil || version != _version {
		return kindInvalid, id, invalidRequest("jsonrpc must be \"2.0\"")
	}

	hasResult := env.Result != nil
	hasError := env.Error != nil

	if env.Method != nil {
		var method string
		if err := json.Unmarshal(env.Method, &method); err != nil || method == "" {
			return kindInvalid, id, invalidRequest("method must be a non-empty string")
		}
		if hasResult || hasError {
			return kindInvalid, id, invalidRequest("requests must not carry result or error")
		}
		if env.ID == nil {
			return kindNotification, nil, nil
		}
		if id == nil {
			return kindInvalid, nil, invalidRequest("id must not be null")
		}
		return kindCall, id, nil
	}

	if hasError && id == nil {
		return kindDropped, nil, nil
	}
	if id == nil {
		return kindInvalid, nil, invalidRequest("missing method")
	}
	if hasResult == hasError {
		return kindInvalid, nil, invalidRequest("responses must carry exactly one of result or error")
	}
	return kindResponse, id, nil
}

// decodeID returns nil for an absent or null id. Ids other than strings and integers are invalid.
// decodeID maps a wire id onto jsonrpc2.ID, which holds either an int32 or a non-empty string.
// Integers outside int32 and the empty string cannot be echoed back faithfully, so they are rejected
// as invalid requests rather than answered under a different id.
func decodeID(raw json.RawMessage) (*jsonrpc2.ID, error) {
	if raw == nil || bytes.Equal(bytes.TrimSpace(raw), _null) {
		return nil, nil
	}

	var n int32
	if err := json.Unmarshal(raw, &n); err == nil {
		id := jsonrpc2.NewNumberID(n)
		return &id, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		id := jsonrpc2.NewStringID(s)
		return &id, nil
	}

	return nil, invalidRequest("id must be a non-empty string or a 32-bit integer")
}

func invalidRequest(reason string) *jsonrpc2.Error {
	return jsonrpc2.NewError(jsonrpc2.InvalidRequest, "Invalid Request: "+reason)
}

type wireError struct {
	Code    jsonrpc2.Code `json:"code"`
	Message string        `json:"message"`
}

type wireRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *jsonrpc2.ID    `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// wireResponse always carries an id member. It is null when the request id could not be read.
type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *jsonrpc2.ID    `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *wireError      `json:"error,omitempty"`
}

// encodeResponse serializes a reply. Empty results are written as an empty object.
func encodeResponse(id *jsonrpc2.ID, result interface{}, err error) ([]byte, error) {
	resp := wireResponse{JSONRPC: _version, ID: id}
	if err != nil {
		resp.Error = toWireError(err)
		return json.Marshal(resp)
	}

	raw, mErr := marshalResult(result)
	if mErr != nil {
		resp.Error = &wireError{Code: jsonrpc2.InternalError, Message: "Internal error: " + mErr.Error()}
		return json.Marshal(resp)
	}
	resp.Result = raw
	return json.Marshal(resp)
}

func marshalResult(result interface{}) (json.RawMessage, error) {
	if result == nil {
		return _emptyObject, nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	switch string(bytes.TrimSpace(raw)) {
	case "null", "[]", "":
		return _emptyObject, nil
	}
	return raw, nil
}

func encodeRequest(id *jsonrpc2.ID, method string, params interface{}) ([]byte, error) {
	req := wireRequest{JSONRPC: _version, ID: id, Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		req.Params = raw
	}
	return json.Marshal(req)
}

// toWireError keeps the code of a wrapped *jsonrpc2.Error and reports everything else as an internal error.
// The message is always the full text of err so that wrapping context reaches the peer.
func toWireError(err error) *wireError {
	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		return &wireError{Code: rpcErr.Code, Message: err.Error()}
	}
	return &wireError{Code: jsonrpc2.InternalError, Message: err.Error()}
}
