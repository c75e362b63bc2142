package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"go.lsp.dev/jsonrpc2"
)

var _validate = validator.New()

// RequestToInitializeParams maps the parameters from a jsonrpc2.Request into entity.InitializeParams.
func RequestToInitializeParams(req jsonrpc2.Request) (*entity.InitializeParams, error) {
	params := entity.InitializeParams{}
	if err := decodeRequired(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToPaginatedParams maps the parameters of a list request. Absent params mean the first page.
func RequestToPaginatedParams(req jsonrpc2.Request) (*entity.PaginatedParams, error) {
	params := entity.PaginatedParams{}
	if err := decodeOptional(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToCallToolParams maps the parameters from a jsonrpc2.Request into entity.CallToolParams.
func RequestToCallToolParams(req jsonrpc2.Request) (*entity.CallToolParams, error) {
	params := entity.CallToolParams{}
	if err := decodeRequired(req, &params); err != nil {
		return nil, err
	}
	if len(params.Arguments) > 0 && !isObjectOrNull(params.Arguments) {
		return nil, wrapErrInvalidParams(fmt.Errorf("arguments must be an object"))
	}
	return &params, nil
}

// RequestToResourceParams maps the parameters of resources/read, resources/subscribe and resources/unsubscribe.
func RequestToResourceParams(req jsonrpc2.Request) (*entity.ResourceParams, error) {
	params := entity.ResourceParams{}
	if err := decodeRequired(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToIDEConnectedParams maps the parameters of ide_connected.
func RequestToIDEConnectedParams(req jsonrpc2.Request) (*entity.IDEConnectedParams, error) {
	params := entity.IDEConnectedParams{}
	if err := decodeOptional(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ArgumentsToStruct decodes tool arguments into dst and validates its tags.
// Missing arguments decode as an empty object.
func ArgumentsToStruct(args json.RawMessage, dst interface{}) error {
	if isEmpty(args) {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := _validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func decodeRequired(req jsonrpc2.Request, dst interface{}) error {
	if isEmpty(req.Params()) {
		return wrapErrInvalidParams(fmt.Errorf("missing params for %q", req.Method()))
	}
	return decode(req.Params(), dst)
}

func decodeOptional(req jsonrpc2.Request, dst interface{}) error {
	if isEmpty(req.Params()) {
		return nil
	}
	return decode(req.Params(), dst)
}

func decode(raw []byte, dst interface{}) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return wrapErrInvalidParams(err)
	}
	if err := _validate.Struct(dst); err != nil {
		return wrapErrInvalidParams(err)
	}
	return nil
}

func isEmpty(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isObjectOrNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return bytes.HasPrefix(trimmed, []byte("{")) || bytes.Equal(trimmed, []byte("null"))
}

func wrapErrInvalidParams(err error) error {
	return fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err)
}
