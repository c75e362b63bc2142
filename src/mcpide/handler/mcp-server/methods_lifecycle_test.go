package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/ideconnect/mcp-ide/src/mcpide/controller/mcp-server/mcpservermock"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/stretchr/testify/assert"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/mock/gomock"
)

func TestInitialize(t *testing.T) {
	validParams := entity.InitializeParams{
		ProtocolVersion: "2025-06-18",
		ClientInfo:      &entity.Implementation{Name: "claude", Version: "1.0.0"},
	}

	tests := []struct {
		name             string
		params           interface{}
		expectCall       bool
		controllerResult *entity.InitializeResult
		controllerError  error
		wantErr          error
	}{
		{
			name:            "error from controller",
			params:          validParams,
			expectCall:      true,
			controllerError: errors.New("controller error"),
			wantErr:         errors.New("controller error"),
		},
		{
			name:             "no error from controller",
			params:           validParams,
			expectCall:       true,
			controllerResult: &entity.InitializeResult{},
		},
		{
			name:    "missing protocol version",
			params:  entity.InitializeParams{ClientInfo: validParams.ClientInfo},
			wantErr: jsonrpc2.ErrInvalidParams,
		},
		{
			name:    "missing client version",
			params:  entity.InitializeParams{ProtocolVersion: "2025-06-18", ClientInfo: &entity.Implementation{Name: "claude"}},
			wantErr: jsonrpc2.ErrInvalidParams,
		},
		{
			name:    "no params",
			params:  nil,
			wantErr: jsonrpc2.ErrInvalidParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			c := mcpservermock.NewMockController(ctrl)
			if tt.expectCall {
				c.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(tt.controllerResult, tt.controllerError)
			}

			r := jsonRPCRouter{mcpserver: c, stats: nopScope()}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), entity.MethodInitialize, tt.params)
			err := r.HandleReq(ctx, newMockReplier(), req)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			if errors.Is(tt.wantErr, jsonrpc2.ErrInvalidParams) {
				assert.ErrorIs(t, err, jsonrpc2.ErrInvalidParams)
			} else {
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestInitialized(t *testing.T) {
	tests := []struct {
		name           string
		initializedErr error
		wantErr        bool
	}{
		{
			name:           "error from controller",
			initializedErr: errors.New("initialized error"),
			wantErr:        true,
		},
		{
			name:           "no error from controller",
			initializedErr: nil,
			wantErr:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			c := mcpservermock.NewMockController(ctrl)
			c.EXPECT().Initialized(gomock.Any()).Return(tt.initializedErr)

			r := jsonRPCRouter{mcpserver: c, stats: nopScope()}
			req, _ := jsonrpc2.NewNotification(entity.MethodInitialized, nil)
			err := r.HandleReq(ctx, newMockReplier(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPing(t *testing.T) {
	r := jsonRPCRouter{stats: nopScope()}
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), entity.MethodPing, nil)

	var result interface{}
	err := r.HandleReq(context.Background(), func(ctx context.Context, res interface{}, err error) error {
		result = res
		return err
	}, req)
	assert.NoError(t, err)
	assert.Equal(t, struct{}{}, result)
}

func TestIDEConnected(t *testing.T) {
	pid := 1234

	tests := []struct {
		name       string
		params     interface{}
		expectCall bool
		wantErr    bool
	}{
		{
			name:       "with pid",
			params:     map[string]interface{}{"pid": pid},
			expectCall: true,
		},
		{
			name:       "without params",
			params:     nil,
			expectCall: true,
		},
		{
			name:    "negative pid",
			params:  map[string]interface{}{"pid": -1},
			wantErr: true,
		},
		{
			name:    "pid is not a number",
			params:  map[string]interface{}{"pid": "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mcpservermock.NewMockController(ctrl)
			if tt.expectCall {
				c.EXPECT().IDEConnected(gomock.Any(), gomock.Any()).Return(nil)
			}

			r := jsonRPCRouter{mcpserver: c, stats: nopScope()}
			req, _ := jsonrpc2.NewNotification(entity.MethodIDEConnected, tt.params)
			err := r.HandleReq(context.Background(), newMockReplier(), req)

			if tt.wantErr {
				assert.ErrorIs(t, err, jsonrpc2.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
