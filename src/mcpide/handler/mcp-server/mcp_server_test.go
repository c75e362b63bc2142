package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/mcp-server/mcpservermock"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/factory"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	mcperrors "github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/websocketfx/websocketfxmock"
	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newConfig(t *testing.T, yaml string) config.Provider {
	cfg, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return cfg
}

func newMockReplier() jsonrpc2.Replier {
	return func(ctx context.Context, result interface{}, err error) error {
		return err
	}
}

// capturingSender collects everything the dispatcher writes to the connection.
type capturingSender chan []byte

func (s capturingSender) Send(ctx context.Context, payload []byte) error {
	s <- payload
	return nil
}

func (s capturingSender) next(t *testing.T) map[string]interface{} {
	t.Helper()
	select {
	case payload := <-s:
		msg := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(payload, &msg))
		return msg
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no message sent")
		return nil
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		registerErr error
		wantErr     string
		wantOpts    int
	}{
		{
			name:     "defaults",
			yaml:     "{}",
			wantOpts: 2,
		},
		{
			name:     "configured dispatcher",
			yaml:     "jsonrpc:\n  requestTimeoutSeconds: 10\n  sweepSeconds: 1\n  maxPending: 5\n",
			wantOpts: 5,
		},
		{
			name:    "malformed config",
			yaml:    "jsonrpc: many\n",
			wantErr: `getting config field "jsonrpc"`,
		},
		{
			name:        "duplicate registration",
			yaml:        "{}",
			registerErr: errors.New("cannot register a duplicate connection manager"),
			wantErr:     "duplicate connection manager",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ws := websocketfxmock.NewMockWebSocketModule(ctrl)
			if tt.wantErr == "" || tt.registerErr != nil {
				ws.EXPECT().RegisterConnectionManager(gomock.Any()).Return(tt.registerErr)
			}

			h, err := New(Params{
				Controller: mcpservermock.NewMockController(ctrl),
				WebSocket:  ws,
				Config:     newConfig(t, tt.yaml),
				Clock:      clock.New(),
				Logger:     zap.NewNop().Sugar(),
				Stats:      tally.NoopScope,
			})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, h.(*jsonRPCConnectionManager).opts, tt.wantOpts)
		})
	}
}

func TestNewConnection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	c := mcpservermock.NewMockController(ctrl)
	mgr := jsonRPCConnectionManager{
		ctrl:   c,
		logger: zap.NewNop().Sugar(),
		stats:  tally.NewTestScope("testing", make(map[string]string, 0)),
	}
	sender := make(capturingSender, 1)

	t.Run("create success", func(t *testing.T) {
		id := factory.UUID()
		c.EXPECT().InitSession(gomock.Any(), id, gomock.AssignableToTypeOf(&jsonrpc.Dispatcher{})).Return(nil)

		router, err := mgr.NewConnection(ctx, id, sender)
		require.NoError(t, err)
		assert.IsType(t, &jsonRPCRouter{}, router)
		assert.Equal(t, id, router.UUID())
		router.Close()
	})

	t.Run("create failure", func(t *testing.T) {
		id := factory.UUID()
		c.EXPECT().InitSession(gomock.Any(), id, gomock.Any()).Return(errors.New("error"))

		_, err := mgr.NewConnection(ctx, id, sender)
		assert.ErrorContains(t, err, "error while creating new connection")
	})
}

func TestRemoveConnection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	id := factory.UUID()

	t.Run("session in context", func(t *testing.T) {
		c := mcpservermock.NewMockController(ctrl)
		c.EXPECT().EndSession(gomock.Any(), id).DoAndReturn(func(ctx context.Context, id uuid.UUID) error {
			resultID, err := mapper.ContextToSessionUUID(ctx)
			assert.NoError(t, err)
			assert.Equal(t, id, resultID)
			return nil
		})

		mgr := jsonRPCConnectionManager{ctrl: c, logger: zap.NewNop().Sugar()}
		mgr.RemoveConnection(ctx, id)
	})

	t.Run("errors are logged", func(t *testing.T) {
		c := mcpservermock.NewMockController(ctrl)
		c.EXPECT().EndSession(gomock.Any(), id).Return(errors.New("sample"))

		core, recorded := observer.New(zap.WarnLevel)
		mgr := jsonRPCConnectionManager{ctrl: c, logger: zap.New(core).Sugar()}
		mgr.RemoveConnection(ctx, id)
		assert.Equal(t, 1, recorded.FilterMessage("ending session").Len())
	})
}

func TestConnectionMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mcpservermock.NewMockController(ctrl)
	scope := tally.NewTestScope("testing", make(map[string]string, 0))
	mgr := jsonRPCConnectionManager{ctrl: c, logger: zap.NewNop().Sugar(), stats: scope}

	id := factory.UUID()
	sender := make(capturingSender, 10)
	c.EXPECT().InitSession(gomock.Any(), id, gomock.Any()).Return(nil)
	router, err := mgr.NewConnection(context.Background(), id, sender)
	require.NoError(t, err)
	defer router.Close()

	ctx := context.Background()

	t.Run("initialize", func(t *testing.T) {
		c.EXPECT().Initialize(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, params *entity.InitializeParams) (*entity.InitializeResult, error) {
			sessionID, err := mapper.ContextToSessionUUID(ctx)
			assert.NoError(t, err)
			assert.Equal(t, id, sessionID)
			assert.Equal(t, "2025-06-18", params.ProtocolVersion)
			return &entity.InitializeResult{ProtocolVersion: "2025-06-18", ServerInfo: entity.Implementation{Name: "mcpide", Version: "1"}}, nil
		})

		router.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","clientInfo":{"name":"claude","version":"1.0"}}}`))
		msg := sender.next(t)
		assert.Equal(t, float64(1), msg["id"])
		assert.Equal(t, "2025-06-18", msg["result"].(map[string]interface{})["protocolVersion"])
		assert.Equal(t, int64(1), scope.Snapshot().Counters()["testing.requests+method=initialize"].Value())
	})

	t.Run("initialize without client info", func(t *testing.T) {
		router.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`))
		msg := sender.next(t)
		assert.Equal(t, float64(jsonrpc2.InvalidParams), msg["error"].(map[string]interface{})["code"])
	})

	t.Run("ping", func(t *testing.T) {
		router.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":3,"method":"ping"}`))
		msg := sender.next(t)
		assert.Equal(t, map[string]interface{}{}, msg["result"])
	})

	t.Run("unknown method", func(t *testing.T) {
		router.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":4,"method":"prompts/list"}`))
		msg := sender.next(t)
		assert.Equal(t, float64(jsonrpc2.MethodNotFound), msg["error"].(map[string]interface{})["code"])
		assert.Equal(t, int64(1), scope.Snapshot().Counters()["testing.unknown_method+"].Value())
	})

	t.Run("unknown tool", func(t *testing.T) {
		c.EXPECT().CallTool(gomock.Any(), jsonrpc2.NewNumberID(5), gomock.Any(), gomock.Any()).Return(&mcperrors.ToolNotFoundError{Name: "nope"})

		router.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope"}}`))
		msg := sender.next(t)
		rpcErr := msg["error"].(map[string]interface{})
		assert.Equal(t, float64(jsonrpc2.MethodNotFound), rpcErr["code"])
		assert.Equal(t, "Tool not found: nope", rpcErr["message"])
	})

	t.Run("tool result sent after the call returns", func(t *testing.T) {
		var later jsonrpc2.Replier
		c.EXPECT().CallTool(gomock.Any(), jsonrpc2.NewNumberID(6), gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, id jsonrpc2.ID, params *entity.CallToolParams, reply jsonrpc2.Replier) error {
				later = reply
				return nil
			})

		router.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"openFile","arguments":{"filePath":"a.go"}}}`))
		assert.Empty(t, sender)

		require.NoError(t, later(ctx, entity.TextResult("done"), nil))
		msg := sender.next(t)
		assert.Equal(t, float64(6), msg["id"])
		assert.Contains(t, msg, "result")
	})

	t.Run("notification is never answered", func(t *testing.T) {
		c.EXPECT().Initialized(gomock.Any()).Return(errors.New("no session"))
		router.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
		assert.Empty(t, sender)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
