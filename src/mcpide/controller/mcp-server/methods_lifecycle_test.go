package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/diffs/diffsmock"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-jobs/tooljobsmock"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/factory"
	"github.com/ideconnect/mcp-ide/src/mcpide/gateway/mcp-client/mcpclientmock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/events/eventsmock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc/jsonrpcmock"
	"github.com/ideconnect/mcp-ide/src/mcpide/repository/session"
	"github.com/ideconnect/mcp-ide/src/mcpide/repository/session/repositorymock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newSessionRepository() session.Repository {
	return session.New(session.Params{Stats: tally.NoopScope, Clock: newFakeClock()})
}

func newTestSession(t *testing.T, sessions session.Repository) (context.Context, uuid.UUID) {
	id := factory.UUID()
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
	_, err := sessions.GetOrCreate(ctx, id)
	require.NoError(t, err)
	return ctx, id
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		requested   string
		wantVersion string
	}{
		{name: "latest", requested: "2025-06-18", wantVersion: "2025-06-18"},
		{name: "older supported", requested: "2024-11-05", wantVersion: "2024-11-05"},
		{name: "middle supported", requested: "2025-03-26", wantVersion: "2025-03-26"},
		{name: "unknown negotiates to latest", requested: "1999-01-01", wantVersion: "2025-06-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := newSessionRepository()
			ctx, _ := newTestSession(t, sessions)
			scope := tally.NewTestScope("testing", make(map[string]string, 0))
			c := controller{
				sessions: sessions,
				logger:   zap.NewNop().Sugar(),
				stats:    scope,
				server:   serverSettings{Name: "mcpide", Version: "1.2.3", Instructions: "hello"},
			}

			result, err := c.Initialize(ctx, &entity.InitializeParams{
				ProtocolVersion: tt.requested,
				Capabilities:    json.RawMessage(`{"roots":{}}`),
				ClientInfo:      &entity.Implementation{Name: "claude", Version: "1.0.0"},
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantVersion, result.ProtocolVersion)
			assert.True(t, result.Capabilities.Tools.ListChanged)
			assert.True(t, result.Capabilities.Resources.ListChanged)
			assert.True(t, result.Capabilities.Resources.Subscribe)
			assert.Equal(t, entity.Implementation{Name: "mcpide", Version: "1.2.3"}, result.ServerInfo)
			assert.Equal(t, "hello", result.Instructions)

			s, err := sessions.GetFromContext(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, s.ProtocolVersion)
			assert.Equal(t, "claude", s.ClientInfo.Name)
			assert.False(t, s.Initialized)
			assert.JSONEq(t, `{"roots":{}}`, string(s.Data[entity.SessionDataKeyCapabilities].(json.RawMessage)))

			key := "testing.mcp_server.initialize+protocol_version=" + tt.wantVersion
			assert.Equal(t, int64(1), scope.Snapshot().Counters()[key].Value())
		})
	}

	t.Run("capabilities include both subsystems on the wire", func(t *testing.T) {
		sessions := newSessionRepository()
		ctx, _ := newTestSession(t, sessions)
		c := controller{sessions: sessions, logger: zap.NewNop().Sugar(), stats: tally.NoopScope, server: serverSettings{Name: "n", Version: "v"}}

		result, err := c.Initialize(ctx, &entity.InitializeParams{ProtocolVersion: "2025-06-18", ClientInfo: &entity.Implementation{Name: "a", Version: "b"}})
		require.NoError(t, err)
		raw, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"capabilities":{"tools":{"listChanged":true},"resources":{"listChanged":true,"subscribe":true}}`)
		assert.NotContains(t, string(raw), "instructions")
	})

	t.Run("no session", func(t *testing.T) {
		c := controller{sessions: newSessionRepository(), logger: zap.NewNop().Sugar(), stats: tally.NoopScope}
		_, err := c.Initialize(context.Background(), &entity.InitializeParams{ProtocolVersion: "2025-06-18"})
		assert.ErrorContains(t, err, "getting session from context")
	})
}

func TestInitialized(t *testing.T) {
	sessions := newSessionRepository()
	ctx, _ := newTestSession(t, sessions)
	c := controller{sessions: sessions, logger: zap.NewNop().Sugar()}

	require.NoError(t, c.Initialized(ctx))
	s, err := sessions.GetFromContext(ctx)
	require.NoError(t, err)
	assert.True(t, s.Initialized)

	assert.Error(t, c.Initialized(context.Background()))
}

func TestIDEConnected(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("with pid", func(t *testing.T) {
		sessions := newSessionRepository()
		ctx, id := newTestSession(t, sessions)
		bus := eventsmock.NewMockBus(ctrl)
		c := controller{sessions: sessions, events: bus, logger: zap.NewNop().Sugar()}

		pid := 4242
		bus.EXPECT().Emit(gomock.Any(), entity.IDEConnected{SessionUUID: id, PID: pid})
		require.NoError(t, c.IDEConnected(ctx, &entity.IDEConnectedParams{PID: &pid}))

		s, err := sessions.GetFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, pid, s.Data[entity.SessionDataKeyIDEPid])
	})

	t.Run("without pid", func(t *testing.T) {
		sessions := newSessionRepository()
		ctx, _ := newTestSession(t, sessions)
		bus := eventsmock.NewMockBus(ctrl)
		c := controller{sessions: sessions, events: bus, logger: zap.NewNop().Sugar()}

		bus.EXPECT().Emit(gomock.Any(), gomock.AssignableToTypeOf(entity.IDEConnected{}))
		require.NoError(t, c.IDEConnected(ctx, &entity.IDEConnectedParams{}))

		s, err := sessions.GetFromContext(ctx)
		require.NoError(t, err)
		assert.NotContains(t, s.Data, entity.SessionDataKeyIDEPid)
	})
}

func TestInitSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	id := factory.UUID()
	conn := jsonrpcmock.NewMockConn(ctrl)

	t.Run("success", func(t *testing.T) {
		sessions := newSessionRepository()
		client := mcpclientmock.NewMockGateway(ctrl)
		c := controller{sessions: sessions, client: client, logger: zap.NewNop().Sugar()}

		client.EXPECT().RegisterClient(gomock.Any(), id, conn).Return(nil)
		require.NoError(t, c.InitSession(ctx, id, conn))

		s, err := sessions.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, s.UUID)
		assert.False(t, s.Initialized)
	})

	t.Run("registration failure", func(t *testing.T) {
		sessions := newSessionRepository()
		client := mcpclientmock.NewMockGateway(ctrl)
		c := controller{sessions: sessions, client: client, logger: zap.NewNop().Sugar()}

		client.EXPECT().RegisterClient(gomock.Any(), id, conn).Return(errors.New("sample"))
		assert.Error(t, c.InitSession(ctx, id, conn))

		count, err := sessions.SessionCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestEndSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	id := factory.UUID()

	t.Run("cleans up everything", func(t *testing.T) {
		queue := tooljobsmock.NewMockQueue(ctrl)
		diffs := diffsmock.NewMockController(ctrl)
		client := mcpclientmock.NewMockGateway(ctrl)
		sessions := repositorymock.NewMockRepository(ctrl)

		core, recorded := observer.New(zap.InfoLevel)
		c := controller{queue: queue, diffs: diffs, client: client, sessions: sessions, logger: zap.New(core).Sugar()}

		gomock.InOrder(
			queue.EXPECT().Abandon(gomock.Any(), id).Return(2),
			diffs.EXPECT().Abandon(gomock.Any(), id),
			client.EXPECT().DeregisterClient(gomock.Any(), id).Return(nil),
			sessions.EXPECT().Delete(gomock.Any(), id).Return(nil),
			sessions.EXPECT().SessionCount(gomock.Any()).Return(3, nil),
		)
		require.NoError(t, c.EndSession(ctx, id))
		assert.Equal(t, 1, recorded.FilterMessage("abandoned tool calls").Len())
		ended := recorded.FilterMessage("session ended").All()
		require.Len(t, ended, 1)
		assert.Equal(t, int64(3), ended[0].ContextMap()["remaining"])
	})

	t.Run("combines errors", func(t *testing.T) {
		queue := tooljobsmock.NewMockQueue(ctrl)
		diffs := diffsmock.NewMockController(ctrl)
		client := mcpclientmock.NewMockGateway(ctrl)
		sessions := repositorymock.NewMockRepository(ctrl)
		c := controller{queue: queue, diffs: diffs, client: client, sessions: sessions, logger: zap.NewNop().Sugar()}

		queue.EXPECT().Abandon(gomock.Any(), id).Return(0)
		diffs.EXPECT().Abandon(gomock.Any(), id)
		client.EXPECT().DeregisterClient(gomock.Any(), id).Return(errors.New("deregister"))
		sessions.EXPECT().Delete(gomock.Any(), id).Return(errors.New("delete"))
		sessions.EXPECT().SessionCount(gomock.Any()).Return(0, nil)

		err := c.EndSession(ctx, id)
		assert.ErrorContains(t, err, "deregister")
		assert.ErrorContains(t, err, "delete")
	})
}

func TestNegotiateVersion(t *testing.T) {
	assert.Equal(t, "2025-06-18", negotiateVersion(""))
	assert.Equal(t, "2025-03-26", negotiateVersion("2025-03-26"))
}
