package events

import (
	"context"
	"testing"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEmit(t *testing.T) {
	var got []string
	record := func(name string) Observer {
		return ObserverFunc(func(ctx context.Context, event entity.Event) {
			got = append(got, name+":"+event.Kind().String())
		})
	}

	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	b := New(Params{
		Observers: []Observer{record("a"), record("b"), record("c")},
		Logger:    zap.NewNop().Sugar(),
		Stats:     testScope,
	})

	b.Emit(context.Background(), entity.ServerStopped{Port: 1})

	assert.Equal(t, []string{"a:server_stopped", "b:server_stopped", "c:server_stopped"}, got)

	counters := testScope.Snapshot().Counters()
	counter, ok := counters["testing.events.emitted+kind=server_stopped"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counter.Value())
}

func TestEmitRecoversObserverPanic(t *testing.T) {
	delivered := false
	b := New(Params{
		Observers: []Observer{
			ObserverFunc(func(context.Context, entity.Event) { panic("observer bug") }),
			ObserverFunc(func(context.Context, entity.Event) { delivered = true }),
		},
		Logger: zap.NewNop().Sugar(),
		Stats:  tally.NoopScope,
	})

	assert.NotPanics(t, func() {
		b.Emit(context.Background(), entity.AuthenticationFailed{Peer: "127.0.0.1:5", Reason: "bad"})
	})
	assert.True(t, delivered)
}

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := NewLogObserver(zap.New(core).Sugar())
	ctx := context.Background()

	o.Observe(ctx, entity.ServerStarted{Port: 1234, Host: "127.0.0.1", AuthToken: "super-secret", LockFilePath: "/tmp/1234.lock"})
	o.Observe(ctx, entity.ClientConnected{ConnectionUUID: factory.UUID(), Peer: "127.0.0.1:9"})
	o.Observe(ctx, entity.ClientDisconnected{ConnectionUUID: factory.UUID(), Peer: "127.0.0.1:9", Reason: "peer closed"})
	o.Observe(ctx, entity.AuthenticationFailed{Peer: "127.0.0.1:9", Reason: "invalid authentication token"})
	o.Observe(ctx, entity.IDEConnected{SessionUUID: factory.UUID(), PID: 42})
	o.Observe(ctx, entity.ServerStopped{Port: 1234})

	entries := logs.AllUntimed()
	require.Len(t, entries, 6)
	assert.Equal(t, "server started", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)

	for _, e := range entries {
		for _, v := range e.ContextMap() {
			if str, ok := v.(string); ok {
				assert.NotContains(t, str, "super-secret")
			}
		}
	}
	assert.Equal(t, int64(1234), entries[0].ContextMap()["port"])
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
