package toolcache

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/goleak"
)

type fakeClock struct {
	clock.Clock
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

const _testConfig = `
tools:
  cache:
    getWorkspaceFolders: 30
    getDiagnostics: 2
`

func newCache(t *testing.T, yaml string, c clock.Clock) (Cache, tally.TestScope) {
	cfg, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	scope := tally.NewTestScope("testing", make(map[string]string, 0))

	cache, err := New(Params{Config: cfg, Clock: c, Stats: scope})
	require.NoError(t, err)
	return cache, scope
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "empty", yaml: "{}"},
		{name: "valid", yaml: _testConfig},
		{name: "zero ttl", yaml: "tools:\n  cache:\n    getDiagnostics: 0\n", wantErr: "invalid ttl"},
		{name: "wrong type", yaml: "tools:\n  cache: [a, b]\n", wantErr: _configKeyCache},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewYAML(config.Source(strings.NewReader(tt.yaml)))
			require.NoError(t, err)

			_, err = New(Params{Config: cfg, Clock: clock.New(), Stats: tally.NoopScope})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestKey(t *testing.T) {
	a, ok := Key("getDiagnostics", json.RawMessage(`{"uri":"file:///a","b":[1,2]}`))
	require.True(t, ok)
	b, ok := Key("getDiagnostics", json.RawMessage(`{ "b": [1, 2], "uri": "file:///a" }`))
	require.True(t, ok)
	assert.Equal(t, a, b)

	other, _ := Key("getWorkspaceFolders", json.RawMessage(`{"uri":"file:///a","b":[1,2]}`))
	assert.NotEqual(t, a, other)

	empty, _ := Key("getDiagnostics", nil)
	null, _ := Key("getDiagnostics", json.RawMessage("null"))
	object, _ := Key("getDiagnostics", json.RawMessage("{}"))
	assert.Equal(t, empty, null)
	assert.Equal(t, empty, object)

	_, ok = Key("getDiagnostics", json.RawMessage(`{"uri":`))
	assert.False(t, ok)
}

func TestGetPut(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := &fakeClock{now: now}
	c, scope := newCache(t, _testConfig, fc)
	result := entity.TextResult("[]")
	args := json.RawMessage(`{"uri":"file:///a.go"}`)

	assert.True(t, c.Cacheable("getDiagnostics"))
	assert.False(t, c.Cacheable("openDiff"))

	_, ok := c.Get("getDiagnostics", args)
	assert.False(t, ok)

	c.Put("getDiagnostics", args, result)
	got, ok := c.Get("getDiagnostics", args)
	require.True(t, ok)
	assert.Same(t, result, got)

	fc.now = now.Add(2 * time.Second)
	_, ok = c.Get("getDiagnostics", args)
	assert.False(t, ok, "entry expires after its ttl")

	c.Put("openDiff", args, result)
	_, ok = c.Get("openDiff", args)
	assert.False(t, ok, "tools outside the allow list are never cached")

	c.Put("getDiagnostics", args, &entity.ToolResult{IsError: true})
	_, ok = c.Get("getDiagnostics", args)
	assert.False(t, ok, "failures are never cached")

	counters := scope.Snapshot().Counters()
	assert.Equal(t, int64(1), counters["testing.tool_cache.hits+"].Value())
	assert.Equal(t, int64(3), counters["testing.tool_cache.misses+"].Value())
}

func TestPurge(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := &fakeClock{now: now}
	c, _ := newCache(t, _testConfig, fc)

	c.Put("getDiagnostics", nil, entity.TextResult("short"))
	c.Put("getWorkspaceFolders", nil, entity.TextResult("long"))

	fc.now = now.Add(10 * time.Second)
	c.Purge()

	impl := c.(*cache)
	assert.Len(t, impl.entries, 1)
	_, ok := c.Get("getWorkspaceFolders", nil)
	assert.True(t, ok)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
