// Package toolcache memoizes the results of idempotent tools for a short, per-tool time.
package toolcache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_nameKey        = "tool_cache"
	_configKeyCache = "tools.cache"

	_purgeThreshold = 1024
)

// Cache stores tool results keyed by tool name and arguments.
type Cache interface {
	// Cacheable reports whether results of the tool may be cached.
	Cacheable(name string) bool
	Get(name string, args json.RawMessage) (*entity.ToolResult, bool)
	Put(name string, args json.RawMessage, result *entity.ToolResult)
	// Purge drops every expired entry.
	Purge()
}

// Params are inbound parameters to initialize a new cache.
type Params struct {
	fx.In

	Config config.Provider
	Clock  clock.Clock
	Stats  tally.Scope
}

type entry struct {
	result  *entity.ToolResult
	expires time.Time
}

type cache struct {
	clock clock.Clock
	stats tally.Scope
	ttls  map[string]time.Duration

	mu      sync.Mutex
	entries map[uint64]entry
}

// New creates a cache for the tools listed under tools.cache, each with its TTL in seconds.
func New(p Params) (Cache, error) {
	var seconds map[string]int
	if err := p.Config.Get(_configKeyCache).Populate(&seconds); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyCache, err)
	}

	ttls := make(map[string]time.Duration, len(seconds))
	for name, s := range seconds {
		if s <= 0 {
			return nil, fmt.Errorf("invalid ttl %d for tool %q in %q", s, name, _configKeyCache)
		}
		ttls[name] = time.Duration(s) * time.Second
	}

	return &cache{
		clock:   p.Clock,
		stats:   p.Stats.SubScope(_nameKey),
		ttls:    ttls,
		entries: make(map[uint64]entry),
	}, nil
}

func (c *cache) Cacheable(name string) bool {
	_, ok := c.ttls[name]
	return ok
}

func (c *cache) Get(name string, args json.RawMessage) (*entity.ToolResult, bool) {
	if !c.Cacheable(name) {
		return nil, false
	}
	key, ok := Key(name, args)
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Counter("misses").Inc(1)
		return nil, false
	}
	if !c.clock.Now().Before(e.expires) {
		delete(c.entries, key)
		c.stats.Counter("misses").Inc(1)
		return nil, false
	}
	c.stats.Counter("hits").Inc(1)
	return e.result, true
}

func (c *cache) Put(name string, args json.RawMessage, result *entity.ToolResult) {
	ttl, ok := c.ttls[name]
	if !ok || result == nil || result.IsError {
		return
	}
	key, ok := Key(name, args)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= _purgeThreshold {
		c.purgeLocked()
	}
	c.entries[key] = entry{result: result, expires: c.clock.Now().Add(ttl)}
}

func (c *cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
}

func (c *cache) purgeLocked() {
	now := c.clock.Now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
}

// Key hashes the tool name with its canonical arguments. Objects are re-encoded with sorted keys,
// so argument order does not matter. It returns false when args is not valid JSON.
func Key(name string, args json.RawMessage) (uint64, bool) {
	canonical := []byte("{}")
	if trimmed := bytes.TrimSpace(args); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		var v interface{}
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return 0, false
		}
		b, err := json.Marshal(v)
		if err != nil {
			return 0, false
		}
		canonical = b
	}

	d := xxhash.New()
	d.WriteString(name)
	d.Write([]byte{0})
	d.Write(canonical)
	return d.Sum64(), true
}
