// Package events delivers typed server lifecycle events to registered observers.
package events

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ObserverGroup is the fx value group that observers are collected from.
const ObserverGroup = `group:"observers"`

// Module provides the event Bus and the default logging observer.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(fx.Annotate(NewLogObserver, fx.ResultTags(ObserverGroup))),
)

// Observer receives every emitted event. Observe must not block.
type Observer interface {
	Observe(ctx context.Context, event entity.Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event entity.Event)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, event entity.Event) {
	f(ctx, event)
}

// Bus fans events out to observers.
type Bus interface {
	Emit(ctx context.Context, event entity.Event)
}

// Params define values to be used by Bus.
type Params struct {
	fx.In

	Observers []Observer `group:"observers"`
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type bus struct {
	logger    *zap.SugaredLogger
	stats     tally.Scope
	observers []Observer
}

// New creates a Bus delivering to the observers of the fx group.
func New(p Params) Bus {
	return &bus{
		logger:    p.Logger,
		stats:     p.Stats.SubScope("events"),
		observers: append([]Observer(nil), p.Observers...),
	}
}

// Emit delivers event to every observer in registration order. A panicking observer does not affect the others.
func (b *bus) Emit(ctx context.Context, event entity.Event) {
	b.stats.Tagged(map[string]string{"kind": event.Kind().String()}).Counter("emitted").Inc(1)

	for _, o := range b.observers {
		b.deliver(ctx, o, event)
	}
}

func (b *bus) deliver(ctx context.Context, o Observer, event entity.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorw("event observer panicked", "kind", event.Kind().String(), "panic", r)
		}
	}()
	o.Observe(ctx, event)
}
