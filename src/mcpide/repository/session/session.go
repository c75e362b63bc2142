package session

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"github.com/ideconnect/mcp-ide/src/mcpide/model"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Repository is an entity-scoped repository.
type Repository interface {
	Get(context.Context, uuid.UUID) (*entity.Session, error)
	// GetFromContext returns the session of the context's connection, creating it on first access.
	GetFromContext(ctx context.Context) (*entity.Session, error)
	// GetOrCreate returns the session for id, creating an empty one on first use.
	GetOrCreate(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Set(context.Context, *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	All(ctx context.Context) ([]*entity.Session, error)
	SessionCount(ctx context.Context) (int, error)
	// Sweep deletes sessions idle since before cutoff and returns their ids. Sessions listed in keep are never deleted.
	Sweep(ctx context.Context, cutoff time.Time, keep []uuid.UUID) ([]uuid.UUID, error)
}

// Params define values to be used by Repository.
type Params struct {
	fx.In

	Stats tally.Scope
	Clock clock.Clock
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]*model.Session
	stats    tally.Scope
	clock    clock.Clock
}

// New returns a repository to a key-value Session data store.
func New(p Params) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]*model.Session),
		stats:    p.Stats,
		clock:    p.Clock,
	}
}

// Get returns the Session associated with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return mapper.ModelToSession(f)
}

func (r *repository) GetFromContext(ctx context.Context) (*entity.Session, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	return r.GetOrCreate(ctx, id)
}

func (r *repository) GetOrCreate(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.memstore[id]; ok {
		return mapper.ModelToSession(f)
	}

	s := mapper.UUIDToSession(id, r.clock.Now())
	r.memstore[id] = mapper.SessionToModel(s)
	r.updateGauge()
	return s, nil
}

// Set sets the Session to its associated uuid and marks it active.
func (r *repository) Set(ctx context.Context, f *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f == nil {
		return errors.New("can't save nil session")
	}
	m := mapper.SessionToModel(f)
	m.LastActive = r.clock.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = m.LastActive
	}
	r.memstore[f.UUID] = m
	r.updateGauge()
	return nil
}

// Delete removes the Session associated with the given id.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memstore, id)
	r.updateGauge()
	return nil
}

// All returns every stored session.
func (r *repository) All(ctx context.Context) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make([]*entity.Session, 0, len(r.memstore))
	for _, s := range r.memstore {
		sess, err := mapper.ModelToSession(s)
		if err == nil {
			found = append(found, sess)
		}
	}
	return found, nil
}

// SessionCount returns the total count of active sessions.
func (r *repository) SessionCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.memstore), nil
}

func (r *repository) Sweep(ctx context.Context, cutoff time.Time, keep []uuid.UUID) ([]uuid.UUID, error) {
	live := make(map[uuid.UUID]struct{}, len(keep))
	for _, id := range keep {
		live[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []uuid.UUID
	for id, s := range r.memstore {
		if _, ok := live[id]; ok {
			continue
		}
		if s.Expired(cutoff) {
			delete(r.memstore, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		r.stats.Counter("sessions_expired").Inc(int64(len(removed)))
		r.updateGauge()
	}
	return removed, nil
}

func (r *repository) updateGauge() {
	r.stats.Gauge("active_sessions").Update(float64(len(r.memstore)))
}
