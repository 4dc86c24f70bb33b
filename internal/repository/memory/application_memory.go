package memory

import (
	"context"
	"maps"
	"sync"

	"uploadtest/internal/model"
	"uploadtest/internal/repository"
)

// ApplicationMemory keeps applications in process memory. Used when no database is configured.
type ApplicationMemory struct {
	mu   sync.RWMutex
	apps map[string]model.StoredApplication
}

func NewApplicationMemory() *ApplicationMemory {
	return &ApplicationMemory{apps: make(map[string]model.StoredApplication)}
}

var _ repository.ApplicationRepository = (*ApplicationMemory)(nil)

func (r *ApplicationMemory) Create(ctx context.Context, app *model.StoredApplication) (*model.StoredApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := *app
	stored.Fields = maps.Clone(app.Fields)

	r.mu.Lock()
	r.apps[app.ID] = stored
	r.mu.Unlock()

	out := stored
	out.Fields = maps.Clone(stored.Fields)
	return &out, nil
}

func (r *ApplicationMemory) FindByID(ctx context.Context, id string) (*model.StoredApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	app, ok := r.apps[id]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	app.Fields = maps.Clone(app.Fields)
	return &app, nil
}

func (r *ApplicationMemory) Ping(context.Context) error { return nil }
