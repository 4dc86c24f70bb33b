package repository

import (
	"context"
	"errors"

	"uploadtest/internal/model"
)

// ErrNotFound is returned when no application matches the requested ID.
var ErrNotFound = errors.New("application not found")

// ApplicationRepository persists the test applications received by the stub server.
// Implementations contain no business logic.
type ApplicationRepository interface {
	// Create stores a new application and returns it as stored.
	Create(ctx context.Context, app *model.StoredApplication) (*model.StoredApplication, error)
	// FindByID returns ErrNotFound when the ID is unknown.
	FindByID(ctx context.Context, id string) (*model.StoredApplication, error)
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
