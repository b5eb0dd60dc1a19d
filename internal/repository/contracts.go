package repository

import (
	"context"

	"github.com/matchday-app/matchday/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StateRepository declares persistence for the game state aggregate.
// Load applies schema migration so callers only ever see the current
// shape; Save replaces the stored document wholesale.
type StateRepository interface {
	Load(ctx context.Context) (model.GameState, error)
	Save(ctx context.Context, state model.GameState) error
}
