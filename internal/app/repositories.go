package app

import (
	"context"

	"aeroedu-service/internal/domain"
)

// UserRepository abstracts how ledger records are stored (in-memory map per
// the reference design, swappable for a real database).
type UserRepository interface {
	Get(id string) (domain.User, error)
	GetByUsername(username string) (domain.User, error)
	Put(user domain.User) error
}

// ActivityRepository is the append-only activity feed store.
type ActivityRepository interface {
	Append(entry domain.ActivityEntry) error
	ListForUser(userID string, limit int) ([]domain.ActivityEntry, error)
}

// DesignRepository stores immutable rocket design snapshots.
type DesignRepository interface {
	Put(design domain.RocketDesign) error
	Get(id string) (domain.RocketDesign, error)
	ListForUser(userID string) ([]domain.RocketDesign, error)
}

// ProgressRepository stores per-user module progress records.
type ProgressRepository interface {
	Get(userID string, moduleID int) (domain.ModuleProgress, error)
	Put(progress domain.ModuleProgress) error
	ListForUser(userID string) ([]domain.ModuleProgress, error)
}

// ContentRepository supplies the read-only learning module catalog
// (from cache/backing store).
type ContentRepository interface {
	GetModule(ctx context.Context, moduleID int) (domain.LearningModule, error)
	ListModules(ctx context.Context) ([]domain.LearningModule, error)
}

// SessionRepository abstracts how live builder sessions are tracked
// (in-memory, Redis-marked, etc).
type SessionRepository interface {
	GetOrCreate(userID string) *AssemblySession
	Get(userID string) (*AssemblySession, bool)
}
