package domain

import "time"

// ActivityKind enumerates the append-only activity feed entry types.
type ActivityKind string

const (
	ActivityAccountCreated  ActivityKind = "account_created"
	ActivityXPEarned        ActivityKind = "xp_earned"
	ActivityBadgeEarned     ActivityKind = "badge_earned"
	ActivityModuleCompleted ActivityKind = "module_completed"
	ActivityRocketBuilt     ActivityKind = "rocket_built"
)

// ActivityEntry is one immutable record in a user's activity feed.
type ActivityEntry struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Kind        ActivityKind `json:"kind"`
	Description string       `json:"description"`
	XPEarned    int          `json:"xpEarned"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// DefaultActivityLimit caps feed queries when the caller does not specify one.
const DefaultActivityLimit = 10
