package domain

// EventType tags the caller-facing events the core emits for the UI layer.
type EventType string

const (
	EventXPGained      EventType = "xp_gained"
	EventLevelUp       EventType = "level_up"
	EventBadgeUnlocked EventType = "badge_unlocked"
	EventPartPlaced    EventType = "part_placed"
	EventLaunchOutcome EventType = "launch_outcome"
)

// Event carries one caller-facing notification with a type-specific payload.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

type XPGainedPayload struct {
	Amount   int `json:"amount"`
	NewTotal int `json:"newTotal"`
}

type LevelUpPayload struct {
	PreviousLevel int `json:"previousLevel"`
	NewLevel      int `json:"newLevel"`
}

type BadgeUnlockedPayload struct {
	BadgeID     string `json:"badgeId"`
	Description string `json:"description"`
}

type PartPlacedPayload struct {
	Zone Zone   `json:"zone"`
	Part string `json:"part"`
}

type LaunchOutcomePayload struct {
	Tier       LaunchTier `json:"tier"`
	Stability  int        `json:"stability"`
	Efficiency int        `json:"efficiency"`
}
