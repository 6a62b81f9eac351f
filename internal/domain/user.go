package domain

import "time"

// XPPerLevel is the size of a level band: level = xp/500 + 1.
const XPPerLevel = 500

// User is the progress ledger record for a single learner.
// Level is always derived from XP via LevelForXP, never set independently.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	XP               int       `json:"xp"`
	Level            int       `json:"level"`
	ModulesCompleted int       `json:"modulesCompleted"`
	Badges           []string  `json:"badges"`
	CurrentModule    *int      `json:"currentModule"`
	CreatedAt        time.Time `json:"createdAt"`
}

// LevelForXP derives the level for a non-negative XP total in fixed 500-point bands.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// HasBadge reports whether the user already holds the given badge.
func (u User) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// XPAward reports the outcome of a single XP mutation. PreviousLevel and
// NewLevel let callers surface level-up transitions distinctly from plain gains.
type XPAward struct {
	User          User `json:"user"`
	Amount        int  `json:"amount"`
	PreviousLevel int  `json:"previousLevel"`
	NewLevel      int  `json:"newLevel"`
}

// LeveledUp reports whether this award crossed a level boundary.
func (a XPAward) LeveledUp() bool {
	return a.NewLevel > a.PreviousLevel
}

// The fixed badge set. Unlock conditions are evaluated by the progress service
// after each relevant mutation.
const (
	BadgeRookie    = "rookie"    // first module completed
	BadgeBuilder   = "builder"   // perfect rocket launch
	BadgeExplorer  = "explorer"  // all learning modules completed
	BadgeEngineer  = "engineer"  // level >= 5
	BadgeCommander = "commander" // xp >= 1000
)

// CommanderXPThreshold and EngineerLevelThreshold gate the two counter badges.
const (
	CommanderXPThreshold   = 1000
	EngineerLevelThreshold = 5
)

var badgeDescriptions = map[string]string{
	BadgeRookie:    "Completed your first learning module",
	BadgeBuilder:   "Successfully launched a rocket",
	BadgeExplorer:  "Completed all learning modules",
	BadgeEngineer:  "Reached level 5",
	BadgeCommander: "Earned 1000 XP",
}

// KnownBadge reports whether badgeID belongs to the fixed badge set.
func KnownBadge(badgeID string) bool {
	_, ok := badgeDescriptions[badgeID]
	return ok
}

// BadgeDescription returns the display description for a known badge.
func BadgeDescription(badgeID string) string {
	return badgeDescriptions[badgeID]
}
