package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"aeroedu-service/internal/domain"
)

// ProgressService owns the per-user ledger: XP, level, badges, and the
// activity feed. Every mutation is serialized per user so the xp→level
// invariant holds at all times; cross-user operations are independent.
type ProgressService struct {
	users      UserRepository
	activities ActivityRepository
	content    ContentRepository
	bus        *EventBus
	clock      func() time.Time
	newID      func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressService(users UserRepository, activities ActivityRepository, content ContentRepository, bus *EventBus) *ProgressService {
	return &ProgressService{
		users:      users,
		activities: activities,
		content:    content,
		bus:        bus,
		clock:      time.Now,
		newID:      uuid.NewString,
		locks:      make(map[string]*sync.Mutex),
	}
}

// NewProgressServiceWithClock is test-only for deterministic timestamps.
func NewProgressServiceWithClock(users UserRepository, activities ActivityRepository, content ContentRepository, bus *EventBus, now func() time.Time) *ProgressService {
	s := NewProgressService(users, activities, content, bus)
	s.clock = now
	return s
}

// CreateUser seeds a fresh ledger record and logs the account_created entry.
func (s *ProgressService) CreateUser(ctx context.Context, username, email string) (domain.User, error) {
	user := domain.User{
		ID:        s.newID(),
		Username:  username,
		Email:     email,
		XP:        0,
		Level:     1,
		Badges:    []string{},
		CreatedAt: s.clock(),
	}
	if err := s.users.Put(user); err != nil {
		return domain.User{}, err
	}
	if err := s.logActivity(user.ID, domain.ActivityAccountCreated, "Started learning journey", 0); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// GetUser returns the ledger record for one user.
func (s *ProgressService) GetUser(_ context.Context, userID string) (domain.User, error) {
	return s.users.Get(userID)
}

// GetUserByUsername looks a user up by display name.
func (s *ProgressService) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	return s.users.GetByUsername(username)
}

// AwardXP adds a non-negative amount to the user's XP, recomputes the level,
// logs an xp_earned entry, and re-checks the threshold badges.
func (s *ProgressService) AwardXP(ctx context.Context, userID string, amount int, reason string) (domain.XPAward, error) {
	if amount < 0 {
		return domain.XPAward{}, domain.ErrInvalidXPAmount
	}
	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.Get(userID)
	if err != nil {
		return domain.XPAward{}, err
	}

	award := s.applyGainLocked(&user, amount)
	newBadges := s.thresholdBadgesLocked(&user)
	if err := s.users.Put(user); err != nil {
		return domain.XPAward{}, err
	}
	award.User = user

	if err := s.logActivity(userID, domain.ActivityXPEarned, reason, amount); err != nil {
		return domain.XPAward{}, err
	}
	if err := s.logBadges(userID, newBadges); err != nil {
		return domain.XPAward{}, err
	}
	s.publishGain(userID, award, newBadges)
	return award, nil
}

// AddBadge grants a badge with set semantics: re-adding a held badge is a
// no-op, not an error.
func (s *ProgressService) AddBadge(ctx context.Context, userID, badgeID string) (domain.User, error) {
	if !domain.KnownBadge(badgeID) {
		return domain.User{}, domain.ErrUnknownBadge
	}
	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.Get(userID)
	if err != nil {
		return domain.User{}, err
	}
	if user.HasBadge(badgeID) {
		return user, nil
	}
	user.Badges = append(user.Badges, badgeID)
	if err := s.users.Put(user); err != nil {
		return domain.User{}, err
	}
	if err := s.logBadges(userID, []string{badgeID}); err != nil {
		return domain.User{}, err
	}
	s.publishBadges(userID, []string{badgeID})
	return user, nil
}

// ListActivities returns the newest feed entries for a user, truncated to
// limit (default 10 when limit <= 0).
func (s *ProgressService) ListActivities(_ context.Context, userID string, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = domain.DefaultActivityLimit
	}
	return s.activities.ListForUser(userID, limit)
}

// LogActivity appends a custom feed entry for a user.
func (s *ProgressService) LogActivity(_ context.Context, userID string, kind domain.ActivityKind, description string, xpEarned int) (domain.ActivityEntry, error) {
	if _, err := s.users.Get(userID); err != nil {
		return domain.ActivityEntry{}, err
	}
	entry := domain.ActivityEntry{
		ID:          s.newID(),
		UserID:      userID,
		Kind:        kind,
		Description: description,
		XPEarned:    xpEarned,
		CreatedAt:   s.clock(),
	}
	if err := s.activities.Append(entry); err != nil {
		return domain.ActivityEntry{}, err
	}
	return entry, nil
}

// recordModuleCompletion applies the user-side effects of finishing a learning
// module as one indivisible step: XP gain, completion counter, current-module
// reset, activity entry, and badge checks (rookie/explorer plus thresholds).
func (s *ProgressService) recordModuleCompletion(ctx context.Context, userID string, module domain.LearningModule, score int, firstCompletion bool) (domain.XPAward, error) {
	totalModules, err := s.moduleCount(ctx)
	if err != nil {
		return domain.XPAward{}, err
	}

	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.Get(userID)
	if err != nil {
		return domain.XPAward{}, err
	}

	award := s.applyGainLocked(&user, module.XPReward)
	if firstCompletion {
		user.ModulesCompleted++
	}
	if user.CurrentModule != nil && *user.CurrentModule == module.ID {
		user.CurrentModule = nil
	}

	var newBadges []string
	if user.ModulesCompleted >= 1 && !user.HasBadge(domain.BadgeRookie) {
		user.Badges = append(user.Badges, domain.BadgeRookie)
		newBadges = append(newBadges, domain.BadgeRookie)
	}
	if totalModules > 0 && user.ModulesCompleted >= totalModules && !user.HasBadge(domain.BadgeExplorer) {
		user.Badges = append(user.Badges, domain.BadgeExplorer)
		newBadges = append(newBadges, domain.BadgeExplorer)
	}
	newBadges = append(newBadges, s.thresholdBadgesLocked(&user)...)

	if err := s.users.Put(user); err != nil {
		return domain.XPAward{}, err
	}
	award.User = user

	description := fmt.Sprintf("Completed %s with %d%% score", module.Title, score)
	if err := s.logActivity(userID, domain.ActivityModuleCompleted, description, module.XPReward); err != nil {
		return domain.XPAward{}, err
	}
	if err := s.logBadges(userID, newBadges); err != nil {
		return domain.XPAward{}, err
	}
	s.publishGain(userID, award, newBadges)
	return award, nil
}

// setCurrentModule marks the module a user is working through.
func (s *ProgressService) setCurrentModule(userID string, moduleID int) error {
	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.Get(userID)
	if err != nil {
		return err
	}
	user.CurrentModule = &moduleID
	return s.users.Put(user)
}

func (s *ProgressService) moduleCount(ctx context.Context) (int, error) {
	if s.content == nil {
		return 0, nil
	}
	modules, err := s.content.ListModules(ctx)
	if err != nil {
		return 0, err
	}
	return len(modules), nil
}

// applyGainLocked mutates XP and rederives the level. Caller holds the user lock.
func (s *ProgressService) applyGainLocked(user *domain.User, amount int) domain.XPAward {
	previous := user.Level
	user.XP += amount
	user.Level = domain.LevelForXP(user.XP)
	return domain.XPAward{Amount: amount, PreviousLevel: previous, NewLevel: user.Level}
}

// thresholdBadgesLocked grants the counter-gated badges the user now qualifies
// for. Caller holds the user lock.
func (s *ProgressService) thresholdBadgesLocked(user *domain.User) []string {
	var earned []string
	if user.Level >= domain.EngineerLevelThreshold && !user.HasBadge(domain.BadgeEngineer) {
		user.Badges = append(user.Badges, domain.BadgeEngineer)
		earned = append(earned, domain.BadgeEngineer)
	}
	if user.XP >= domain.CommanderXPThreshold && !user.HasBadge(domain.BadgeCommander) {
		user.Badges = append(user.Badges, domain.BadgeCommander)
		earned = append(earned, domain.BadgeCommander)
	}
	return earned
}

func (s *ProgressService) logActivity(userID string, kind domain.ActivityKind, description string, xpEarned int) error {
	return s.activities.Append(domain.ActivityEntry{
		ID:          s.newID(),
		UserID:      userID,
		Kind:        kind,
		Description: description,
		XPEarned:    xpEarned,
		CreatedAt:   s.clock(),
	})
}

func (s *ProgressService) logBadges(userID string, badgeIDs []string) error {
	for _, id := range badgeIDs {
		if err := s.logActivity(userID, domain.ActivityBadgeEarned, domain.BadgeDescription(id), 0); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProgressService) publishGain(userID string, award domain.XPAward, newBadges []string) {
	if s.bus == nil {
		return
	}
	if award.Amount > 0 {
		s.bus.Publish(userID, domain.Event{Type: domain.EventXPGained, Payload: domain.XPGainedPayload{
			Amount:   award.Amount,
			NewTotal: award.User.XP,
		}})
	}
	if award.LeveledUp() {
		s.bus.Publish(userID, domain.Event{Type: domain.EventLevelUp, Payload: domain.LevelUpPayload{
			PreviousLevel: award.PreviousLevel,
			NewLevel:      award.NewLevel,
		}})
	}
	s.publishBadges(userID, newBadges)
}

func (s *ProgressService) publishBadges(userID string, badgeIDs []string) {
	if s.bus == nil {
		return
	}
	for _, id := range badgeIDs {
		s.bus.Publish(userID, domain.Event{Type: domain.EventBadgeUnlocked, Payload: domain.BadgeUnlockedPayload{
			BadgeID:     id,
			Description: domain.BadgeDescription(id),
		}})
	}
}

// lockUser serializes mutations per user identifier.
func (s *ProgressService) lockUser(userID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
