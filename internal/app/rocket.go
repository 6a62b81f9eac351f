package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"aeroedu-service/internal/domain"
)

// RocketService drives the drag-and-drop builder: part placement, reset, and
// launch classification, with XP/badge effects routed through the ledger.
type RocketService struct {
	sessions SessionRepository
	designs  DesignRepository
	ledger   *ProgressService
	clock    func() time.Time
	newID    func() string
}

func NewRocketService(sessions SessionRepository, designs DesignRepository, ledger *ProgressService) *RocketService {
	return &RocketService{
		sessions: sessions,
		designs:  designs,
		ledger:   ledger,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
}

// State returns the live assembly snapshot for a user, creating an empty
// session on first access.
func (s *RocketService) State(ctx context.Context, userID string) (domain.AssemblyState, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return domain.AssemblyState{}, err
	}
	return s.sessions.GetOrCreate(userID).Snapshot(), nil
}

// PlacePart drops a part into a zone. A part placed in the wrong zone is
// rejected with ErrZoneMismatch, not silently corrected. Placement is
// idempotent per zone; only the first placement awards XP.
func (s *RocketService) PlacePart(ctx context.Context, userID string, zone domain.Zone, partID string) (domain.AssemblyState, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return domain.AssemblyState{}, err
	}
	part, err := domain.PartByID(partID)
	if err != nil {
		return domain.AssemblyState{}, err
	}
	if part.Zone != zone {
		return domain.AssemblyState{}, domain.ErrZoneMismatch
	}

	session := s.sessions.GetOrCreate(userID)
	state, changed := session.place(zone)
	if changed {
		reason := fmt.Sprintf("Added %s to rocket", part.Name)
		if _, err := s.ledger.AwardXP(ctx, userID, domain.PartPlacementXP, reason); err != nil {
			return domain.AssemblyState{}, err
		}
		if s.ledger.bus != nil {
			s.ledger.bus.Publish(userID, domain.Event{Type: domain.EventPartPlaced, Payload: domain.PartPlacedPayload{
				Zone: zone,
				Part: part.ID,
			}})
		}
	}
	return state, nil
}

// Rename sets the free-text name carried into the next persisted design.
func (s *RocketService) Rename(ctx context.Context, userID, name string) (domain.AssemblyState, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return domain.AssemblyState{}, err
	}
	return s.sessions.GetOrCreate(userID).rename(name), nil
}

// Reset returns the assembly to the all-empty baseline.
func (s *RocketService) Reset(ctx context.Context, userID string) (domain.AssemblyState, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return domain.AssemblyState{}, err
	}
	return s.sessions.GetOrCreate(userID).reset(), nil
}

// LaunchReport summarizes a completed launch attempt for the caller.
type LaunchReport struct {
	Outcome    domain.LaunchOutcome `json:"outcome"`
	Stability  int                  `json:"stability"`
	Efficiency int                  `json:"efficiency"`
	XPAwarded  int                  `json:"xpAwarded"`
	User       domain.User          `json:"user"`
	Design     *domain.RocketDesign `json:"design,omitempty"`
}

// TestLaunch classifies a launch attempt. All five zones must be filled;
// otherwise it fails with ErrRocketIncomplete and changes nothing. Every
// classified outcome awards XP, a perfect launch unlocks the builder badge,
// and successful launches persist an immutable design snapshot.
func (s *RocketService) TestLaunch(ctx context.Context, userID string) (LaunchReport, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return LaunchReport{}, err
	}
	session := s.sessions.GetOrCreate(userID)
	state := session.Snapshot()
	if !state.Complete {
		return LaunchReport{}, domain.ErrRocketIncomplete
	}

	outcome := domain.ClassifyLaunch(state.Stability, state.Efficiency)
	award, err := s.ledger.AwardXP(ctx, userID, outcome.XPReward, fmt.Sprintf("Rocket launch test: %s", outcome.Message))
	if err != nil {
		return LaunchReport{}, err
	}
	user := award.User

	if outcome.Tier == domain.PerfectLaunch {
		user, err = s.ledger.AddBadge(ctx, userID, domain.BadgeBuilder)
		if err != nil {
			return LaunchReport{}, err
		}
	}

	report := LaunchReport{
		Outcome:    outcome,
		Stability:  state.Stability,
		Efficiency: state.Efficiency,
		XPAwarded:  outcome.XPReward,
		User:       user,
	}

	if outcome.Success {
		design := domain.RocketDesign{
			ID:            s.newID(),
			UserID:        userID,
			Name:          state.Name,
			Parts:         state.Parts,
			Stability:     state.Stability,
			Efficiency:    state.Efficiency,
			LaunchSuccess: true,
			CreatedAt:     s.clock(),
		}
		if err := s.designs.Put(design); err != nil {
			return LaunchReport{}, err
		}
		description := fmt.Sprintf("Built rocket %q with %d%% stability", design.Name, design.Stability)
		if _, err := s.ledger.LogActivity(ctx, userID, domain.ActivityRocketBuilt, description, 150); err != nil {
			return LaunchReport{}, err
		}
		report.Design = &design
	}

	if s.ledger.bus != nil {
		s.ledger.bus.Publish(userID, domain.Event{Type: domain.EventLaunchOutcome, Payload: domain.LaunchOutcomePayload{
			Tier:       outcome.Tier,
			Stability:  state.Stability,
			Efficiency: state.Efficiency,
		}})
	}
	return report, nil
}

// Designs lists a user's persisted rocket designs.
func (s *RocketService) Designs(ctx context.Context, userID string) ([]domain.RocketDesign, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.designs.ListForUser(userID)
}

// Design fetches one persisted design by id.
func (s *RocketService) Design(_ context.Context, id string) (domain.RocketDesign, error) {
	return s.designs.Get(id)
}

// AssemblySession is the live, mutable builder state for one user. Scores are
// recomputed from the placement set on every read; they are never stored.
type AssemblySession struct {
	userID string

	mu    sync.RWMutex
	name  string
	parts domain.RocketParts
}

// NewAssemblySession is exported for infrastructure layers that seed sessions.
func NewAssemblySession(userID string) *AssemblySession {
	return &AssemblySession{userID: userID, name: "My Rocket"}
}

// Snapshot derives the current assembly state.
func (s *AssemblySession) Snapshot() domain.AssemblyState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *AssemblySession) snapshotLocked() domain.AssemblyState {
	return domain.AssemblyState{
		Name:       s.name,
		Parts:      s.parts,
		Stability:  s.parts.Stability(),
		Efficiency: s.parts.Efficiency(),
		Complete:   s.parts.Complete(),
	}
}

// place fills a zone, reporting whether the state changed.
func (s *AssemblySession) place(zone domain.Zone) (domain.AssemblyState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := !s.parts.Placed(zone)
	s.parts = s.parts.WithPlaced(zone)
	return s.snapshotLocked(), changed
}

func (s *AssemblySession) rename(name string) domain.AssemblyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.name = name
	}
	return s.snapshotLocked()
}

func (s *AssemblySession) reset() domain.AssemblyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts = domain.RocketParts{}
	return s.snapshotLocked()
}
