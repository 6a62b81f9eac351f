package app_test

import (
	"context"
	"testing"

	"aeroedu-service/internal/domain"
)

func placeAllParts(t *testing.T, env *testEnv, userID string) {
	t.Helper()
	ctx := context.Background()
	parts := map[string]domain.Zone{
		"nose-cone": domain.ZoneNose,
		"payload":   domain.ZonePayload,
		"fuel-tank": domain.ZoneFuel,
		"engine":    domain.ZoneEngine,
		"fins":      domain.ZoneFins,
	}
	for partID, zone := range parts {
		if _, err := env.rockets.PlacePart(ctx, userID, zone, partID); err != nil {
			t.Fatalf("place %s: %v", partID, err)
		}
	}
}

func TestPlacePartRejectsWrongZone(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	if _, err := env.rockets.PlacePart(ctx, user.ID, domain.ZoneNose, "engine"); err != domain.ErrZoneMismatch {
		t.Fatalf("expected ErrZoneMismatch, got %v", err)
	}
	got, _ := env.ledger.GetUser(ctx, user.ID)
	if got.XP != 0 {
		t.Fatalf("rejected placement must not award xp, got %d", got.XP)
	}
	state, err := env.rockets.State(ctx, user.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Parts != (domain.RocketParts{}) {
		t.Fatalf("rejected placement must not change parts, got %+v", state.Parts)
	}
}

func TestPlacePartRejectsUnknownPart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	if _, err := env.rockets.PlacePart(ctx, user.ID, domain.ZoneNose, "booster"); err != domain.ErrUnknownPart {
		t.Fatalf("expected ErrUnknownPart, got %v", err)
	}
}

func TestPlacePartAwardsXPOncePerZone(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	state, err := env.rockets.PlacePart(ctx, user.ID, domain.ZoneEngine, "engine")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !state.Parts.Engine {
		t.Fatalf("engine zone not filled")
	}
	if state.Stability != 20 || state.Efficiency != 30 {
		t.Fatalf("engine-only scores = %d/%d, want 20/30", state.Stability, state.Efficiency)
	}

	// Same drop again: idempotent, no second award.
	if _, err := env.rockets.PlacePart(ctx, user.ID, domain.ZoneEngine, "engine"); err != nil {
		t.Fatalf("repeat place: %v", err)
	}
	got, _ := env.ledger.GetUser(ctx, user.ID)
	if got.XP != domain.PartPlacementXP {
		t.Fatalf("expected %d xp after repeated placement, got %d", domain.PartPlacementXP, got.XP)
	}
}

func TestTestLaunchRequiresCompleteRocket(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	if _, err := env.rockets.PlacePart(ctx, user.ID, domain.ZoneFins, "fins"); err != nil {
		t.Fatalf("place: %v", err)
	}
	before, _ := env.ledger.GetUser(ctx, user.ID)

	if _, err := env.rockets.TestLaunch(ctx, user.ID); err != domain.ErrRocketIncomplete {
		t.Fatalf("expected ErrRocketIncomplete, got %v", err)
	}

	after, _ := env.ledger.GetUser(ctx, user.ID)
	if after.XP != before.XP {
		t.Fatalf("failed precondition must not award xp: %d -> %d", before.XP, after.XP)
	}
	designs, err := env.rockets.Designs(ctx, user.ID)
	if err != nil {
		t.Fatalf("designs: %v", err)
	}
	if len(designs) != 0 {
		t.Fatalf("failed precondition must not persist designs, got %d", len(designs))
	}
}

func TestTestLaunchPerfect(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	placeAllParts(t, env, user.ID)
	if _, err := env.rockets.Rename(ctx, user.ID, "Artemis Jr"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	report, err := env.rockets.TestLaunch(ctx, user.ID)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if report.Outcome.Tier != domain.PerfectLaunch {
		t.Fatalf("complete rocket should launch perfectly, got %s", report.Outcome.Tier)
	}
	if report.Stability != 100 || report.Efficiency != 100 {
		t.Fatalf("complete rocket scores = %d/%d, want 100/100", report.Stability, report.Efficiency)
	}
	if report.XPAwarded != 200 {
		t.Fatalf("perfect launch xp = %d, want 200", report.XPAwarded)
	}
	if !report.User.HasBadge(domain.BadgeBuilder) {
		t.Fatalf("perfect launch should unlock builder badge, got %v", report.User.Badges)
	}

	// 5 placements * 10 + 200 launch reward.
	if report.User.XP != 250 {
		t.Fatalf("expected 250 xp total, got %d", report.User.XP)
	}

	if report.Design == nil {
		t.Fatalf("successful launch should persist a design snapshot")
	}
	design, err := env.rockets.Design(ctx, report.Design.ID)
	if err != nil {
		t.Fatalf("get design: %v", err)
	}
	if design.Name != "Artemis Jr" || !design.LaunchSuccess || design.Stability != 100 {
		t.Fatalf("unexpected design snapshot: %+v", design)
	}

	entries, err := env.ledger.ListActivities(ctx, user.ID, 20)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	var sawRocketBuilt bool
	for _, entry := range entries {
		if entry.Kind == domain.ActivityRocketBuilt {
			sawRocketBuilt = true
		}
	}
	if !sawRocketBuilt {
		t.Fatalf("expected a rocket_built activity, got %+v", entries)
	}
}

func TestRepeatLaunchDoesNotDuplicateBuilderBadge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	placeAllParts(t, env, user.ID)
	if _, err := env.rockets.TestLaunch(ctx, user.ID); err != nil {
		t.Fatalf("first launch: %v", err)
	}
	report, err := env.rockets.TestLaunch(ctx, user.ID)
	if err != nil {
		t.Fatalf("second launch: %v", err)
	}
	count := 0
	for _, badge := range report.User.Badges {
		if badge == domain.BadgeBuilder {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("builder badge duplicated: %v", report.User.Badges)
	}
}

func TestResetReturnsToBaseline(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	placeAllParts(t, env, user.ID)
	state, err := env.rockets.Reset(ctx, user.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if state.Parts != (domain.RocketParts{}) || state.Stability != 0 || state.Efficiency != 0 || state.Complete {
		t.Fatalf("reset did not return to baseline: %+v", state)
	}

	// And a launch straight after reset must fail the precondition.
	if _, err := env.rockets.TestLaunch(ctx, user.ID); err != domain.ErrRocketIncomplete {
		t.Fatalf("expected ErrRocketIncomplete after reset, got %v", err)
	}
}

func TestRocketOperationsRequireKnownUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	if _, err := env.rockets.PlacePart(ctx, "nobody", domain.ZoneNose, "nose-cone"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := env.rockets.TestLaunch(ctx, "nobody"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
