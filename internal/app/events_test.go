package app_test

import (
	"context"
	"testing"

	"aeroedu-service/internal/app"
	"aeroedu-service/internal/domain"
)

func TestEventBusDeliversPerUser(t *testing.T) {
	bus := app.NewEventBus()

	alice, cancelAlice := bus.Subscribe("alice")
	defer cancelAlice()
	bob, cancelBob := bus.Subscribe("bob")
	defer cancelBob()

	bus.Publish("alice", domain.Event{Type: domain.EventPartPlaced})

	event := <-alice
	if event.Type != domain.EventPartPlaced {
		t.Fatalf("expected part_placed, got %s", event.Type)
	}
	select {
	case event := <-bob:
		t.Fatalf("bob should not receive alice's event, got %s", event.Type)
	default:
	}
}

func TestEventBusCancelClosesChannel(t *testing.T) {
	bus := app.NewEventBus()
	ch, cancel := bus.Subscribe("alice")
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}
	// A second cancel is a no-op.
	cancel()
}

func TestLedgerPublishesGainAndLevelUp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	user := mustCreateUser(t, env)

	events, cancel := env.bus.Subscribe(user.ID)
	defer cancel()

	if _, err := env.ledger.AwardXP(ctx, user.ID, 500, "big win"); err != nil {
		t.Fatalf("award: %v", err)
	}

	gained := <-events
	if gained.Type != domain.EventXPGained {
		t.Fatalf("expected xp_gained first, got %s", gained.Type)
	}
	payload, ok := gained.Payload.(domain.XPGainedPayload)
	if !ok || payload.Amount != 500 || payload.NewTotal != 500 {
		t.Fatalf("unexpected xp_gained payload: %+v", gained.Payload)
	}

	levelUp := <-events
	if levelUp.Type != domain.EventLevelUp {
		t.Fatalf("expected level_up second, got %s", levelUp.Type)
	}
	lvl, ok := levelUp.Payload.(domain.LevelUpPayload)
	if !ok || lvl.PreviousLevel != 1 || lvl.NewLevel != 2 {
		t.Fatalf("unexpected level_up payload: %+v", levelUp.Payload)
	}
}
