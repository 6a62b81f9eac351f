package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aeroedu-service/internal/app"
	"aeroedu-service/internal/domain"
	"aeroedu-service/internal/infra/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	bus := app.NewEventBus()
	content := memory.NewContentRepository(memory.NewStaticContentLoader(memory.DefaultCatalog()), time.Minute)
	ledger := app.NewProgressService(memory.NewUserStore(), memory.NewActivityStore(), content, bus)
	learning := app.NewLearningService(content, memory.NewProgressStore(), ledger)
	rockets := app.NewRocketService(memory.NewSessionStore(), memory.NewDesignStore(), ledger)

	mux := http.NewServeMux()
	NewAPI(ledger, learning, rockets).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func createTestUser(t *testing.T, server *httptest.Server) domain.User {
	t.Helper()
	var user domain.User
	status := doJSON(t, http.MethodPost, server.URL+"/api/users",
		map[string]string{"username": "cadet", "email": "cadet@example.com"}, &user)
	if status != http.StatusCreated {
		t.Fatalf("create user status = %d", status)
	}
	return user
}

func TestCreateAndGetUser(t *testing.T) {
	server := newTestServer(t)
	user := createTestUser(t, server)

	if user.ID == "" || user.Level != 1 || user.XP != 0 {
		t.Fatalf("unexpected new user: %+v", user)
	}

	var got domain.User
	status := doJSON(t, http.MethodGet, server.URL+"/api/user/"+user.ID, nil, &got)
	if status != http.StatusOK || got.Username != "cadet" {
		t.Fatalf("get user status=%d user=%+v", status, got)
	}

	status = doJSON(t, http.MethodGet, server.URL+"/api/user/nobody", nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown user status = %d, want 404", status)
	}
}

func TestCreateUserValidation(t *testing.T) {
	server := newTestServer(t)
	status := doJSON(t, http.MethodPost, server.URL+"/api/users", map[string]string{"username": "cadet"}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("missing email status = %d, want 400", status)
	}
}

func TestAwardXPEndpoint(t *testing.T) {
	server := newTestServer(t)
	user := createTestUser(t, server)

	var award domain.XPAward
	status := doJSON(t, http.MethodPost, server.URL+"/api/user/"+user.ID+"/xp",
		map[string]any{"xpToAdd": 520, "reason": "Simulation drill"}, &award)
	if status != http.StatusOK {
		t.Fatalf("award status = %d", status)
	}
	if award.User.XP != 520 || award.User.Level != 2 {
		t.Fatalf("unexpected award: %+v", award)
	}
	if award.PreviousLevel != 1 || award.NewLevel != 2 {
		t.Fatalf("expected level-up report, got %+v", award)
	}

	status = doJSON(t, http.MethodPost, server.URL+"/api/user/"+user.ID+"/xp",
		map[string]any{"xpToAdd": -5}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("negative xp status = %d, want 400", status)
	}
}

func TestActivityFeedEndpoint(t *testing.T) {
	server := newTestServer(t)
	user := createTestUser(t, server)

	for i := 0; i < 12; i++ {
		reason := fmt.Sprintf("Drill %d", i)
		if status := doJSON(t, http.MethodPost, server.URL+"/api/user/"+user.ID+"/xp",
			map[string]any{"xpToAdd": 10, "reason": reason}, nil); status != http.StatusOK {
			t.Fatalf("award %d status = %d", i, status)
		}
	}

	var entries []domain.ActivityEntry
	if status := doJSON(t, http.MethodGet, server.URL+"/api/user/"+user.ID+"/activities", nil, &entries); status != http.StatusOK {
		t.Fatalf("activities status = %d", status)
	}
	if len(entries) != domain.DefaultActivityLimit {
		t.Fatalf("default feed length = %d, want %d", len(entries), domain.DefaultActivityLimit)
	}
	if entries[0].Description != "Drill 11" {
		t.Fatalf("expected newest first, got %q", entries[0].Description)
	}

	if status := doJSON(t, http.MethodGet, server.URL+"/api/user/"+user.ID+"/activities?limit=3", nil, &entries); status != http.StatusOK {
		t.Fatalf("limited activities status = %d", status)
	}
	if len(entries) != 3 {
		t.Fatalf("limited feed length = %d, want 3", len(entries))
	}
}

func TestModuleCatalogEndpoints(t *testing.T) {
	server := newTestServer(t)

	var modules []domain.LearningModule
	if status := doJSON(t, http.MethodGet, server.URL+"/api/modules", nil, &modules); status != http.StatusOK {
		t.Fatalf("modules status = %d", status)
	}
	if len(modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(modules))
	}

	var module domain.LearningModule
	if status := doJSON(t, http.MethodGet, server.URL+"/api/modules/1", nil, &module); status != http.StatusOK {
		t.Fatalf("module status = %d", status)
	}
	if module.ID != 1 || len(module.Quiz) == 0 {
		t.Fatalf("unexpected module: %+v", module)
	}

	if status := doJSON(t, http.MethodGet, server.URL+"/api/modules/99", nil, nil); status != http.StatusNotFound {
		t.Fatalf("unknown module status = %d, want 404", status)
	}
}

func TestQuizFlowEndpoints(t *testing.T) {
	server := newTestServer(t)
	user := createTestUser(t, server)
	base := server.URL + "/api/user/" + user.ID + "/progress/1"

	var record domain.ModuleProgress
	if status := doJSON(t, http.MethodPost, base+"/start", nil, &record); status != http.StatusOK {
		t.Fatalf("start status = %d", status)
	}
	if record.ModuleID != 1 || record.Completed {
		t.Fatalf("unexpected start record: %+v", record)
	}

	var module domain.LearningModule
	doJSON(t, http.MethodGet, server.URL+"/api/modules/1", nil, &module)

	var feedback app.AnswerFeedback
	status := doJSON(t, http.MethodPost, base+"/answers",
		map[string]int{"question": 0, "option": module.Quiz[0].CorrectIndex}, &feedback)
	if status != http.StatusOK {
		t.Fatalf("answer status = %d", status)
	}
	if !feedback.Correct || feedback.XPAwarded != domain.CorrectAnswerXP {
		t.Fatalf("unexpected feedback: %+v", feedback)
	}

	var result map[string]int
	if status := doJSON(t, http.MethodPost, base+"/finalize", nil, &result); status != http.StatusOK {
		t.Fatalf("finalize status = %d", status)
	}
	want := domain.QuizScore(1, len(module.Quiz))
	if result["score"] != want {
		t.Fatalf("score = %d, want %d", result["score"], want)
	}
}

func TestCompleteModuleEndpoint(t *testing.T) {
	server := newTestServer(t)
	user := createTestUser(t, server)

	var result struct {
		Progress domain.ModuleProgress `json:"progress"`
		Award    domain.XPAward        `json:"award"`
	}
	status := doJSON(t, http.MethodPost, server.URL+"/api/user/"+user.ID+"/complete-module/1",
		map[string]int{"score": 90, "timeSpent": 420}, &result)
	if status != http.StatusOK {
		t.Fatalf("complete status = %d", status)
	}
	if !result.Progress.Completed || result.Progress.Score != 90 {
		t.Fatalf("unexpected progress: %+v", result.Progress)
	}
	if result.Award.Amount != 100 || result.Award.User.ModulesCompleted != 1 {
		t.Fatalf("unexpected award: %+v", result.Award)
	}
}

func TestRocketBuilderFlow(t *testing.T) {
	server := newTestServer(t)
	user := createTestUser(t, server)
	base := server.URL + "/api/user/" + user.ID + "/rocket"

	var state domain.AssemblyState
	if status := doJSON(t, http.MethodGet, base, nil, &state); status != http.StatusOK {
		t.Fatalf("state status = %d", status)
	}
	if state.Name != "My Rocket" || state.Stability != 0 {
		t.Fatalf("unexpected empty state: %+v", state)
	}

	// Launching before the rocket is complete conflicts.
	if status := doJSON(t, http.MethodPost, base+"/launch", nil, nil); status != http.StatusConflict {
		t.Fatalf("incomplete launch status = %d, want 409", status)
	}

	placements := map[domain.Zone]string{
		domain.ZoneNose:    "nose-cone",
		domain.ZonePayload: "payload",
		domain.ZoneFuel:    "fuel-tank",
		domain.ZoneEngine:  "engine",
		domain.ZoneFins:    "fins",
	}
	for zone, part := range placements {
		status := doJSON(t, http.MethodPost, base+"/parts",
			map[string]string{"zone": string(zone), "part": part}, &state)
		if status != http.StatusOK {
			t.Fatalf("place %s status = %d", part, status)
		}
	}
	if state.Stability != 100 || state.Efficiency != 100 {
		t.Fatalf("full rocket scores = %d/%d, want 100/100", state.Stability, state.Efficiency)
	}

	if status := doJSON(t, http.MethodPost, base+"/parts",
		map[string]string{"zone": "nose", "part": "engine"}, nil); status != http.StatusBadRequest {
		t.Fatalf("zone mismatch status = %d, want 400", status)
	}

	if status := doJSON(t, http.MethodPut, base+"/name",
		map[string]string{"name": "Artemis Jr"}, &state); status != http.StatusOK {
		t.Fatalf("rename status = %d", status)
	}
	if state.Name != "Artemis Jr" {
		t.Fatalf("rename not applied: %+v", state)
	}

	var report app.LaunchReport
	if status := doJSON(t, http.MethodPost, base+"/launch", nil, &report); status != http.StatusOK {
		t.Fatalf("launch status = %d", status)
	}
	if report.Outcome.Tier != domain.PerfectLaunch {
		t.Fatalf("tier = %s, want %s", report.Outcome.Tier, domain.PerfectLaunch)
	}

	var designs []domain.RocketDesign
	if status := doJSON(t, http.MethodGet, server.URL+"/api/user/"+user.ID+"/rockets", nil, &designs); status != http.StatusOK {
		t.Fatalf("designs status = %d", status)
	}
	if len(designs) != 1 || designs[0].Name != "Artemis Jr" {
		t.Fatalf("unexpected designs: %+v", designs)
	}

	var design domain.RocketDesign
	if status := doJSON(t, http.MethodGet, server.URL+"/api/rockets/"+designs[0].ID, nil, &design); status != http.StatusOK {
		t.Fatalf("design status = %d", status)
	}
	if design.ID != designs[0].ID {
		t.Fatalf("unexpected design: %+v", design)
	}
}
