package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"aeroedu-service/internal/app"
	"aeroedu-service/internal/domain"
)

// API exposes the REST surface over the core services.
type API struct {
	progress *app.ProgressService
	learning *app.LearningService
	rockets  *app.RocketService
}

func NewAPI(progress *app.ProgressService, learning *app.LearningService, rockets *app.RocketService) *API {
	return &API{progress: progress, learning: learning, rockets: rockets}
}

// Register wires the API routes onto the mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", a.createUser)
	mux.HandleFunc("GET /api/user/{id}", a.getUser)
	mux.HandleFunc("POST /api/user/{id}/xp", a.awardXP)
	mux.HandleFunc("POST /api/user/{id}/badge", a.addBadge)
	mux.HandleFunc("GET /api/user/{id}/activities", a.listActivities)

	mux.HandleFunc("GET /api/modules", a.listModules)
	mux.HandleFunc("GET /api/modules/{id}", a.getModule)
	mux.HandleFunc("GET /api/user/{id}/progress", a.listProgress)
	mux.HandleFunc("GET /api/user/{id}/progress/{moduleId}", a.getProgress)
	mux.HandleFunc("POST /api/user/{id}/progress/{moduleId}/start", a.startModule)
	mux.HandleFunc("POST /api/user/{id}/progress/{moduleId}/answers", a.submitAnswer)
	mux.HandleFunc("POST /api/user/{id}/progress/{moduleId}/finalize", a.finalizeQuiz)
	mux.HandleFunc("POST /api/user/{id}/complete-module/{moduleId}", a.completeModule)

	mux.HandleFunc("GET /api/user/{id}/rocket", a.rocketState)
	mux.HandleFunc("POST /api/user/{id}/rocket/parts", a.placePart)
	mux.HandleFunc("PUT /api/user/{id}/rocket/name", a.renameRocket)
	mux.HandleFunc("POST /api/user/{id}/rocket/reset", a.resetRocket)
	mux.HandleFunc("POST /api/user/{id}/rocket/launch", a.testLaunch)
	mux.HandleFunc("GET /api/user/{id}/rockets", a.listDesigns)
	mux.HandleFunc("GET /api/rockets/{id}", a.getDesign)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Email == "" {
		writeMessage(w, http.StatusBadRequest, "username and email are required")
		return
	}
	user, err := a.progress.CreateUser(r.Context(), body.Username, body.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.progress.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) awardXP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		XPToAdd int    `json:"xpToAdd"`
		Reason  string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid xp payload")
		return
	}
	if body.Reason == "" {
		body.Reason = "Earned XP"
	}
	award, err := a.progress.AwardXP(r.Context(), r.PathValue("id"), body.XPToAdd, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, award)
}

func (a *API) addBadge(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Badge string `json:"badge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Badge == "" {
		writeMessage(w, http.StatusBadRequest, "badge is required")
		return
	}
	user, err := a.progress.AddBadge(r.Context(), r.PathValue("id"), body.Badge)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) listActivities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	entries, err := a.progress.ListActivities(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (a *API) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := a.learning.Modules(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, modules)
}

func (a *API) getModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathInt(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid module id")
		return
	}
	module, err := a.learning.Module(r.Context(), moduleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, module)
}

func (a *API) listProgress(w http.ResponseWriter, r *http.Request) {
	records, err := a.learning.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *API) getProgress(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathInt(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid module id")
		return
	}
	record, err := a.learning.ProgressFor(r.Context(), r.PathValue("id"), moduleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *API) startModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathInt(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid module id")
		return
	}
	record, err := a.learning.StartModule(r.Context(), r.PathValue("id"), moduleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *API) submitAnswer(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathInt(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid module id")
		return
	}
	var body struct {
		Question int `json:"question"`
		Option   int `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid answer payload")
		return
	}
	feedback, err := a.learning.SubmitAnswer(r.Context(), r.PathValue("id"), moduleID, body.Question, body.Option)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (a *API) finalizeQuiz(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathInt(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid module id")
		return
	}
	score, err := a.learning.FinalizeQuiz(r.Context(), r.PathValue("id"), moduleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"score": score})
}

func (a *API) completeModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathInt(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid module id")
		return
	}
	var body struct {
		Score     int `json:"score"`
		TimeSpent int `json:"timeSpent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid completion payload")
		return
	}
	record, award, err := a.learning.CompleteModule(r.Context(), r.PathValue("id"), moduleID, body.Score, body.TimeSpent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": record, "award": award})
}

func (a *API) rocketState(w http.ResponseWriter, r *http.Request) {
	state, err := a.rockets.State(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *API) placePart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Zone string `json:"zone"`
		Part string `json:"part"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Zone == "" || body.Part == "" {
		writeMessage(w, http.StatusBadRequest, "zone and part are required")
		return
	}
	state, err := a.rockets.PlacePart(r.Context(), r.PathValue("id"), domain.Zone(body.Zone), body.Part)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *API) renameRocket(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	state, err := a.rockets.Rename(r.Context(), r.PathValue("id"), body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *API) resetRocket(w http.ResponseWriter, r *http.Request) {
	state, err := a.rockets.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *API) testLaunch(w http.ResponseWriter, r *http.Request) {
	report, err := a.rockets.TestLaunch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *API) listDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := a.rockets.Designs(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

func (a *API) getDesign(w http.ResponseWriter, r *http.Request) {
	design, err := a.rockets.Design(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.PathValue(name))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps core error kinds to stable HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrDesignNotFound),
		errors.Is(err, domain.ErrProgressNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrZoneMismatch),
		errors.Is(err, domain.ErrUnknownPart),
		errors.Is(err, domain.ErrInvalidXPAmount),
		errors.Is(err, domain.ErrUnknownBadge),
		errors.Is(err, domain.ErrInvalidAnswer):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRocketIncomplete):
		writeMessage(w, http.StatusConflict, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}
