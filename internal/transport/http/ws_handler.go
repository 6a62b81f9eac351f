package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"aeroedu-service/internal/app"
	"aeroedu-service/internal/domain"
)

// WSHandler streams caller-facing progress events to the UI and accepts
// builder/quiz commands over the same connection.
type WSHandler struct {
	bus      *app.EventBus
	rockets  *app.RocketService
	learning *app.LearningService
	upgrader websocket.Upgrader
}

func NewWSHandler(bus *app.EventBus, rockets *app.RocketService, learning *app.LearningService) *WSHandler {
	return &WSHandler{
		bus:      bus,
		rockets:  rockets,
		learning: learning,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type placePartPayload struct {
	Zone string `json:"zone"`
	Part string `json:"part"`
}

type renamePayload struct {
	Name string `json:"name"`
}

type answerPayload struct {
	ModuleID int `json:"moduleId"`
	Question int `json:"question"`
	Option   int `json:"option"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the
// builder and quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	state, err := h.rockets.State(r.Context(), userID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	events, cancel := h.bus.Subscribe(userID)
	defer cancel()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	// Single writer goroutine; everything else funnels through send.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: "event", Payload: event}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage{Type: "assemblyState", Payload: state}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "placePart":
			var payload placePartPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid placePart payload"}}
				continue
			}
			state, err := h.rockets.PlacePart(r.Context(), userID, domain.Zone(payload.Zone), payload.Part)
			if err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage{Type: "assemblyState", Payload: state}
		case "rename":
			var payload renamePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid rename payload"}}
				continue
			}
			state, err := h.rockets.Rename(r.Context(), userID, payload.Name)
			if err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage{Type: "assemblyState", Payload: state}
		case "reset":
			state, err := h.rockets.Reset(r.Context(), userID)
			if err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage{Type: "assemblyState", Payload: state}
		case "launch":
			report, err := h.rockets.TestLaunch(r.Context(), userID)
			if err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage{Type: "launchResult", Payload: report}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			feedback, err := h.learning.SubmitAnswer(r.Context(), userID, payload.ModuleID, payload.Question, payload.Option)
			if err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage{Type: "answerResult", Payload: feedback}
		default:
			send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}
