package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fitfinder-quiz-service/internal/app"
	"fitfinder-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
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

type answerPayload struct {
	QuestionID  int `json:"questionId"`
	AnswerIndex int `json:"answerIndex"`
}

type answerView struct {
	Copy string `json:"copy"`
}

type questionView struct {
	ID      int          `json:"id"`
	Copy    string       `json:"copy"`
	Answers []answerView `json:"answers"`
}

type screenPayload struct {
	Screen domain.Screen `json:"screen"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and dispatches client intents
// (start, answer, transitionDone, restart, home) into the quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	datasetID := r.URL.Query().Get("dataset")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}
	if datasetID == "" {
		datasetID = "shoes"
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	defer h.service.Home(r.Context(), sessionID)

	send := func(msg outboundMessage[any]) {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error: %v", err)
		}
	}
	sendErr := func(err error) {
		send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}

	send(outboundMessage[any]{Type: "screen", Payload: screenPayload{Screen: domain.ScreenStart}})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "start", "restart":
			question, err := h.service.Start(r.Context(), datasetID, sessionID)
			if err != nil {
				// A dataset that fails to load is terminal: the quiz screen
				// is never reachable without one.
				sendErr(err)
				continue
			}
			send(outboundMessage[any]{Type: "screen", Payload: screenPayload{Screen: domain.ScreenQuiz}})
			send(outboundMessage[any]{Type: "question", Payload: viewOf(question)})

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendErr(errors.New("invalid answer payload"))
				continue
			}
			h.handleAnswer(r.Context(), send, sendErr, datasetID, sessionID, payload)

		case "transitionDone":
			if err := h.service.TransitionDone(sessionID); err != nil {
				sendErr(err)
			}

		case "home":
			h.service.Home(r.Context(), sessionID)
			send(outboundMessage[any]{Type: "screen", Payload: screenPayload{Screen: domain.ScreenStart}})

		default:
			sendErr(errors.New("unsupported message type"))
		}
	}
}

// handleAnswer runs the two explicit core steps: score the answer, then
// advance (or finish). Scoring errors leave the session untouched and surface
// as error messages; a transition in flight rejects the event outright.
func (h *WSHandler) handleAnswer(ctx context.Context, send func(outboundMessage[any]), sendErr func(error), datasetID, sessionID string, payload answerPayload) {
	outcome, err := h.service.SubmitAnswer(ctx, datasetID, sessionID, payload.QuestionID, payload.AnswerIndex)
	if err != nil {
		sendErr(err)
		return
	}

	// The content swap animates; further answers are refused until the client
	// reports both fade phases complete (or the safety timeout clears it).
	if err := h.service.BeginTransition(sessionID); err != nil {
		sendErr(err)
		return
	}

	if outcome.Finished {
		results, err := h.service.Finish(ctx, datasetID, sessionID)
		if err != nil {
			sendErr(err)
			return
		}
		send(outboundMessage[any]{Type: "screen", Payload: screenPayload{Screen: domain.ScreenResults}})
		send(outboundMessage[any]{Type: "results", Payload: results})
		return
	}

	question, err := h.service.Advance(ctx, datasetID, sessionID, outcome.NextQuestionID)
	if err != nil {
		// Dangling nextQuestion reference: surface a not-found message, keep
		// the connection and session alive.
		sendErr(err)
		return
	}
	send(outboundMessage[any]{Type: "question", Payload: viewOf(question)})
}

func viewOf(q domain.Question) questionView {
	answers := make([]answerView, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, answerView{Copy: a.Copy})
	}
	return questionView{ID: q.ID, Copy: q.Copy, Answers: answers}
}
