package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"reliance-drill-service/internal/app"
	"reliance-drill-service/internal/domain"

	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *slog.Logger, checkOrigin func(r *http.Request) bool) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type verdictPayload struct {
	Verdict domain.Verdict `json:"verdict"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type sessionPayload struct {
	SessionID        string `json:"sessionId"`
	CountdownSeconds int    `json:"countdownSeconds"`
}

type instructionsPayload struct {
	Text string `json:"text"`
}

// questionPayload deliberately omits the condition and correctness of the displayed answer.
type questionPayload struct {
	Number      int      `json:"number"`
	Stem        string   `json:"stem"`
	Options     []string `json:"options"`
	Choice      string   `json:"choice"`
	Explanation string   `json:"explanation"`
	Seconds     int      `json:"seconds"`
}

type tickPayload struct {
	Remaining int `json:"remaining"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and runs one drill session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("ws write failed", "error", err)
				// Unblock the read loop so the connection is torn down.
				_ = conn.Close()
				return
			}
		}
	}()

	emit := func(msgType string, payload any) {
		select {
		case send <- outboundMessage[any]{Type: msgType, Payload: payload}:
		case <-closeSignals:
		case <-writerDone:
		}
	}

	presenter := &wsPresenter{emit: emit}
	session := h.service.Open(bankID, presenter)
	sessionID := session.ID()

	emit("session", sessionPayload{SessionID: sessionID, CountdownSeconds: h.service.CountdownSeconds()})
	if text, err := h.service.Instructions(r.Context(), bankID); err != nil {
		// No gate to show; Start reports the load error through the presenter.
		h.start(r.Context(), sessionID, emit)
	} else {
		emit("instructions", instructionsPayload{Text: text})
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			h.start(r.Context(), sessionID, emit)
		case "verdict":
			var payload verdictPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				emit("error", errorPayload{Message: "invalid verdict payload"})
				continue
			}
			if err := h.service.SubmitVerdict(sessionID, payload.Verdict); err != nil {
				emit("error", errorPayload{Message: err.Error()})
			}
		default:
			emit("error", errorPayload{Message: "unsupported message type"})
		}
	}

	close(closeSignals)
	h.service.Close(sessionID)
	close(send)
	<-writerDone
}

func (h *WSHandler) start(ctx context.Context, sessionID string, emit func(string, any)) {
	err := h.service.Start(ctx, sessionID)
	// Load failures reach the client once, as loadError from the presenter.
	if err == nil || errors.Is(err, domain.ErrBankLoad) {
		return
	}
	emit("error", errorPayload{Message: err.Error()})
}

// wsPresenter forwards session events onto the connection's send queue. Callbacks arrive
// under the session lock, so they only enqueue.
type wsPresenter struct {
	emit   func(string, any)
	number int
}

func (p *wsPresenter) OnQuestionReady(q domain.ParsedQuestion, a domain.DisplayedAnswer, seconds int) {
	p.number++
	p.emit("questionReady", questionPayload{
		Number:      p.number,
		Stem:        q.Stem,
		Options:     q.OptionLines(),
		Choice:      a.Choice,
		Explanation: a.Explanation,
		Seconds:     seconds,
	})
}

func (p *wsPresenter) OnTick(remaining int) {
	p.emit("tick", tickPayload{Remaining: remaining})
}

func (p *wsPresenter) OnFinished(report domain.Report) {
	p.emit("finished", report)
}

func (p *wsPresenter) OnLoadError(err error) {
	p.emit("loadError", errorPayload{Message: err.Error()})
}
