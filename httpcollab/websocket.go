// Package httpcollab hosts HTTP-adjacent collaborators that exercise
// core/engine over transports other than plain request/response: today, a
// WebSocket handler whose read loop is one subscribe per inbound frame.
package httpcollab

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/execkit/core/engine"
	"github.com/dmitrymomot/execkit/core/handler"
	"github.com/dmitrymomot/execkit/core/logger"
)

// MessageFunc processes one inbound frame and returns the reply to write
// back, or a nil reply to send nothing.
type MessageFunc func(ctx context.Context, msg []byte) (reply []byte, err error)

// WebSocketHandler upgrades a request to a WebSocket connection and runs
// its entire lifetime as a single Execution: every inbound frame is read
// via a Blocking Promise and its reply written from the Promise's Then
// consumer, which re-subscribes for the next frame before returning. The
// connection closes, and the Execution finishes, the moment a read fails.
type WebSocketHandler struct {
	ctrl     *engine.Controller
	log      *slog.Logger
	upgrader websocket.Upgrader
	onMsg    MessageFunc
}

// NewWebSocketHandler builds a WebSocketHandler dispatching frames to onMsg
// on ctrl's worker pool.
func NewWebSocketHandler(ctrl *engine.Controller, log *slog.Logger, onMsg MessageFunc) *WebSocketHandler {
	return &WebSocketHandler{ctrl: ctrl, log: log, onMsg: onMsg}
}

// Handler adapts the WebSocketHandler to core/router's handler.HandlerFunc.
func Handler[C handler.Context](h *WebSocketHandler) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			conn, err := h.upgrader.Upgrade(w, r, nil)
			if err != nil {
				return err
			}

			done := make(chan struct{})
			h.ctrl.Start(func(exec *engine.Execution) {
				exec.OnComplete(func() {
					conn.Close()
					close(done)
				})
				h.readNext(conn)
			}, func(err error) {
				h.log.ErrorContext(r.Context(), "websocket connection error", logger.Error(err))
			})
			<-done
			return nil
		}
	}
}

// readNext subscribes to the connection's next frame. Called once up front
// and then again from inside each successful frame's handling, so the
// Execution always has exactly one outstanding read reservation.
func (h *WebSocketHandler) readNext(conn *websocket.Conn) {
	engine.Blocking(h.ctrl, func() ([]byte, error) {
		_, msg, err := conn.ReadMessage()
		return msg, err
	}).Then(func(msg []byte) {
		reply, err := h.onMsg(context.Background(), msg)
		if err != nil {
			h.log.Error("websocket message handler failed", logger.Error(err))
			return
		}
		if reply != nil {
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}
		}
		h.readNext(conn)
	})
}
