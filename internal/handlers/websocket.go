package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/services/poller"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// StatusFrame is one message on the operation socket.
type StatusFrame struct {
	Type       string        `json:"type"`
	InstanceID string        `json:"instanceId"`
	Status     poller.Status `json:"status"`
}

// OperationSocketHandler streams poller snapshots for one operation over a
// WebSocket so the dashboard gets progress without re-fetching. Each
// connection runs its own independent polling sequence; closing the socket
// cancels it.
type OperationSocketHandler struct {
	source           interfaces.OperationSource
	poller           *poller.Poller
	logger           arbor.ILogger
	serverInstanceID string // clients use this to detect server restarts
}

func NewOperationSocketHandler(source interfaces.OperationSource, p *poller.Poller, logger arbor.ILogger) *OperationSocketHandler {
	return &OperationSocketHandler{
		source:           source,
		poller:           p,
		logger:           logger,
		serverInstanceID: uuid.New().String(),
	}
}

// HandleOperationSocket handles GET /ws/operations/{opId}.
func (h *OperationSocketHandler) HandleOperationSocket(w http.ResponseWriter, r *http.Request, operationID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader goroutine: the client never sends application data, but a read
	// error is how we learn the socket is gone.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	updates := make(chan poller.Status, 8)
	done := make(chan poller.Status, 1)

	go func() {
		done <- h.poller.Poll(ctx, operationID, updates)
	}()

	h.logger.Debug().
		Str("operation", operationID).
		Msg("Operation socket opened")

	for {
		select {
		case status := <-updates:
			if err := h.writeFrame(conn, status); err != nil {
				cancel()
				<-done
				return
			}
		case final := <-done:
			// The terminal emit may have been dropped; always deliver the
			// final state before closing.
			h.writeFrame(conn, final)
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(final.State)))

			h.logger.Debug().
				Str("operation", operationID).
				Str("state", string(final.State)).
				Msg("Operation socket closed")
			return
		}
	}
}

func (h *OperationSocketHandler) writeFrame(conn *websocket.Conn, status poller.Status) error {
	return conn.WriteJSON(StatusFrame{
		Type:       "operation_status",
		InstanceID: h.serverInstanceID,
		Status:     status,
	})
}
