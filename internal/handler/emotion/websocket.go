package emotion

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

type inboundMessage struct {
	TextToAnalyze string `json:"textToAnalyze"`
}

type outgoingMessage struct {
	ID      string        `json:"id"`
	Status  int           `json:"status"`
	Message string        `json:"message"`
	Scores  *model.Scores `json:"scores,omitempty"`
}

// wsConn serializes writes; gorilla connections allow only one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// handleWebSocket analyzes each inbound frame independently and replies with one message per frame.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("[websocket] upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ws := &wsConn{conn: conn}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, ws)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Infow("[websocket] read error", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if err := ws.writeJSON(h.analyzeFrame(ctx, msg)); err != nil {
			h.log.Infow("[websocket] write failed", "error", err)
			return
		}
	}
}

func (h *Handler) analyzeFrame(ctx context.Context, msg inboundMessage) outgoingMessage {
	out := outgoingMessage{ID: uuid.NewString()}

	scores, err := h.analyzer.Analyze(ctx, msg.TextToAnalyze)
	if err != nil {
		out.Status, out.Message = StatusFor(err)
		return out
	}

	out.Status = http.StatusOK
	out.Message = FormatMessage(scores)
	if scores.HasDominant() {
		out.Scores = &scores
	}
	return out
}

func (h *Handler) pingLoop(ctx context.Context, ws *wsConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.ping(); err != nil {
				return
			}
		}
	}
}
