package handlers

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"time"

	"insulin_advisor/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 14 // 16 KB

	wsTypeRecommendation = "recommendation"
	wsTypeError          = "error"

	errTextOnly = "only text frames carrying a JSON request are accepted"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type wsFrame struct {
	kind int
	data []byte
}

// checkOrigin accepts requests without an Origin header (non-browser clients)
// and browser origins listed in the CORS configuration.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || h.allowsAnyOrigin() || slices.Contains(h.corsOrigins, origin)
}

// @Summary      Recommendation stream
// @Description  Upgrades to WebSocket. Every text frame is a recommendation request; each is answered with {"type":"recommendation","data":...} or {"type":"error","error":...,"data":{...}}.
// @Tags         recommend
// @Success      101
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	upgrader := websocket.Upgrader{}
	if len(h.corsOrigins) > 0 {
		upgrader.CheckOrigin = h.checkOrigin
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	frames := make(chan wsFrame)
	stop := make(chan struct{})
	done := make(chan struct{})
	defer close(stop)
	go h.startReader(conn, frames, stop, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	ctx := c.Request.Context()
	connID := requestIDFrom(c)
	var seq int

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case f := <-frames:
			seq++
			env := h.handleFrame(ctx, f, connID+"-"+strconv.Itoa(seq))
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(env); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// startReader forwards data frames to the writer loop; control frames are
// handled by gorilla inside ReadMessage. done is closed when the peer goes away.
func (h *Handler) startReader(conn *websocket.Conn, frames chan<- wsFrame, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		select {
		case frames <- wsFrame{kind: kind, data: data}:
		case <-stop:
			return
		}
	}
}

func (h *Handler) handleFrame(ctx context.Context, f wsFrame, requestID string) wsEnvelope {
	if f.kind != websocket.TextMessage {
		return wsEnvelope{Type: wsTypeError, Error: errTextOnly, Data: models.ErrorResponse{Error: errTextOnly}}
	}
	rec, err := h.services.Advisor.Recommend(ctx, f.data, requestID)
	if err != nil {
		code, body := recommendError(err)
		if h.log != nil {
			if code == http.StatusBadRequest {
				h.log.Infow("ws_recommend_rejected", "request_id", requestID, "field", body.Field, "err", err)
			} else {
				h.log.Errorw("ws_recommend_failed", "request_id", requestID, "err", err)
			}
		}
		return wsEnvelope{Type: wsTypeError, Error: body.Error, Data: body}
	}
	return wsEnvelope{Type: wsTypeRecommendation, Data: rec}
}
