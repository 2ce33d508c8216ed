package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

const wsWriteTimeout = 10 * time.Second

// EventsHandler streams session events to a websocket client as JSON text
// frames until the client leaves or the session ends.
func (h *APIHandler) EventsHandler(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	logger := h.logger.With(zap.String("session_id", s.ID))

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns(),
	})
	if err != nil {
		logger.Warn("failed to accept websocket", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	sub := s.Events.Subscribe(0)
	defer sub.Close()

	// Clients only listen; CloseRead handles control frames and cancels ctx
	// when the peer goes away.
	ctx := conn.CloseRead(r.Context())
	logger.Debug("event stream opened")

	for {
		select {
		case <-ctx.Done():
			logger.Debug("event stream closed by client")
			return
		case ev, ok := <-sub.Events():
			if !ok {
				conn.Close(websocket.StatusGoingAway, "session ended")
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				logger.Error("failed to marshal event", zap.Error(err))
				continue
			}
			if err := writeFrame(ctx, conn, payload); err != nil {
				logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

// originPatterns turns the configured CORS origins into host patterns for
// the websocket origin check.
func (h *APIHandler) originPatterns() []string {
	var patterns []string
	for _, o := range h.allowedOrigins {
		if o == "*" {
			return []string{"*"}
		}
		if _, host, ok := strings.Cut(o, "://"); ok {
			o = host
		}
		patterns = append(patterns, o)
	}
	return patterns
}
