package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single websocket write.
	writeWait = 10 * time.Second

	// pingPeriod keeps idle watch connections alive.
	pingPeriod = 30 * time.Second
)

// handleWatch upgrades to a websocket and streams full snapshots of the
// requested document: the current one on connect, then one message per
// overlapping change until either side disconnects.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		s.writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	// The request context dies with the hijacked connection; the watch
	// lives until the peer goes away or the server shuts down.
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	snapshots, err := s.store.Watch(ctx, path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Watch failed")
		return
	}

	s.logger.Debug().Str("path", path).Msg("Watch stream opened")

	// Drain client frames so close handshakes and pongs are processed;
	// a read error means the peer is gone.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			if snap.Err != nil {
				s.logger.Error().Err(snap.Err).Str("path", path).Msg("Watch delivery failed")
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, snap.Data); err != nil {
				s.logger.Debug().Err(err).Str("path", path).Msg("Watch stream closed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
