package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lamim/prdforge/internal/wizard"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 50 * time.Second
)

// handleEvents streams the events of one session over a websocket.
// The current state is sent first so clients never start blind.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := s.store.Get(id)
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "session", id, "error", err)
		return
	}
	defer conn.Close()

	subID, events := s.bus.Subscribe(id)
	defer s.bus.Unsubscribe(id, subID)
	if s.metrics != nil {
		s.metrics.SubscriberAdded()
		defer s.metrics.SubscriberRemoved()
	}
	s.logger.Debug("Event subscriber connected", "session", id, "subscriber", subID)

	snap := c.Snapshot()
	initial := wizard.Event{
		Kind:      wizard.EventState,
		Step:      snap.Step,
		Progress:  snap.Progress,
		Busy:      snap.Busy,
		Operation: snap.Pending,
	}
	if err := writeEvent(conn, initial); err != nil {
		return
	}

	// Inbound messages are ignored; reading keeps pongs and close frames flowing
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		conn.SetReadLimit(4096)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := writeEvent(conn, e); err != nil {
				s.logger.Debug("Event write failed", "session", id, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-readDone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, e wizard.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(e)
}
