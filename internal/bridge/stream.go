package bridge

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/example/appmenu/internal/logging"
	"github.com/example/appmenu/internal/protocol"
)

// handleEvents upgrades the request and streams every broadcast event to the
// client as JSON until either side goes away. Client messages are ignored.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Debugf("websocket upgrade failed: %v", err)
		return
	}

	queue, cancel := s.opts.Events.Subscribe(listenerBuffer)
	closed := make(chan struct{})
	go readPump(conn, closed)
	writePump(conn, queue, closed)

	cancel()
	_ = conn.Close()
	logging.Debugf("event listener %s disconnected", r.RemoteAddr)
}

func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debugf("websocket read error: %v", err)
			}
			return
		}
	}
}

func writePump(conn *websocket.Conn, queue <-chan protocol.Event, closed <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-queue:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				logging.Debugf("websocket write failed: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
