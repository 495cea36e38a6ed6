package internal

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// players connect from arbitrary watch-page origins; tighten this if
		// the backend is ever exposed without a fronting proxy
		return true
	},
}

// ServeWS upgrades GET /ws/{room_id} to a websocket and joins the session to
// its room. The room is created lazily; the welcome message is queued before
// the pumps start, so it is always the first frame the client sees.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	roomID := strings.TrimPrefix(r.URL.Path, "/ws/")
	if roomID == "" || strings.Contains(roomID, "/") {
		http.Error(w, "missing room id", http.StatusBadRequest)
		return
	}
	if !s.joinLimiter.Allow(s.clientIP(r)) {
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chat: upgrade failed: %v", err)
		return
	}

	client := newClient(conn)
	s.hub.join(roomID, client)
	s.metrics.IncConn()
	log.Printf("chat: connection %s joined room %q from %s", client.id, roomID, r.RemoteAddr)

	client.queue(systemMessage(fmt.Sprintf("🟢 Welcome to room: %s", roomID)).encode())

	go client.writePump()
	go client.readPump(s, roomID)
}
