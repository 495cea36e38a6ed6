package internal

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	heartbeatPeriod = 30 * time.Second
	maxMsgSize      = 4096
	chatRateWindow  = 3 * time.Second
	chatRateBurst   = 10
)

// Client is the server side of one chat connection. It owns the socket for
// the lifetime of the session; the room only ever holds its send queue. The
// room pointer is set by Hub.join before the pumps start.
type Client struct {
	id         string
	room       *Room
	conn       *websocket.Conn
	send       chan []byte
	sendMu     sync.Mutex
	sendClosed bool
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// queue hands a payload to this client's own socket without blocking. The
// payload is dropped when the buffer is full or the queue is already closed;
// the pump will notice a dead peer on its own.
func (client *Client) queue(payload []byte) {
	client.sendMu.Lock()
	defer client.sendMu.Unlock()
	if client.sendClosed {
		return
	}
	select {
	case client.send <- payload:
	default:
	}
}

// closeSend shuts the send queue exactly once. The room calls this on leave
// and when pruning a slow member; queue observes the flag so a late system
// reply can never hit a closed channel.
func (client *Client) closeSend() {
	client.sendMu.Lock()
	defer client.sendMu.Unlock()
	if !client.sendClosed {
		client.sendClosed = true
		close(client.send)
	}
}

// readPump consumes inbound frames until the socket errors or closes. The
// deferred cleanup runs on every exit path, so membership is always released
// no matter how the session ends.
func (client *Client) readPump(s *Server, roomID string) {
	defer func() {
		client.room.leave(client)
		client.conn.Close()
		s.hub.deleteRoomIfEmpty(roomID)
		s.chatLimiter.Forget(client.id)
		s.metrics.DecConn()
		log.Printf("chat: connection %s left room %q", client.id, roomID)
	}()
	client.conn.SetReadLimit(maxMsgSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		frameType, payload, err := client.conn.ReadMessage()
		if err != nil {
			// normal close or read error; the deferred cleanup takes over
			break
		}
		if frameType != websocket.TextMessage {
			continue
		}

		var msg ChatMessage
		if err := json.Unmarshal(payload, &msg); err != nil || msg.User == "" {
			// decode failures stay local to this session: the sender gets a
			// system reply and nothing reaches the room.
			client.queue(systemMessage("⚠️ Invalid message format.").encode())
			continue
		}

		if !s.chatLimiter.Allow(client.id) {
			client.queue(systemMessage("You're sending messages too quickly. Please wait a moment and try again.").encode())
			continue
		}
		if msg.Timestamp == "" {
			msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}
		client.room.broadcastPayload(msg.encode())
		s.metrics.IncBroadcast()
	}
}

// writePump drains the send queue onto the socket and emits the heartbeat
// ping. It never runs concurrently with another writer on the same socket.
func (client *Client) writePump() {
	ticker := time.NewTicker(heartbeatPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// the room closed the queue; ask the peer to close
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
