package internal

import "sync"

// Room is the set of live connections sharing one broadcast scope. All
// membership changes and fan-out are serialized by the room mutex, so no
// caller ever observes a torn member set. The lock is only ever held across
// map mutation and non-blocking queue pushes, never across a socket write.
type Room struct {
	id      string
	mutex   sync.RWMutex
	members map[*Client]bool
}

func newRoom(id string) *Room {
	return &Room{
		id:      id,
		members: make(map[*Client]bool),
	}
}

func (room *Room) size() int {
	room.mutex.RLock()
	defer room.mutex.RUnlock()
	return len(room.members)
}

func (room *Room) join(client *Client) {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	room.members[client] = true
}

// leave removes the client and closes its send queue. Leaving twice, or
// leaving after the broadcast path already pruned the client, is a no-op.
func (room *Room) leave(client *Client) {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	if _, exists := room.members[client]; exists {
		delete(room.members, client)
		client.closeSend()
	}
}

// broadcastPayload fans a payload out to every current member, the sender
// included. A member whose send buffer is full cannot keep up; it is pruned
// here so one slow socket never backs up the room.
func (room *Room) broadcastPayload(payload []byte) {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	for client := range room.members {
		select {
		case client.send <- payload:
		default:
			client.closeSend()
			delete(room.members, client)
		}
	}
}
