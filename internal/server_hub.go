package internal

import "sync"

// Hub owns the mapping from room id to live Room. It is constructed once and
// handed to every connection handler; rooms are created lazily on first join
// and reaped when the last member leaves.
type Hub struct {
	mutex sync.RWMutex
	rooms map[string]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*Room)}
}

// Exists reports whether a room is currently live, without creating it.
func (hub *Hub) Exists(id string) bool {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	_, ok := hub.rooms[id]
	return ok
}

// RoomCount returns the number of live rooms.
func (hub *Hub) RoomCount() int {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	return len(hub.rooms)
}

// Broadcast fans a payload out to every member of the room, if it exists.
// Delivery is fire-and-forget: the call never fails, and a member that cannot
// keep up is pruned inside the room.
func (hub *Hub) Broadcast(id string, payload []byte) {
	hub.mutex.RLock()
	room := hub.rooms[id]
	hub.mutex.RUnlock()
	if room != nil {
		room.broadcastPayload(payload)
	}
}

// join adds the client to the room, creating it if needed. Lookup, creation
// and the membership insert all happen under the hub mutex, so a join can
// never land in a room object that a concurrent last-leave reap has already
// dropped from the map.
func (hub *Hub) join(id string, client *Client) *Room {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	room, exists := hub.rooms[id]
	if !exists {
		room = newRoom(id)
		hub.rooms[id] = room
	}
	room.join(client)
	client.room = room
	return room
}

func (hub *Hub) deleteRoomIfEmpty(id string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if room, exists := hub.rooms[id]; exists {
		if room.size() == 0 {
			delete(hub.rooms, id)
		}
	}
}
