// Package registry owns the in-memory room and user collections.
// Each registry is an explicit store object with its own ID counter:
// construct one per process, or one per test, instead of sharing
// package-level state.
package registry

import (
	"strings"
	"sync"

	"roombook/internal/models"
)

// RoomUpdate carries the fields of a partial room update. Nil means
// "keep the current value".
type RoomUpdate struct {
	Name     *string
	Type     *string
	Capacity *int
	Status   *string
}

// RoomRegistry stores rooms in insertion order. Name uniqueness is
// case-insensitive with case-preserving storage: the index maps the
// lowercased name to the room ID holding the original spelling.
type RoomRegistry struct {
	mu     sync.RWMutex
	rooms  []models.Room
	byName map[string]int64
	nextID int64
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		byName: make(map[string]int64),
		nextID: 1,
	}
}

// Create assigns the next ID and stores the room. An empty status
// defaults to active. Name uniqueness is the caller's responsibility;
// use FindByName before calling. If a caller skips that check, the
// index keeps pointing at the earlier room.
func (r *RoomRegistry) Create(name, roomType string, capacity int, status string) models.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	if status == "" {
		status = models.RoomStatusActive
	}
	room := models.Room{
		ID:       r.nextID,
		Name:     name,
		Type:     roomType,
		Capacity: capacity,
		Status:   status,
	}
	r.nextID++
	r.rooms = append(r.rooms, room)
	key := strings.ToLower(name)
	if _, taken := r.byName[key]; !taken {
		r.byName[key] = room.ID
	}
	return room
}

// List returns all rooms in insertion order.
func (r *RoomRegistry) List() []models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}

// Active returns rooms whose status permits new reservations,
// preserving insertion order.
func (r *RoomRegistry) Active() []models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Room
	for _, room := range r.rooms {
		if room.IsActive() {
			out = append(out, room)
		}
	}
	return out
}

// Get returns the room with the given ID.
func (r *RoomRegistry) Get(id int64) (models.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Room{}, false
	}
	return r.rooms[i], true
}

// FindByName looks a room up by name, ignoring letter case.
func (r *RoomRegistry) FindByName(name string) (models.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return models.Room{}, false
	}
	i := r.indexOf(id)
	if i < 0 {
		return models.Room{}, false
	}
	return r.rooms[i], true
}

// Update overwrites the supplied fields of a room. Renaming to a name
// another room already holds (ignoring case) is a conflict.
func (r *RoomRegistry) Update(id int64, upd RoomUpdate) (models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Room{}, models.NotFound("room", "room not found")
	}
	room := &r.rooms[i]

	if upd.Name != nil && !strings.EqualFold(*upd.Name, room.Name) {
		key := strings.ToLower(*upd.Name)
		if otherID, taken := r.byName[key]; taken && otherID != id {
			return models.Room{}, models.Conflict("room", "a room with this name already exists")
		}
	}

	if upd.Name != nil {
		oldKey := strings.ToLower(room.Name)
		if r.byName[oldKey] == id {
			delete(r.byName, oldKey)
		}
		room.Name = *upd.Name
		r.byName[strings.ToLower(room.Name)] = id
	}
	if upd.Type != nil {
		room.Type = *upd.Type
	}
	if upd.Capacity != nil {
		room.Capacity = *upd.Capacity
	}
	if upd.Status != nil {
		room.Status = *upd.Status
	}
	return *room, nil
}

// Delete removes and returns the room. Reservations referencing it are
// left alone; dangling room IDs are an accepted gap.
func (r *RoomRegistry) Delete(id int64) (models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Room{}, models.NotFound("room", "room not found")
	}
	room := r.rooms[i]
	r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
	key := strings.ToLower(room.Name)
	if r.byName[key] == id {
		delete(r.byName, key)
		for j := range r.rooms {
			if strings.ToLower(r.rooms[j].Name) == key {
				r.byName[key] = r.rooms[j].ID
				break
			}
		}
	}
	return room, nil
}

// IsActive reports whether the room exists and is active. A missing
// room counts as inactive.
func (r *RoomRegistry) IsActive(id int64) bool {
	room, ok := r.Get(id)
	return ok && room.IsActive()
}

// Reset clears all rooms and restarts the ID counter. Test hook only;
// never reachable through the API.
func (r *RoomRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = nil
	r.byName = make(map[string]int64)
	r.nextID = 1
}

func (r *RoomRegistry) indexOf(id int64) int {
	for i := range r.rooms {
		if r.rooms[i].ID == id {
			return i
		}
	}
	return -1
}
