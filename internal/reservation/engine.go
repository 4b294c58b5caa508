// Package reservation implements the booking engine: reservation
// lifecycle, the scheduling-conflict check and the availability query.
package reservation

import (
	"sync"
	"time"

	"roombook/internal/models"
)

// RoomDirectory is the capability surface the engine needs from the
// room registry.
type RoomDirectory interface {
	Get(id int64) (models.Room, bool)
	IsActive(id int64) bool
	Active() []models.Room
}

// UserDirectory resolves user IDs.
type UserDirectory interface {
	Get(id int64) (models.User, bool)
}

// CreateInput holds the fields of a reservation request. Date and the
// times are assumed syntactically valid ("YYYY-MM-DD", zero-padded
// "HH:MM"); the transport layer rejects malformed values before they
// get here.
type CreateInput struct {
	UserID    int64
	RoomID    int64
	Date      string
	StartTime string
	EndTime   string
	Reason    string
}

// Update carries the mutable fields of a reservation. UserID and
// RoomID cannot be changed after creation.
type Update struct {
	Date      *string
	StartTime *string
	EndTime   *string
	Reason    *string
}

// Engine owns the reservation collection. The mutex makes each
// conflict-scan-plus-write an atomic critical section, so the
// no-overlap invariant holds behind concurrent request handling.
type Engine struct {
	mu           sync.RWMutex
	rooms        RoomDirectory
	users        UserDirectory
	clock        Clock
	reservations []models.Reservation
	nextID       int64
}

func NewEngine(rooms RoomDirectory, users UserDirectory, clock Clock) *Engine {
	return &Engine{
		rooms:  rooms,
		users:  users,
		clock:  clock,
		nextID: 1,
	}
}

// Create validates and stores a new reservation. Check order: user
// exists, room exists, room active, end after start, date is a real
// calendar date, start not in the past, no overlap with a live
// reservation on the same room and date.
func (e *Engine) Create(in CreateInput) (models.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.users.Get(in.UserID); !ok {
		return models.Reservation{}, models.NotFound("user", "user not found")
	}
	if _, ok := e.rooms.Get(in.RoomID); !ok {
		return models.Reservation{}, models.NotFound("room", "room not found")
	}
	if !e.rooms.IsActive(in.RoomID) {
		return models.Reservation{}, models.InvalidInput("room", "an inactive room cannot be reserved")
	}
	if in.EndTime <= in.StartTime {
		return models.Reservation{}, models.InvalidInput("reservation", "end time must be after start time")
	}
	startAt, err := e.startInstant(in.Date, in.StartTime)
	if err != nil {
		return models.Reservation{}, models.InvalidInput("reservation", "date is not a valid calendar date")
	}
	if startAt.Before(e.clock.Now()) {
		return models.Reservation{}, models.InvalidInput("reservation", "cannot create reservations in the past")
	}
	if e.hasConflict(in.RoomID, in.Date, in.StartTime, in.EndTime, 0) {
		return models.Reservation{}, models.Conflict("reservation", "a reservation already exists for this room and time")
	}

	res := models.Reservation{
		ID:        e.nextID,
		UserID:    in.UserID,
		RoomID:    in.RoomID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Reason:    in.Reason,
	}
	e.nextID++
	e.reservations = append(e.reservations, res)
	return res, nil
}

// List returns all live reservations in creation order.
func (e *Engine) List() []models.Reservation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Reservation, len(e.reservations))
	copy(out, e.reservations)
	return out
}

// Get returns the reservation with the given ID.
func (e *Engine) Get(id int64) (models.Reservation, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	i := e.indexOf(id)
	if i < 0 {
		return models.Reservation{}, false
	}
	return e.reservations[i], true
}

// ListByRoomAndDate filters reservations for one room on one date.
func (e *Engine) ListByRoomAndDate(roomID int64, date string) []models.Reservation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.Reservation
	for _, r := range e.reservations {
		if r.RoomID == roomID && r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// ListByUser filters reservations held by one user.
func (e *Engine) ListByUser(userID int64) []models.Reservation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.Reservation
	for _, r := range e.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Update rewrites the supplied fields after re-running the window and
// conflict checks against the effective date and times. On any
// failure the stored reservation is left untouched.
func (e *Engine) Update(id int64, upd Update) (models.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return models.Reservation{}, models.NotFound("reservation", "reservation not found")
	}
	res := &e.reservations[i]

	date := res.Date
	start := res.StartTime
	end := res.EndTime
	if upd.Date != nil {
		date = *upd.Date
	}
	if upd.StartTime != nil {
		start = *upd.StartTime
	}
	if upd.EndTime != nil {
		end = *upd.EndTime
	}

	if end <= start {
		return models.Reservation{}, models.InvalidInput("reservation", "end time must be after start time")
	}
	if _, err := e.startInstant(date, start); err != nil {
		return models.Reservation{}, models.InvalidInput("reservation", "date is not a valid calendar date")
	}
	if e.hasConflict(res.RoomID, date, start, end, id) {
		return models.Reservation{}, models.Conflict("reservation", "a reservation already exists for this room and time")
	}

	if upd.Date != nil {
		res.Date = *upd.Date
	}
	if upd.StartTime != nil {
		res.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		res.EndTime = *upd.EndTime
	}
	if upd.Reason != nil {
		res.Reason = *upd.Reason
	}
	return *res, nil
}

// Cancel removes and returns the reservation. Cancellation is allowed
// strictly before the start instant; at or after it is too late.
func (e *Engine) Cancel(id int64) (models.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return models.Reservation{}, models.NotFound("reservation", "reservation not found")
	}
	res := e.reservations[i]

	// Stored dates were validated on the way in, so the parse cannot fail.
	startAt, _ := e.startInstant(res.Date, res.StartTime)
	if !e.clock.Now().Before(startAt) {
		return models.Reservation{}, models.InvalidInput("reservation", "cannot cancel a reservation after its start time")
	}

	e.reservations = append(e.reservations[:i], e.reservations[i+1:]...)
	return res, nil
}

// AvailableRooms returns the active rooms without a conflicting
// reservation on the given date and window, in registry order. The
// window is assumed ordered (end > start); the caller enforces that.
// No past-date restriction applies here, unlike Create.
func (e *Engine) AvailableRooms(date, start, end string) []models.Room {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.Room
	for _, room := range e.rooms.Active() {
		if !e.hasConflict(room.ID, date, start, end, 0) {
			out = append(out, room)
		}
	}
	return out
}

// Reset clears all reservations and restarts the ID counter. Test
// hook only.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reservations = nil
	e.nextID = 1
}

func (e *Engine) indexOf(id int64) int {
	for i := range e.reservations {
		if e.reservations[i].ID == id {
			return i
		}
	}
	return -1
}

// hasConflict scans the live reservations for the room and date. Only
// matching room+date entries are inspected; excludeID skips the
// reservation being updated. Callers hold the mutex.
func (e *Engine) hasConflict(roomID int64, date, start, end string, excludeID int64) bool {
	for i := range e.reservations {
		r := &e.reservations[i]
		if r.ID == excludeID || r.RoomID != roomID || r.Date != date {
			continue
		}
		if r.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// startInstant combines date and start time into a local wall-clock
// instant for the past-date and cancellation-window rules. The error
// surfaces dates that match the wire shape but are not calendar dates,
// like a 13th month.
func (e *Engine) startInstant(date, start string) (time.Time, error) {
	loc := e.clock.Now().Location()
	return time.ParseInLocation("2006-01-02 15:04", date+" "+start, loc)
}
