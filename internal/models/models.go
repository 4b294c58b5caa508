package models

// Room statuses.
const (
	RoomStatusActive   = "active"
	RoomStatusInactive = "inactive"
)

// Room represents a bookable room.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// IsActive reports whether the room accepts new reservations.
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusActive
}

// User represents a person who can hold reservations.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Reservation is a time-boxed booking of a room by a user.
// Date is "YYYY-MM-DD"; StartTime and EndTime are zero-padded "HH:MM",
// so lexicographic comparison matches chronological order.
type Reservation struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	RoomID    int64  `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// Overlaps reports whether [start, end) conflicts with the reservation's
// own half-open interval. Touching intervals do not overlap: a booking
// ending at 10:00 leaves 10:00 free for the next one.
func (r *Reservation) Overlaps(start, end string) bool {
	return Overlap(start, end, r.StartTime, r.EndTime)
}

// Overlap is the half-open interval test: [s1, e1) and [s2, e2) conflict
// iff s1 < e2 && s2 < e1.
func Overlap(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}
