package models

import "strings"

// RoomStatusName is the closed vocabulary of room states. Rows in
// room_statuses always carry one of these canonical names.
type RoomStatusName string

const (
	RoomAvailable   RoomStatusName = "available"
	RoomBooked      RoomStatusName = "booked"
	RoomOccupied    RoomStatusName = "occupied"
	RoomReturned    RoomStatusName = "returned"
	RoomCleaning    RoomStatusName = "cleaning"
	RoomMaintenance RoomStatusName = "maintenance"
)

// AllRoomStatuses lists the canonical names in display order.
var AllRoomStatuses = []RoomStatusName{
	RoomAvailable,
	RoomBooked,
	RoomOccupied,
	RoomReturned,
	RoomCleaning,
	RoomMaintenance,
}

var roomStatusSynonyms = map[string]RoomStatusName{
	"available":         RoomAvailable,
	"vacant":            RoomAvailable,
	"booked":            RoomBooked,
	"reserved":          RoomBooked,
	"occupied":          RoomOccupied,
	"checked-in":        RoomOccupied,
	"in-use":            RoomOccupied,
	"returned":          RoomReturned,
	"checked-out":       RoomReturned,
	"cleaning":          RoomCleaning,
	"dirty":             RoomCleaning,
	"maintenance":       RoomMaintenance,
	"under-maintenance": RoomMaintenance,
}

// ParseRoomStatus normalises a free-form status name (trim, lower-case,
// synonyms) into its canonical value.
func ParseRoomStatus(raw string) (RoomStatusName, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "-")
	name, ok := roomStatusSynonyms[key]
	return name, ok
}

func (n RoomStatusName) String() string { return string(n) }

// IsOccupied reports whether the status belongs to a room with a guest in it.
func (n RoomStatusName) IsOccupied() bool { return n == RoomOccupied }

type RoomStatus struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

// Canonical maps the stored name back to the enum. Unknown rows (legacy data)
// report ok=false.
func (s RoomStatus) Canonical() (RoomStatusName, bool) {
	return ParseRoomStatus(s.Name)
}
