package models

import "time"

const (
	StayCheckedIn = "checked-in"
	StayCompleted = "completed"
)

// Stay is one room physically occupied by a guest, derived from a
// reservation at check-in.
type Stay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint         `gorm:"index;not null;column:reservation_id" json:"reservationId"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`

	GuestID *uint  `gorm:"index;column:guest_id" json:"guestId"`
	Guest   *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	RoomID uint  `gorm:"index;not null;column:room_id" json:"roomId"`
	Room   *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CheckinTime  time.Time `gorm:"column:checkin_time;index" json:"checkinTime"`
	CheckoutTime time.Time `gorm:"column:checkout_time;index" json:"checkoutTime"`
	TotalCost    *float64  `gorm:"column:total_cost" json:"totalCost"`
	Status       string    `gorm:"size:32;index" json:"status"`

	CreatedByUserID *uint     `gorm:"column:created_by_user_id" json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}
