package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReservationBooking    = "booking"
	ReservationCheckedIn  = "checked-in"
	ReservationCheckedOut = "checked-out"
	ReservationCancelled  = "cancelled"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;index" json:"referenceCode"`

	GuestID *uint  `gorm:"index;column:guest_id" json:"guestId"`
	Guest   *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	// any string may be written through update; the constants above are the
	// values the lifecycle itself produces.
	Status         string     `gorm:"column:status;size:32;default:'booking'" json:"status"`
	ArrivalDate    *time.Time `gorm:"column:arrival_date" json:"arrivalDate"`
	DepartureDate  *time.Time `gorm:"column:departure_date" json:"departureDate"`
	NumGuests      int        `gorm:"column:num_guests" json:"numGuests"`
	TotalEstimated *float64   `gorm:"column:total_estimated" json:"totalEstimated"`

	CreatedByUserID *uint `gorm:"column:created_by_user_id;index" json:"createdByUserId"`
	CreatedByUser   *User `gorm:"foreignKey:CreatedByUserID" json:"createdByUser,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rooms []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ReferenceCode == "" {
		r.ReferenceCode = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	}
	if r.Status == "" {
		r.Status = ReservationBooking
	}
	return nil
}

// ReservationRoom links one room (or only a room type, until a room is
// assigned) to a reservation with a price snapshot.
type ReservationRoom struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint `gorm:"index;not null;column:reservation_id" json:"reservationId"`

	RoomID *uint `gorm:"index;column:room_id" json:"roomId"`
	Room   *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	RoomTypeID *uint     `gorm:"index;column:room_type_id" json:"roomTypeId"`
	RoomType   *RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`

	Price         *float64 `gorm:"column:price" json:"price"`
	PricePerNight *float64 `gorm:"column:price_per_night" json:"pricePerNight"`
}

// PriceSnapshot is the booking's price, falling back to price-per-night.
func (rr ReservationRoom) PriceSnapshot() *float64 {
	if rr.Price != nil {
		return rr.Price
	}
	return rr.PricePerNight
}
