package models

import (
	"time"

	"gorm.io/gorm"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber string `gorm:"column:room_number;uniqueIndex;type:varchar(50);not null" json:"roomNumber"`
	Floor      string `gorm:"type:varchar(10)" json:"floor"`
	Image      string `gorm:"size:255" json:"image,omitempty"`

	RoomTypeID uint     `gorm:"column:room_type_id;index" json:"roomTypeId"`
	RoomType   RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType"`

	// StatusID is driven by the reservation/stay lifecycle.
	StatusID uint       `gorm:"column:status_id;index" json:"statusId"`
	Status   RoomStatus `gorm:"foreignKey:StatusID" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// StatusName returns the canonical status of a room whose Status was preloaded.
func (r Room) StatusName() RoomStatusName {
	if name, ok := r.Status.Canonical(); ok {
		return name
	}
	return RoomStatusName(r.Status.Name)
}
