package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomType is static reference data; rooms inherit capacity and price from it.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	BedCount     int     `gorm:"column:bed_count" json:"bedCount"`
	MaxOccupancy int     `gorm:"column:max_occupancy" json:"maxOccupancy"`
	BasePrice    float64 `gorm:"column:base_price" json:"basePrice"`

	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
