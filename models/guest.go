package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FullName string `gorm:"size:255;index" json:"fullName"`
	Email    string `gorm:"size:150" json:"email"`
	// phone and id_number are unique across guests; checked in the service
	// because blank values are allowed for both.
	Phone       string     `gorm:"size:50;index" json:"phone"`
	DateOfBirth *time.Time `gorm:"column:dob;type:date" json:"dateOfBirth"`
	IDType      string     `gorm:"column:id_type;size:50" json:"idType"`
	IDNumber    string     `gorm:"column:id_number;size:100;index" json:"idNumber"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
