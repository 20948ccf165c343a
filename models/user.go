package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff member; it is only used for created-by / posted-by
// attribution.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;size:150" json:"username"`
	Password    string     `gorm:"size:255" json:"-"` // bcrypt hash
	FullName    string     `gorm:"size:255" json:"fullName"`
	Email       string     `gorm:"size:150" json:"email"`
	Phone       string     `gorm:"size:50" json:"phone"`
	DateOfBirth *time.Time `gorm:"column:dob;type:date" json:"dateOfBirth,omitempty"`

	RoleID *uint `gorm:"index" json:"roleId"`
	Role   *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
