package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActivityInfo  = "info"
	ActivityError = "error"
)

// ActivityLog records lifecycle events (reservation, stay, invoice) so the
// front desk can see what happened and billing failures stay visible.
type ActivityLog struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Entity   string         `gorm:"size:32;index" json:"entity"`
	EntityID uint           `gorm:"index" json:"entityId"`
	Action   string         `gorm:"size:64;index" json:"action"`
	Level    string         `gorm:"size:16;index" json:"level"`
	Message  string         `gorm:"type:text" json:"message"`
	Details  datatypes.JSON `json:"details,omitempty"`
	ActorID  *uint          `gorm:"index" json:"actorId"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
