package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-backoffice/models"
)

// ActivityService persists lifecycle events. A nil *ActivityService is a
// valid no-op recorder.
type ActivityService struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewActivityService(db *gorm.DB, log *logrus.Logger) *ActivityService {
	return &ActivityService{DB: db, Log: log}
}

// Event is one lifecycle entry; Details is marshalled into the JSON column.
type Event struct {
	Entity   string
	EntityID uint
	Action   string
	Level    string
	Message  string
	Details  map[string]interface{}
	ActorID  *uint
}

// Record writes ev through tx so it commits or rolls back with the caller.
func (s *ActivityService) Record(tx *gorm.DB, ev Event) error {
	if s == nil {
		return nil
	}
	if tx == nil {
		tx = s.DB
	}
	if ev.Level == "" {
		ev.Level = models.ActivityInfo
	}

	row := models.ActivityLog{
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Action:   ev.Action,
		Level:    ev.Level,
		Message:  ev.Message,
		ActorID:  ev.ActorID,
	}
	if len(ev.Details) > 0 {
		raw, err := json.Marshal(ev.Details)
		if err != nil {
			return fmt.Errorf("marshal activity details: %w", err)
		}
		row.Details = datatypes.JSON(raw)
	}

	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("record activity %s.%s: %w", ev.Entity, ev.Action, err)
	}

	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{
			"entity":    ev.Entity,
			"entity_id": ev.EntityID,
			"action":    ev.Action,
		}).Debug("activity recorded")
	}
	return nil
}

// List returns the latest entries, optionally for one entity kind.
func (s *ActivityService) List(ctx context.Context, entity string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit)
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	var rows []models.ActivityLog
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return rows, nil
}
