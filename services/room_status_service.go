package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-backoffice/models"
)

type RoomStatusService struct {
	DB *gorm.DB
}

func NewRoomStatusService(db *gorm.DB) *RoomStatusService {
	return &RoomStatusService{DB: db}
}

func (s *RoomStatusService) List(ctx context.Context) ([]models.RoomStatus, error) {
	var statuses []models.RoomStatus
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("list room statuses: %w", err)
	}
	return statuses, nil
}

func (s *RoomStatusService) Get(ctx context.Context, id uint) (*models.RoomStatus, error) {
	var st models.RoomStatus
	if err := s.DB.WithContext(ctx).First(&st, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room status", id)
		}
		return nil, fmt.Errorf("get room status: %w", err)
	}
	return &st, nil
}

// GetByName accepts any spelling ParseRoomStatus understands.
func (s *RoomStatusService) GetByName(ctx context.Context, raw string) (*models.RoomStatus, error) {
	name, ok := models.ParseRoomStatus(raw)
	if !ok {
		return nil, invalid("status", "unknown room status %q", raw)
	}
	var st models.RoomStatus
	if err := s.DB.WithContext(ctx).Where("name = ?", string(name)).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room status", raw)
		}
		return nil, fmt.Errorf("get room status by name: %w", err)
	}
	return &st, nil
}

func (s *RoomStatusService) GetOrCreate(ctx context.Context, name models.RoomStatusName) (*models.RoomStatus, error) {
	return roomStatusTx(s.DB.WithContext(ctx), name)
}

// roomStatusTx is get-or-create on the canonical name.
func roomStatusTx(tx *gorm.DB, name models.RoomStatusName) (*models.RoomStatus, error) {
	st := models.RoomStatus{Name: string(name)}
	if err := tx.Where(models.RoomStatus{Name: string(name)}).FirstOrCreate(&st).Error; err != nil {
		return nil, fmt.Errorf("get or create room status %s: %w", name, err)
	}
	return &st, nil
}

func setRoomStatusTx(tx *gorm.DB, roomID uint, name models.RoomStatusName) error {
	st, err := roomStatusTx(tx, name)
	if err != nil {
		return err
	}
	res := tx.Model(&models.Room{}).Where("id = ?", roomID).Update("status_id", st.ID)
	if res.Error != nil {
		return fmt.Errorf("set room %d status %s: %w", roomID, name, res.Error)
	}
	return nil
}

// currentRoomStatusTx reads the room's status name; unknown names come back
// verbatim so callers reject them as "not available".
func currentRoomStatusTx(tx *gorm.DB, roomID uint) (models.RoomStatusName, error) {
	var room models.Room
	if err := tx.Preload("Status").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFound("room", roomID)
		}
		return "", fmt.Errorf("load room %d: %w", roomID, err)
	}
	return room.StatusName(), nil
}
