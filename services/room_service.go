package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-backoffice/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomFilter struct {
	Search     string
	StatusID   uint
	RoomTypeID uint
}

// RoomInput carries a status either by id or by name; the name wins.
type RoomInput struct {
	RoomNumber string
	Floor      string
	Image      string
	RoomTypeID uint
	StatusID   uint
	StatusName string
}

func (s *RoomService) List(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Preload("RoomType").Preload("Status")
	if term := strings.TrimSpace(f.Search); term != "" {
		q = q.Where("room_number LIKE ?", "%"+term+"%")
	}
	if f.StatusID != 0 {
		q = q.Where("status_id = ?", f.StatusID)
	}
	if f.RoomTypeID != 0 {
		q = q.Where("room_type_id = ?", f.RoomTypeID)
	}

	var rooms []models.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").Preload("Status").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room", id)
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// Create defaults the status to available.
func (s *RoomService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if strings.TrimSpace(in.RoomNumber) == "" {
			return invalid("roomNumber", "room number is required")
		}
		if err := ensureExists(tx, &models.RoomType{}, "room type", in.RoomTypeID); err != nil {
			return err
		}
		if in.StatusID == 0 && in.StatusName == "" {
			in.StatusName = string(models.RoomAvailable)
		}
		statusID, err := resolveStatusID(tx, in.StatusID, in.StatusName)
		if err != nil {
			return err
		}

		room = models.Room{
			RoomNumber: strings.TrimSpace(in.RoomNumber),
			Floor:      in.Floor,
			Image:      in.Image,
			RoomTypeID: in.RoomTypeID,
			StatusID:   statusID,
		}
		if err := tx.Omit(clause.Associations).Create(&room).Error; err != nil {
			return fmt.Errorf("create room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, room.ID)
}

// Update is also how housekeeping moves a room between states, e.g.
// returned -> cleaning -> available.
func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("room", id)
			}
			return fmt.Errorf("load room: %w", err)
		}

		updates := map[string]interface{}{}
		if n := strings.TrimSpace(in.RoomNumber); n != "" {
			updates["room_number"] = n
		}
		if in.Floor != "" {
			updates["floor"] = in.Floor
		}
		if in.Image != "" {
			updates["image"] = in.Image
		}
		if in.RoomTypeID != 0 {
			if err := ensureExists(tx, &models.RoomType{}, "room type", in.RoomTypeID); err != nil {
				return err
			}
			updates["room_type_id"] = in.RoomTypeID
		}
		if in.StatusID != 0 || in.StatusName != "" {
			statusID, err := resolveStatusID(tx, in.StatusID, in.StatusName)
			if err != nil {
				return err
			}
			updates["status_id"] = statusID
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&room).Updates(updates).Error; err != nil {
			return fmt.Errorf("update room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("room", id)
	}
	return nil
}

func resolveStatusID(tx *gorm.DB, id uint, name string) (uint, error) {
	if name != "" {
		canonical, ok := models.ParseRoomStatus(name)
		if !ok {
			return 0, invalid("status", "unknown room status %q", name)
		}
		st, err := roomStatusTx(tx, canonical)
		if err != nil {
			return 0, err
		}
		return st.ID, nil
	}
	if err := ensureExists(tx, &models.RoomStatus{}, "room status", id); err != nil {
		return 0, err
	}
	return id, nil
}
