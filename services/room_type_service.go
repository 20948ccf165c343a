package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-backoffice/models"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) List(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return types, nil
}

func (s *RoomTypeService) Get(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room type", id)
		}
		return nil, fmt.Errorf("get room type: %w", err)
	}
	return &rt, nil
}

func (s *RoomTypeService) Create(ctx context.Context, rt *models.RoomType) error {
	rt.Name = strings.TrimSpace(rt.Name)
	if rt.Name == "" {
		return invalid("name", "room type name is required")
	}
	if rt.BasePrice < 0 {
		return invalid("basePrice", "must not be negative")
	}
	rt.ID = 0
	if err := s.DB.WithContext(ctx).Create(rt).Error; err != nil {
		return fmt.Errorf("create room type: %w", err)
	}
	return nil
}

func (s *RoomTypeService) Update(ctx context.Context, id uint, in models.RoomType) (*models.RoomType, error) {
	rt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n := strings.TrimSpace(in.Name); n != "" {
		rt.Name = n
	}
	rt.BedCount = in.BedCount
	rt.MaxOccupancy = in.MaxOccupancy
	rt.BasePrice = in.BasePrice
	if rt.BasePrice < 0 {
		return nil, invalid("basePrice", "must not be negative")
	}
	if err := s.DB.WithContext(ctx).Save(rt).Error; err != nil {
		return nil, fmt.Errorf("save room type: %w", err)
	}
	return rt, nil
}

func (s *RoomTypeService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.RoomType{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete room type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("room type", id)
	}
	return nil
}
