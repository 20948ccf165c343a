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

// ItemService is the billable service catalog.
type ItemService struct {
	DB *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{DB: db}
}

// ItemPatch leaves nil fields untouched.
type ItemPatch struct {
	Name       *string
	Price      *float64
	Status     *string
	Image      *string
	ItemTypeID *uint
}

func (s *ItemService) List(ctx context.Context, status string) ([]models.Item, error) {
	q := s.DB.WithContext(ctx).Preload("ItemType")
	if st := strings.TrimSpace(status); st != "" {
		q = q.Where("status = ?", st)
	}
	var items []models.Item
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.DB.WithContext(ctx).Preload("ItemType").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("item", id)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

func (s *ItemService) Create(ctx context.Context, item *models.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return invalid("name", "item name is required")
	}
	if item.Price < 0 {
		return invalid("price", "must not be negative")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.ItemTypeID != nil {
			if err := ensureExists(tx, &models.ItemType{}, "item type", *item.ItemTypeID); err != nil {
				return err
			}
		}
		item.ID = 0
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		return nil
	})
}

func (s *ItemService) Update(ctx context.Context, id uint, patch ItemPatch) (*models.Item, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Item{}, "item", id); err != nil {
			return err
		}
		updates := map[string]interface{}{}
		if patch.Name != nil {
			updates["item_name"] = strings.TrimSpace(*patch.Name)
		}
		if patch.Price != nil {
			if *patch.Price < 0 {
				return invalid("price", "must not be negative")
			}
			updates["price"] = *patch.Price
		}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}
		if patch.Image != nil {
			updates["image"] = *patch.Image
		}
		if patch.ItemTypeID != nil {
			if err := ensureExists(tx, &models.ItemType{}, "item type", *patch.ItemTypeID); err != nil {
				return err
			}
			updates["item_type_id"] = *patch.ItemTypeID
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Item{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ItemService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("item", id)
	}
	return nil
}

func (s *ItemService) ListTypes(ctx context.Context) ([]models.ItemType, error) {
	var types []models.ItemType
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("list item types: %w", err)
	}
	return types, nil
}

func (s *ItemService) CreateType(ctx context.Context, t *models.ItemType) error {
	t.TypeName = strings.TrimSpace(t.TypeName)
	if t.TypeName == "" {
		return invalid("typeName", "type name is required")
	}
	t.ID = 0
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create item type: %w", err)
	}
	return nil
}
