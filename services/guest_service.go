package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"hotel-backoffice/models"
)

const adultAge = 18

var nowFunc = time.Now

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// isAdult compares calendar dates: born on or before today minus 18 years.
func isAdult(dob time.Time, today time.Time) bool {
	cutoff := now.With(today).BeginningOfDay().AddDate(-adultAge, 0, 0)
	born := time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, cutoff.Location())
	return !born.After(cutoff)
}

func (s *GuestService) validate(tx *gorm.DB, g *models.Guest, selfID uint) error {
	g.FullName = strings.TrimSpace(g.FullName)
	g.Phone = strings.TrimSpace(g.Phone)
	g.IDNumber = strings.TrimSpace(g.IDNumber)
	g.Email = strings.TrimSpace(g.Email)

	if g.DateOfBirth == nil || g.DateOfBirth.IsZero() {
		return invalid("dateOfBirth", "date of birth is required")
	}
	if !isAdult(*g.DateOfBirth, nowFunc()) {
		return invalid("dateOfBirth", "guest must be at least %d years old", adultAge)
	}

	if g.Phone != "" {
		taken, err := guestFieldTaken(tx, "phone", g.Phone, selfID)
		if err != nil {
			return err
		}
		if taken {
			return invalid("phone", "phone %s is already used by another guest", g.Phone)
		}
	}
	if g.IDNumber != "" {
		taken, err := guestFieldTaken(tx, "id_number", g.IDNumber, selfID)
		if err != nil {
			return err
		}
		if taken {
			return invalid("idNumber", "id number %s is already used by another guest", g.IDNumber)
		}
	}
	return nil
}

func guestFieldTaken(tx *gorm.DB, column, value string, selfID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.Guest{}).Where(column+" = ?", value)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check guest %s: %w", column, err)
	}
	return count > 0, nil
}

func (s *GuestService) Create(ctx context.Context, guest *models.Guest) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guest.ID = 0
		if err := s.validate(tx, guest, 0); err != nil {
			return err
		}
		if err := tx.Create(guest).Error; err != nil {
			return fmt.Errorf("create guest: %w", err)
		}
		return nil
	})
}

// Update overwrites every editable field with the values in in.
func (s *GuestService) Update(ctx context.Context, id uint, in models.Guest) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&guest, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("guest", id)
			}
			return fmt.Errorf("load guest: %w", err)
		}

		guest.FullName = in.FullName
		guest.Email = in.Email
		guest.Phone = in.Phone
		guest.DateOfBirth = in.DateOfBirth
		guest.IDType = in.IDType
		guest.IDNumber = in.IDNumber

		if err := s.validate(tx, &guest, guest.ID); err != nil {
			return err
		}
		if err := tx.Save(&guest).Error; err != nil {
			return fmt.Errorf("save guest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.WithContext(ctx).Order("id DESC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

// Search matches q against the name (case-insensitive) or the id number,
// optionally narrowed to one id document type.
func (s *GuestService) Search(ctx context.Context, q, idType string) ([]models.Guest, error) {
	query := s.DB.WithContext(ctx).Model(&models.Guest{})
	if term := strings.TrimSpace(q); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR id_number LIKE ?", like, "%"+term+"%")
	}
	if t := strings.TrimSpace(idType); t != "" {
		query = query.Where("id_type = ?", t)
	}

	var guests []models.Guest
	if err := query.Order("full_name ASC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("search guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) Get(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("guest", id)
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return &guest, nil
}

func (s *GuestService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Guest{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete guest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("guest", id)
	}
	return nil
}
