package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-backoffice/models"
)

// ResolveReference maps the reference code handed to guests to a reservation id.
func (s *ReservationService) ResolveReference(ctx context.Context, ref string) (uint, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return 0, invalid("referenceCode", "reference code is required")
	}

	var out struct {
		ID uint `gorm:"column:id"`
	}
	if err := s.DB.WithContext(ctx).
		Raw("SELECT id FROM reservations WHERE reference_code = ? LIMIT 1", ref).
		Scan(&out).Error; err != nil {
		return 0, fmt.Errorf("lookup reservation reference: %w", err)
	}
	if out.ID == 0 {
		return 0, notFound("reservation", ref)
	}
	return out.ID, nil
}

func (s *ReservationService) GetByReference(ctx context.Context, ref string) (*models.Reservation, error) {
	id, err := s.ResolveReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
