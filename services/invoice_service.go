package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-backoffice/models"
)

// InvoiceService bills completed stays and collects service line items.
type InvoiceService struct {
	DB           *gorm.DB
	Activity     *ActivityService
	Currency     string
	SystemUserID uint
}

func NewInvoiceService(db *gorm.DB, activity *ActivityService, currency string, systemUserID uint) *InvoiceService {
	if strings.TrimSpace(currency) == "" {
		currency = models.DefaultCurrency
	}
	return &InvoiceService{DB: db, Activity: activity, Currency: currency, SystemUserID: systemUserID}
}

// InvoicePatch applies only the fields that are set.
type InvoicePatch struct {
	Balance       *float64
	Currency      *string
	Status        *string
	PaymentMethod *string
}

func (s *InvoiceService) CreateFromStay(ctx context.Context, stayID uint, createdBy *uint) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = s.CreateFromStayTx(tx, stayID, createdBy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateFromStayTx opens the invoice of a stay inside the caller's transaction.
// The acting user is createdBy, else the reservation's creator, else the
// system user.
func (s *InvoiceService) CreateFromStayTx(tx *gorm.DB, stayID uint, createdBy *uint) (*models.Invoice, error) {
	var stay models.Stay
	if err := tx.Preload("Reservation").First(&stay, stayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("stay", stayID)
		}
		return nil, fmt.Errorf("load stay: %w", err)
	}

	var existing int64
	if err := tx.Model(&models.Invoice{}).Where("stay_id = ?", stayID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing invoice: %w", err)
	}
	if existing > 0 {
		return nil, invalid("stayId", "stay %d already has an invoice", stayID)
	}

	balance := 0.0
	if stay.TotalCost != nil {
		balance = *stay.TotalCost
	}

	inv := models.Invoice{
		StayID:          stay.ID,
		GuestID:         stay.GuestID,
		Currency:        s.Currency,
		Balance:         balance,
		Status:          models.InvoiceUnpaid,
		CreatedByUserID: s.invoiceActor(tx, createdBy, stay.Reservation),
		CreatedAt:       time.Now(),
	}
	if err := tx.Omit(clause.Associations).Create(&inv).Error; err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	if err := s.Activity.Record(tx, Event{
		Entity:   "invoice",
		EntityID: inv.ID,
		Action:   "invoice.created",
		Message:  fmt.Sprintf("invoice opened for stay %d", stay.ID),
		Details:  map[string]interface{}{"stay_id": stay.ID, "balance": inv.Balance, "currency": inv.Currency},
		ActorID:  inv.CreatedByUserID,
	}); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvoiceService) invoiceActor(tx *gorm.DB, explicit *uint, res *models.Reservation) *uint {
	if explicit != nil {
		if err := ensureExists(tx, &models.User{}, "user", *explicit); err == nil {
			return explicit
		}
	}
	if res != nil && res.CreatedByUserID != nil {
		return res.CreatedByUserID
	}
	if s.SystemUserID == 0 {
		return nil
	}
	id := s.SystemUserID
	return &id
}

// AddServiceItem posts a catalog item on an invoice. amount defaults to the
// item's price. The invoice balance is not touched; it is settled at payment.
func (s *InvoiceService) AddServiceItem(ctx context.Context, invoiceID, itemID uint, amount *float64, postedBy *uint) (*models.InvoiceItem, error) {
	var line models.InvoiceItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Invoice{}, "invoice", invoiceID); err != nil {
			return err
		}
		var item models.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("item", itemID)
			}
			return fmt.Errorf("load item: %w", err)
		}

		value := item.Price
		if amount != nil {
			value = *amount
		}
		if value < 0 {
			return invalid("amount", "must not be negative")
		}

		// the poster is optional; an unknown id is dropped
		poster := postedBy
		if poster == nil {
			if id, ok := ActorFromContext(ctx); ok {
				poster = &id
			}
		}
		if poster != nil && ensureExists(tx, &models.User{}, "user", *poster) != nil {
			poster = nil
		}

		line = models.InvoiceItem{
			InvoiceID:      invoiceID,
			ItemID:         item.ID,
			Amount:         value,
			PostedAt:       time.Now(),
			PostedByUserID: poster,
		}
		if err := tx.Omit(clause.Associations).Create(&line).Error; err != nil {
			return fmt.Errorf("create invoice item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *InvoiceService) Update(ctx context.Context, id uint, patch InvoicePatch) (*models.Invoice, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("invoice", id)
			}
			return fmt.Errorf("load invoice: %w", err)
		}

		updates := map[string]interface{}{}
		if patch.Balance != nil {
			updates["balance"] = *patch.Balance
		}
		if patch.Currency != nil {
			updates["currency"] = strings.ToUpper(strings.TrimSpace(*patch.Currency))
		}
		if patch.Status != nil {
			updates["status"] = strings.TrimSpace(*patch.Status)
		}
		if patch.PaymentMethod != nil && strings.TrimSpace(*patch.PaymentMethod) != "" {
			updates["payment_method"] = strings.TrimSpace(*patch.PaymentMethod)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&inv).Updates(updates).Error; err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.WithContext(ctx).Preload("Items.Item").Preload("Guest").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("invoice", id)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (s *InvoiceService) GetByStay(ctx context.Context, stayID uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.WithContext(ctx).Preload("Items.Item").Where("stay_id = ?", stayID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("invoice for stay", stayID)
		}
		return nil, fmt.Errorf("get invoice by stay: %w", err)
	}
	return &inv, nil
}

func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := s.DB.WithContext(ctx).Preload("Guest").Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

func (s *InvoiceService) ListByGuest(ctx context.Context, guestID uint) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := s.DB.WithContext(ctx).Where("guest_id = ?", guestID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list invoices by guest: %w", err)
	}
	return out, nil
}

func (s *InvoiceService) ListItems(ctx context.Context, invoiceID uint) ([]models.InvoiceItem, error) {
	var out []models.InvoiceItem
	err := s.DB.WithContext(ctx).
		Preload("Item").
		Where("invoice_id = ?", invoiceID).
		Order("posted_date ASC").Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	return out, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Invoice{}, "invoice", id); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}
		if err := tx.Delete(&models.Invoice{}, id).Error; err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}
		return nil
	})
}
