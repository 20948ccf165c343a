package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-backoffice/models"
)

// InvoiceCreator opens the invoice for a completed stay inside tx.
type InvoiceCreator interface {
	CreateFromStayTx(tx *gorm.DB, stayID uint, createdBy *uint) (*models.Invoice, error)
}

// StayService turns reservations into stays at check-in and closes them at
// check-out.
type StayService struct {
	DB           *gorm.DB
	Invoices     InvoiceCreator
	Activity     *ActivityService
	Log          *logrus.Logger
	SystemUserID uint
}

func NewStayService(db *gorm.DB, invoices InvoiceCreator, activity *ActivityService, log *logrus.Logger, systemUserID uint) *StayService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StayService{DB: db, Invoices: invoices, Activity: activity, Log: log, SystemUserID: systemUserID}
}

func lockReservation(tx *gorm.DB, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation", id)
		}
		return nil, fmt.Errorf("load reservation: %w", err)
	}
	return &res, nil
}

// CheckIn creates one stay per booking that has a room assigned and marks
// those rooms occupied. A reservation that still has open stays is rejected.
func (s *StayService) CheckIn(ctx context.Context, reservationID uint) ([]models.Stay, error) {
	var stays []models.Stay
	actor := actorOr(ctx, s.SystemUserID)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, reservationID)
		if err != nil {
			return err
		}

		var open int64
		if err := tx.Model(&models.Stay{}).
			Where("reservation_id = ? AND status = ?", reservationID, models.StayCheckedIn).
			Count(&open).Error; err != nil {
			return fmt.Errorf("count open stays: %w", err)
		}
		if open > 0 {
			return invalid("reservationId", "reservation %d is already checked in", reservationID)
		}

		var bookings []models.ReservationRoom
		if err := tx.Where("reservation_id = ?", reservationID).Order("id ASC").Find(&bookings).Error; err != nil {
			return fmt.Errorf("load bookings: %w", err)
		}

		stays = make([]models.Stay, 0, len(bookings))
		for _, b := range bookings {
			if b.RoomID == nil {
				continue
			}
			now := time.Now()
			stay := models.Stay{
				ReservationID:   res.ID,
				GuestID:         res.GuestID,
				RoomID:          *b.RoomID,
				CheckinTime:     now,
				CheckoutTime:    now,
				TotalCost:       b.PriceSnapshot(),
				Status:          models.StayCheckedIn,
				CreatedByUserID: actor,
			}
			if err := tx.Omit(clause.Associations).Create(&stay).Error; err != nil {
				return fmt.Errorf("create stay: %w", err)
			}
			if err := setRoomStatusTx(tx, stay.RoomID, models.RoomOccupied); err != nil {
				return err
			}
			stays = append(stays, stay)

			s.Log.WithFields(logrus.Fields{
				"reservation_id": res.ID,
				"stay_id":        stay.ID,
				"room_id":        stay.RoomID,
			}).Info("guest checked in")
		}

		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).
			Update("status", models.ReservationCheckedIn).Error; err != nil {
			return fmt.Errorf("update reservation status: %w", err)
		}

		return s.Activity.Record(tx, Event{
			Entity:   "reservation",
			EntityID: res.ID,
			Action:   "stay.checked_in",
			Message:  fmt.Sprintf("%d stay(s) opened", len(stays)),
			Details:  map[string]interface{}{"stays": stayIDs(stays)},
			ActorID:  actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return stays, nil
}

// CheckOut completes every open stay, returns its room and bills it. A
// billing failure is logged and recorded but never fails the checkout.
func (s *StayService) CheckOut(ctx context.Context, reservationID uint) ([]models.Stay, error) {
	var stays []models.Stay
	explicit, hasActor := ActorFromContext(ctx)
	actor := actorOr(ctx, s.SystemUserID)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, reservationID)
		if err != nil {
			return err
		}

		if err := tx.Where("reservation_id = ? AND status = ?", reservationID, models.StayCheckedIn).
			Order("id ASC").Find(&stays).Error; err != nil {
			return fmt.Errorf("load open stays: %w", err)
		}

		for i := range stays {
			stay := &stays[i]
			stay.CheckoutTime = time.Now()
			stay.Status = models.StayCompleted
			if err := tx.Model(&models.Stay{}).Where("id = ?", stay.ID).Updates(map[string]interface{}{
				"checkout_time": stay.CheckoutTime,
				"status":        stay.Status,
			}).Error; err != nil {
				return fmt.Errorf("close stay %d: %w", stay.ID, err)
			}
			if err := setRoomStatusTx(tx, stay.RoomID, models.RoomReturned); err != nil {
				return err
			}

			var invoiceActor *uint
			if hasActor {
				invoiceActor = &explicit
			}
			s.bill(tx, stay, invoiceActor)
		}

		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).
			Update("status", models.ReservationCheckedOut).Error; err != nil {
			return fmt.Errorf("update reservation status: %w", err)
		}

		return s.Activity.Record(tx, Event{
			Entity:   "reservation",
			EntityID: res.ID,
			Action:   "stay.checked_out",
			Message:  fmt.Sprintf("%d stay(s) completed", len(stays)),
			Details:  map[string]interface{}{"stays": stayIDs(stays)},
			ActorID:  actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return stays, nil
}

// bill opens the invoice in a savepoint. Failures, including failing to
// record the failure, are logged and never reach the checkout.
func (s *StayService) bill(tx *gorm.DB, stay *models.Stay, createdBy *uint) {
	if s.Invoices == nil {
		return
	}
	var inv *models.Invoice
	err := tx.Transaction(func(inner *gorm.DB) error {
		var err error
		inv, err = s.Invoices.CreateFromStayTx(inner, stay.ID, createdBy)
		return err
	})
	if err == nil {
		s.Log.WithFields(logrus.Fields{
			"stay_id":    stay.ID,
			"invoice_id": inv.ID,
		}).Info("invoice created at checkout")
		return
	}

	fields := logrus.Fields{
		"event":          "invoice.create_failed",
		"reservation_id": stay.ReservationID,
		"stay_id":        stay.ID,
		"room_id":        stay.RoomID,
	}
	s.Log.WithFields(fields).WithError(err).Error("checkout continued without invoice")

	recErr := tx.Transaction(func(inner *gorm.DB) error {
		return s.Activity.Record(inner, Event{
			Entity:   "stay",
			EntityID: stay.ID,
			Action:   "invoice.create_failed",
			Level:    models.ActivityError,
			Message:  err.Error(),
			Details:  map[string]interface{}{"reservation_id": stay.ReservationID},
			ActorID:  createdBy,
		})
	})
	if recErr != nil {
		s.Log.WithFields(fields).WithError(recErr).Error("record billing failure")
	}
}

func (s *StayService) Get(ctx context.Context, id uint) (*models.Stay, error) {
	var stay models.Stay
	if err := s.DB.WithContext(ctx).Preload("Room").Preload("Guest").First(&stay, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("stay", id)
		}
		return nil, fmt.Errorf("get stay: %w", err)
	}
	return &stay, nil
}

func (s *StayService) ListByReservation(ctx context.Context, reservationID uint) ([]models.Stay, error) {
	var out []models.Stay
	if err := s.DB.WithContext(ctx).Preload("Room").
		Where("reservation_id = ?", reservationID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list stays by reservation: %w", err)
	}
	return out, nil
}

func (s *StayService) ListByGuest(ctx context.Context, guestID uint) ([]models.Stay, error) {
	var out []models.Stay
	if err := s.DB.WithContext(ctx).Preload("Room").
		Where("guest_id = ?", guestID).Order("checkin_time DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list stays by guest: %w", err)
	}
	return out, nil
}

func stayIDs(stays []models.Stay) []uint {
	ids := make([]uint, 0, len(stays))
	for _, s := range stays {
		ids = append(ids, s.ID)
	}
	return ids
}
