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

// ReservationService owns reservations and their room bookings, and drives
// room status while a reservation is made, changed or cancelled.
type ReservationService struct {
	DB           *gorm.DB
	Activity     *ActivityService
	SystemUserID uint
}

func NewReservationService(db *gorm.DB, activity *ActivityService, systemUserID uint) *ReservationService {
	return &ReservationService{DB: db, Activity: activity, SystemUserID: systemUserID}
}

type RoomBookingInput struct {
	RoomID        *uint
	RoomTypeID    *uint
	Price         *float64
	PricePerNight *float64
}

type ReservationInput struct {
	GuestID         *uint
	CreatedByUserID *uint
	Status          string
	ArrivalDate     *time.Time
	DepartureDate   *time.Time
	NumGuests       int
	TotalEstimated  *float64
	CreatedAt       *time.Time
	Rooms           []RoomBookingInput
}

func (s *ReservationService) preloadAll(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Guest").
		Preload("Rooms.Room.RoomType").
		Preload("Rooms.Room.Status").
		Preload("Rooms.RoomType")
}

// Create validates every booking before touching room status, persists the
// reservation with its bookings, then marks the booked rooms.
func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	var res models.Reservation

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.GuestID != nil {
			if err := ensureExists(tx, &models.Guest{}, "guest", *in.GuestID); err != nil {
				return err
			}
		}
		createdBy, err := s.resolveCreator(ctx, tx, in.CreatedByUserID)
		if err != nil {
			return err
		}

		bookings, err := buildBookings(tx, in.Rooms, nil)
		if err != nil {
			return err
		}

		res = models.Reservation{
			GuestID:         in.GuestID,
			Status:          strings.TrimSpace(in.Status),
			ArrivalDate:     in.ArrivalDate,
			DepartureDate:   in.DepartureDate,
			NumGuests:       in.NumGuests,
			TotalEstimated:  in.TotalEstimated,
			CreatedByUserID: createdBy,
		}
		if in.CreatedAt != nil && !in.CreatedAt.IsZero() {
			res.CreatedAt = *in.CreatedAt
		} else {
			res.CreatedAt = time.Now()
		}

		if err := tx.Omit(clause.Associations).Create(&res).Error; err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		if err := saveBookings(tx, res.ID, bookings); err != nil {
			return err
		}
		if err := markBooked(tx, bookings); err != nil {
			return err
		}

		return s.Activity.Record(tx, Event{
			Entity:   "reservation",
			EntityID: res.ID,
			Action:   "reservation.created",
			Message:  fmt.Sprintf("reservation %s created with %d room(s)", res.ReferenceCode, len(bookings)),
			Details:  map[string]interface{}{"rooms": bookedRoomIDs(bookings)},
			ActorID:  createdBy,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, res.ID)
}

// Update overwrites the scalar fields and replaces the whole booking set.
// Rooms that are occupied keep their status when released; a "cancelled"
// status forces every old and new booked room back to available at the end.
func (s *ReservationService) Update(ctx context.Context, id uint, in ReservationInput) (*models.Reservation, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Rooms").First(&res, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation", id)
			}
			return fmt.Errorf("load reservation: %w", err)
		}

		res.ArrivalDate = in.ArrivalDate
		res.DepartureDate = in.DepartureDate
		res.NumGuests = in.NumGuests
		res.TotalEstimated = in.TotalEstimated
		if st := strings.TrimSpace(in.Status); st != "" {
			res.Status = st
		}
		if in.GuestID != nil {
			if err := ensureExists(tx, &models.Guest{}, "guest", *in.GuestID); err != nil {
				return err
			}
			res.GuestID = in.GuestID
		}
		if in.CreatedByUserID != nil {
			if err := ensureExists(tx, &models.User{}, "user", *in.CreatedByUserID); err != nil {
				return err
			}
			res.CreatedByUserID = in.CreatedByUserID
		}

		// release old rooms, leaving occupied ones alone
		own := map[uint]bool{}
		for _, old := range res.Rooms {
			if old.RoomID == nil {
				continue
			}
			own[*old.RoomID] = true
			current, err := currentRoomStatusTx(tx, *old.RoomID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return err
			}
			if current.IsOccupied() {
				continue
			}
			if err := setRoomStatusTx(tx, *old.RoomID, models.RoomAvailable); err != nil {
				return err
			}
		}
		if err := tx.Where("reservation_id = ?", res.ID).Delete(&models.ReservationRoom{}).Error; err != nil {
			return fmt.Errorf("delete old bookings: %w", err)
		}

		bookings, err := buildBookings(tx, in.Rooms, own)
		if err != nil {
			return err
		}

		res.Rooms = nil
		if err := tx.Omit(clause.Associations).Save(&res).Error; err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		if err := saveBookings(tx, res.ID, bookings); err != nil {
			return err
		}
		if err := markBooked(tx, bookings); err != nil {
			return err
		}

		action := "reservation.updated"
		if strings.EqualFold(res.Status, models.ReservationCancelled) {
			action = "reservation.cancelled"
			// old rooms too: an occupied room was skipped by the release above
			for _, b := range bookings {
				if b.RoomID != nil {
					own[*b.RoomID] = true
				}
			}
			for roomID := range own {
				if err := setRoomStatusTx(tx, roomID, models.RoomAvailable); err != nil {
					return err
				}
			}
		}

		return s.Activity.Record(tx, Event{
			Entity:   "reservation",
			EntityID: res.ID,
			Action:   action,
			Message:  fmt.Sprintf("reservation %s now %s", res.ReferenceCode, res.Status),
			Details:  map[string]interface{}{"status": res.Status, "rooms": bookedRoomIDs(bookings)},
			ActorID:  actorOr(ctx, s.SystemUserID),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// List filters by guest name substring (case-insensitive) and exact status.
func (s *ReservationService) List(ctx context.Context, guestName, status string) ([]models.Reservation, error) {
	q := s.preloadAll(s.DB.WithContext(ctx).Model(&models.Reservation{}))

	if name := strings.ToLower(strings.TrimSpace(guestName)); name != "" {
		q = q.Joins("LEFT JOIN guests ON guests.id = reservations.guest_id").
			Where("LOWER(guests.full_name) LIKE ?", "%"+name+"%")
	}
	if st := strings.TrimSpace(status); st != "" {
		q = q.Where("reservations.status = ?", st)
	}

	var out []models.Reservation
	if err := q.Order("reservations.created_at DESC").Order("reservations.id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

func (s *ReservationService) ListByGuest(ctx context.Context, guestID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.preloadAll(s.DB.WithContext(ctx)).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations by guest: %w", err)
	}
	return out, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := s.preloadAll(s.DB.WithContext(ctx)).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation", id)
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &res, nil
}

// Delete removes the reservation and its bookings. Room status and stays are
// left untouched.
func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Reservation{}, "reservation", id); err != nil {
			return err
		}
		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationRoom{}).Error; err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		if err := tx.Delete(&models.Reservation{}, id).Error; err != nil {
			return fmt.Errorf("delete reservation: %w", err)
		}
		return nil
	})
}

func (s *ReservationService) resolveCreator(ctx context.Context, tx *gorm.DB, explicit *uint) (*uint, error) {
	if explicit != nil {
		if err := ensureExists(tx, &models.User{}, "user", *explicit); err != nil {
			return nil, err
		}
		return explicit, nil
	}
	return actorOr(ctx, s.SystemUserID), nil
}

// buildBookings resolves and validates each requested booking. A room must be
// available; rooms in allowOccupied (already held by this reservation) may
// also be occupied.
func buildBookings(tx *gorm.DB, in []RoomBookingInput, allowOccupied map[uint]bool) ([]models.ReservationRoom, error) {
	out := make([]models.ReservationRoom, 0, len(in))
	seen := map[uint]bool{}

	for i, b := range in {
		booking := models.ReservationRoom{
			RoomTypeID:    b.RoomTypeID,
			Price:         b.Price,
			PricePerNight: b.PricePerNight,
		}

		if b.RoomID != nil {
			var room models.Room
			if err := tx.Preload("Status").First(&room, *b.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, notFound("room", *b.RoomID)
				}
				return nil, fmt.Errorf("load room: %w", err)
			}
			if seen[room.ID] {
				return nil, invalid(fmt.Sprintf("rooms[%d].roomId", i), "room %s is booked twice", room.RoomNumber)
			}
			seen[room.ID] = true

			status := room.StatusName()
			if status != models.RoomAvailable && !(allowOccupied[room.ID] && status.IsOccupied()) {
				return nil, invalid(fmt.Sprintf("rooms[%d].roomId", i), "room %s is not available (status %q)", room.RoomNumber, room.Status.Name)
			}
			id := room.ID
			booking.RoomID = &id
			if booking.RoomTypeID == nil && room.RoomTypeID != 0 {
				rt := room.RoomTypeID
				booking.RoomTypeID = &rt
			}
		}

		if b.RoomTypeID != nil {
			if err := ensureExists(tx, &models.RoomType{}, "room type", *b.RoomTypeID); err != nil {
				return nil, err
			}
		}
		out = append(out, booking)
	}
	return out, nil
}

func saveBookings(tx *gorm.DB, reservationID uint, bookings []models.ReservationRoom) error {
	if len(bookings) == 0 {
		return nil
	}
	for i := range bookings {
		bookings[i].ReservationID = reservationID
	}
	if err := tx.Omit(clause.Associations).Create(&bookings).Error; err != nil {
		return fmt.Errorf("create bookings: %w", err)
	}
	return nil
}

// markBooked flips booked rooms to "booked" unless a guest is already in them.
func markBooked(tx *gorm.DB, bookings []models.ReservationRoom) error {
	for _, b := range bookings {
		if b.RoomID == nil {
			continue
		}
		current, err := currentRoomStatusTx(tx, *b.RoomID)
		if err != nil {
			return err
		}
		if current.IsOccupied() {
			continue
		}
		if err := setRoomStatusTx(tx, *b.RoomID, models.RoomBooked); err != nil {
			return err
		}
	}
	return nil
}

func bookedRoomIDs(bookings []models.ReservationRoom) []uint {
	ids := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		if b.RoomID != nil {
			ids = append(ids, *b.RoomID)
		}
	}
	return ids
}

// ensureExists returns a NotFoundError when no row of model has the id.
func ensureExists(tx *gorm.DB, model interface{}, entity string, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("lookup %s: %w", entity, err)
	}
	if count == 0 {
		return notFound(entity, id)
	}
	return nil
}
