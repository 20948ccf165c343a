package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"hotel-backoffice/models"
)

const recentReservationLimit = 5

type RoomStatusCounts struct {
	Available   int64 `json:"available"`
	Occupied    int64 `json:"occupied"`
	Booked      int64 `json:"booked"`
	Maintenance int64 `json:"maintenance"`
	Cleaning    int64 `json:"cleaning"`
}

type RecentReservation struct {
	ID            uint     `json:"id"`
	ReferenceCode string   `json:"referenceCode"`
	GuestName     string   `json:"guestName"`
	Rooms         []string `json:"rooms"`
	ArrivalDate   string   `json:"arrivalDate"`
	DepartureDate string   `json:"departureDate"`
	Nights        int      `json:"nights"`
	TotalAmount   float64  `json:"totalAmount"`
	Status        string   `json:"status"`
}

type TopEntry struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Count int64  `json:"count"`
}

type DashboardOverview struct {
	TotalRooms       int64            `json:"totalRooms"`
	RoomStatus       RoomStatusCounts `json:"roomStatus"`
	TotalGuests      int64            `json:"totalGuests"`
	CheckInsToday    int64            `json:"checkInsToday"`
	CheckOutsToday   int64            `json:"checkOutsToday"`
	PendingCheckIns  int64            `json:"pendingCheckIns"`
	PendingCheckOuts int64            `json:"pendingCheckOuts"`
	OccupancyRate    float64          `json:"occupancyRate"`

	TodayRevenue     float64 `json:"todayRevenue"`
	YesterdayRevenue float64 `json:"yesterdayRevenue"`
	MonthRevenue     float64 `json:"monthRevenue"`
	YearRevenue      float64 `json:"yearRevenue"`
	InvoicesToday    int64   `json:"invoicesToday"`
	AverageDailyRate float64 `json:"averageDailyRate"`
	Currency         string  `json:"currency"`

	RecentReservations []RecentReservation `json:"recentReservations"`
	TopRoom            *TopEntry           `json:"topRoom"`
	TopService         *TopEntry           `json:"topService"`
}

// DashboardService is read only.
type DashboardService struct {
	DB       *gorm.DB
	Currency string
	Clock    func() time.Time
}

func NewDashboardService(db *gorm.DB, currency string) *DashboardService {
	if strings.TrimSpace(currency) == "" {
		currency = models.DefaultCurrency
	}
	return &DashboardService{DB: db, Currency: currency, Clock: time.Now}
}

func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	db := s.DB.WithContext(ctx)
	clock := s.Clock
	if clock == nil {
		clock = time.Now
	}
	at := now.With(clock())
	today := at.BeginningOfDay()
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	out := &DashboardOverview{Currency: s.Currency}

	// 1. rooms by status bucket
	var rooms []models.Room
	if err := db.Preload("Status").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	out.TotalRooms = int64(len(rooms))
	for _, r := range rooms {
		name, ok := models.ParseRoomStatus(r.Status.Name)
		if !ok {
			continue
		}
		switch name {
		case models.RoomAvailable, models.RoomReturned:
			out.RoomStatus.Available++
		case models.RoomOccupied:
			out.RoomStatus.Occupied++
		case models.RoomBooked:
			out.RoomStatus.Booked++
		case models.RoomMaintenance:
			out.RoomStatus.Maintenance++
		case models.RoomCleaning:
			out.RoomStatus.Cleaning++
		}
	}

	// 2-4. guests, today's movements, pending work
	if err := db.Model(&models.Guest{}).Count(&out.TotalGuests).Error; err != nil {
		return nil, fmt.Errorf("count guests: %w", err)
	}
	if err := db.Model(&models.Stay{}).
		Where("checkin_time >= ? AND checkin_time < ?", today, tomorrow).
		Count(&out.CheckInsToday).Error; err != nil {
		return nil, fmt.Errorf("count check-ins: %w", err)
	}
	if err := db.Model(&models.Stay{}).
		Where("status = ? AND checkout_time >= ? AND checkout_time < ?", models.StayCompleted, today, tomorrow).
		Count(&out.CheckOutsToday).Error; err != nil {
		return nil, fmt.Errorf("count check-outs: %w", err)
	}
	if err := db.Model(&models.Reservation{}).
		Where("LOWER(status) = ?", models.ReservationBooking).
		Count(&out.PendingCheckIns).Error; err != nil {
		return nil, fmt.Errorf("count pending check-ins: %w", err)
	}
	if err := db.Model(&models.Stay{}).
		Where("LOWER(status) = ?", models.StayCheckedIn).
		Count(&out.PendingCheckOuts).Error; err != nil {
		return nil, fmt.Errorf("count pending check-outs: %w", err)
	}

	// 5. occupancy
	out.OccupancyRate = occupancyRate(out.RoomStatus.Occupied, out.TotalRooms)

	// 6. revenue windows
	var err error
	if out.TodayRevenue, err = s.paidRevenue(db, today, tomorrow); err != nil {
		return nil, err
	}
	if out.YesterdayRevenue, err = s.paidRevenue(db, yesterday, today); err != nil {
		return nil, err
	}
	if out.MonthRevenue, err = s.paidRevenue(db, at.BeginningOfMonth(), tomorrow); err != nil {
		return nil, err
	}
	if out.YearRevenue, err = s.paidRevenue(db, at.BeginningOfYear(), tomorrow); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Invoice{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&out.InvoicesToday).Error; err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}

	// 7. ADR
	out.AverageDailyRate = averageDailyRate(out.TodayRevenue, out.RoomStatus.Occupied)

	// 8. currency of the latest invoice
	var latest models.Invoice
	err = db.Order("created_at DESC").Order("id DESC").First(&latest).Error
	switch {
	case err == nil:
		if c := strings.TrimSpace(latest.Currency); c != "" {
			out.Currency = c
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("latest invoice: %w", err)
	}

	// 9. recent reservations
	if out.RecentReservations, err = s.recentReservations(db); err != nil {
		return nil, err
	}

	// 10. most booked room, most used service
	if out.TopRoom, err = topRoom(db); err != nil {
		return nil, err
	}
	if out.TopService, err = topService(db); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) paidRevenue(db *gorm.DB, from, to time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(balance), 0)").
		Where("LOWER(status) = ? AND created_at >= ? AND created_at < ?", models.InvoicePaid, from, to).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum revenue: %w", err)
	}
	return total, nil
}

func (s *DashboardService) recentReservations(db *gorm.DB) ([]RecentReservation, error) {
	var rows []models.Reservation
	err := db.
		Preload("Guest").
		Preload("Rooms.Room").
		Preload("Rooms.RoomType").
		Order("created_at DESC").Order("id DESC").
		Limit(recentReservationLimit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent reservations: %w", err)
	}

	out := make([]RecentReservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, summarizeReservation(r))
	}
	return out, nil
}

func summarizeReservation(r models.Reservation) RecentReservation {
	rr := RecentReservation{
		ID:            r.ID,
		ReferenceCode: r.ReferenceCode,
		GuestName:     "walk-in guest",
		Rooms:         []string{},
		Status:        r.Status,
		Nights:        nights(r.ArrivalDate, r.DepartureDate),
	}
	if r.Guest != nil && strings.TrimSpace(r.Guest.FullName) != "" {
		rr.GuestName = r.Guest.FullName
	}
	if r.ArrivalDate != nil {
		rr.ArrivalDate = r.ArrivalDate.Format("2006-01-02")
	}
	if r.DepartureDate != nil {
		rr.DepartureDate = r.DepartureDate.Format("2006-01-02")
	}

	var sum float64
	for _, b := range r.Rooms {
		switch {
		case b.Room != nil && b.Room.RoomNumber != "":
			rr.Rooms = append(rr.Rooms, b.Room.RoomNumber)
		case b.RoomType != nil && b.RoomType.Name != "":
			rr.Rooms = append(rr.Rooms, b.RoomType.Name)
		}
		if p := b.PriceSnapshot(); p != nil {
			sum += *p
		}
	}
	sort.Strings(rr.Rooms)

	if r.TotalEstimated != nil {
		rr.TotalAmount = *r.TotalEstimated
	} else {
		rr.TotalAmount = sum
	}
	return rr
}

type groupCount struct {
	ID  uint
	Cnt int64
}

func topRoom(db *gorm.DB) (*TopEntry, error) {
	var top groupCount
	res := db.Model(&models.ReservationRoom{}).
		Select("room_id AS id, COUNT(*) AS cnt").
		Where("room_id IS NOT NULL").
		Group("room_id").
		Order("cnt DESC").
		Limit(1).
		Scan(&top)
	if res.Error != nil {
		return nil, fmt.Errorf("top room: %w", res.Error)
	}
	if res.RowsAffected == 0 || top.ID == 0 {
		return nil, nil
	}

	var room models.Room
	if err := db.First(&room, top.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("top room lookup: %w", err)
	}
	return &TopEntry{ID: room.ID, Name: room.RoomNumber, Image: room.Image, Count: top.Cnt}, nil
}

func topService(db *gorm.DB) (*TopEntry, error) {
	var top groupCount
	res := db.Model(&models.InvoiceItem{}).
		Select("item_id AS id, COUNT(*) AS cnt").
		Group("item_id").
		Order("cnt DESC").
		Limit(1).
		Scan(&top)
	if res.Error != nil {
		return nil, fmt.Errorf("top service: %w", res.Error)
	}
	if res.RowsAffected == 0 || top.ID == 0 {
		return nil, nil
	}

	var item models.Item
	if err := db.First(&item, top.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("top service lookup: %w", err)
	}
	return &TopEntry{ID: item.ID, Name: item.Name, Image: item.Image, Count: top.Cnt}, nil
}

// occupancyRate is occupied/total as a percentage with one decimal.
func occupancyRate(occupied, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*100*10) / 10
}

func averageDailyRate(revenue float64, occupied int64) float64 {
	if occupied <= 0 {
		return 0
	}
	return math.Round(revenue/float64(occupied)*100) / 100
}

// nights counts calendar days between arrival and departure, at least one.
// Missing dates give zero.
func nights(arrival, departure *time.Time) int {
	if arrival == nil || departure == nil {
		return 0
	}
	a := now.With(*arrival).BeginningOfDay()
	d := now.With(departure.In(arrival.Location())).BeginningOfDay()
	n := int(math.Round(d.Sub(a).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}
