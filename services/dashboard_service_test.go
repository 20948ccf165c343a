package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backoffice/models"
)

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, occupancyRate(0, 0))
	assert.Equal(t, 40.0, occupancyRate(2, 5))
	assert.Equal(t, 33.3, occupancyRate(1, 3))
	assert.Equal(t, 66.7, occupancyRate(2, 3))
}

func TestAverageDailyRate(t *testing.T) {
	assert.Equal(t, 0.0, averageDailyRate(500, 0))
	assert.Equal(t, 166.67, averageDailyRate(500, 3))
}

func TestNights(t *testing.T) {
	arrive := time.Date(2026, 3, 1, 14, 0, 0, 0, time.Local)

	assert.Equal(t, 0, nights(nil, &arrive))
	assert.Equal(t, 0, nights(&arrive, nil))
	assert.Equal(t, 1, nights(&arrive, &arrive))
	leave := time.Date(2026, 3, 4, 11, 0, 0, 0, time.Local)
	assert.Equal(t, 3, nights(&arrive, &leave))
	before := arrive.AddDate(0, 0, -2)
	assert.Equal(t, 1, nights(&arrive, &before))
}

func TestSummarizeReservation(t *testing.T) {
	arrive := time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local)
	leave := arrive.AddDate(0, 0, 2)
	r := models.Reservation{
		ID:            7,
		Status:        models.ReservationBooking,
		ArrivalDate:   &arrive,
		DepartureDate: &leave,
		Rooms: []models.ReservationRoom{
			{Room: &models.Room{RoomNumber: "305"}, Price: floatPtr(100)},
			{Room: &models.Room{RoomNumber: "104"}, PricePerNight: floatPtr(50)},
			{RoomType: &models.RoomType{Name: "Suite"}},
		},
	}

	got := summarizeReservation(r)
	assert.Equal(t, "walk-in guest", got.GuestName)
	assert.Equal(t, []string{"104", "305", "Suite"}, got.Rooms)
	assert.Equal(t, 2, got.Nights)
	assert.Equal(t, 150.0, got.TotalAmount)
	assert.Equal(t, "2026-05-10", got.ArrivalDate)
	assert.Equal(t, "2026-05-12", got.DepartureDate)

	r.TotalEstimated = floatPtr(999)
	r.Guest = &models.Guest{FullName: "Pham D"}
	got = summarizeReservation(r)
	assert.Equal(t, 999.0, got.TotalAmount)
	assert.Equal(t, "Pham D", got.GuestName)
}

func TestDashboardEmpty(t *testing.T) {
	svc := NewDashboardService(newTestDB(t), "")
	out, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Zero(t, out.TotalRooms)
	assert.Equal(t, 0.0, out.OccupancyRate)
	assert.Equal(t, 0.0, out.AverageDailyRate)
	assert.Equal(t, "VND", out.Currency)
	assert.Empty(t, out.RecentReservations)
	assert.Nil(t, out.TopRoom)
	assert.Nil(t, out.TopService)
}

func TestDashboardOverview(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log, _ := test.NewNullLogger()

	activity := NewActivityService(db, log)
	invoices := NewInvoiceService(db, activity, "", testSystemUserID)
	reservations := NewReservationService(db, activity, testSystemUserID)
	stays := NewStayService(db, invoices, activity, log, testSystemUserID)

	rt := seedRoomType(t, db, "Standard", 100)
	r1 := seedRoom(t, db, "101", rt, models.RoomAvailable)
	r2 := seedRoom(t, db, "102", rt, models.RoomAvailable)
	seedRoom(t, db, "103", rt, models.RoomMaintenance)
	seedRoom(t, db, "104", rt, models.RoomCleaning)
	seedRoom(t, db, "105", rt, models.RoomReturned)
	guest := seedGuest(t, db, "Hoang E", "0988")

	// r1: checked in and out, invoice paid
	done, err := reservations.Create(ctx, ReservationInput{GuestID: &guest.ID, Rooms: []RoomBookingInput{{RoomID: &r1.ID, Price: floatPtr(300)}}})
	require.NoError(t, err)
	_, err = stays.CheckIn(ctx, done.ID)
	require.NoError(t, err)
	closed, err := stays.CheckOut(ctx, done.ID)
	require.NoError(t, err)
	inv, err := invoices.GetByStay(ctx, closed[0].ID)
	require.NoError(t, err)
	paid := "PAID"
	_, err = invoices.Update(ctx, inv.ID, InvoicePatch{Status: &paid})
	require.NoError(t, err)

	minibar := models.Item{Name: "Minibar", Price: 20, Image: "minibar.png"}
	require.NoError(t, db.Create(&minibar).Error)
	_, err = invoices.AddServiceItem(ctx, inv.ID, minibar.ID, nil, nil)
	require.NoError(t, err)

	// housekeeping turns the room around, then r1 is booked and checked in
	// again, which makes it the most booked room
	require.NoError(t, setRoomStatusTx(db, r1.ID, models.RoomAvailable))
	again, err := reservations.Create(ctx, ReservationInput{Rooms: []RoomBookingInput{{RoomID: &r1.ID, Price: floatPtr(310)}}})
	require.NoError(t, err)
	_, err = stays.CheckIn(ctx, again.ID)
	require.NoError(t, err)

	// r2: booked only
	_, err = reservations.Create(ctx, ReservationInput{GuestID: &guest.ID, Rooms: []RoomBookingInput{{RoomID: &r2.ID, Price: floatPtr(120)}}})
	require.NoError(t, err)

	svc := NewDashboardService(db, "")
	out, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(5), out.TotalRooms)
	assert.Equal(t, RoomStatusCounts{Available: 1, Occupied: 1, Booked: 1, Maintenance: 1, Cleaning: 1}, out.RoomStatus)
	assert.Equal(t, int64(1), out.TotalGuests)
	assert.Equal(t, int64(2), out.CheckInsToday)
	assert.Equal(t, int64(1), out.CheckOutsToday)
	assert.Equal(t, int64(1), out.PendingCheckIns)
	assert.Equal(t, int64(1), out.PendingCheckOuts)
	assert.Equal(t, 20.0, out.OccupancyRate)

	assert.Equal(t, 300.0, out.TodayRevenue)
	assert.Equal(t, 0.0, out.YesterdayRevenue)
	assert.Equal(t, 300.0, out.MonthRevenue)
	assert.Equal(t, 300.0, out.YearRevenue)
	assert.Equal(t, int64(1), out.InvoicesToday)
	assert.Equal(t, 300.0, out.AverageDailyRate)
	assert.Equal(t, "VND", out.Currency)

	require.Len(t, out.RecentReservations, 3)
	require.NotNil(t, out.TopRoom)
	assert.Equal(t, "101", out.TopRoom.Name)
	assert.Equal(t, int64(2), out.TopRoom.Count)
	require.NotNil(t, out.TopService)
	assert.Equal(t, "Minibar", out.TopService.Name)
	assert.Equal(t, "minibar.png", out.TopService.Image)
}

func TestDashboardRecentLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reservations := NewReservationService(db, nil, testSystemUserID)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		_, err := reservations.Create(ctx, ReservationInput{CreatedAt: &created, NumGuests: i})
		require.NoError(t, err)
	}

	out, err := NewDashboardService(db, "USD").Overview(ctx)
	require.NoError(t, err)
	require.Len(t, out.RecentReservations, 5)
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, 0, out.RecentReservations[0].Nights)
	assert.Equal(t, int64(7), out.PendingCheckIns)
}

func TestDashboardPendingCountsIgnoreCase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reservations := NewReservationService(db, nil, testSystemUserID)

	for _, st := range []string{"Booking", "BOOKING", "booking", "Cancelled"} {
		_, err := reservations.Create(ctx, ReservationInput{Status: st})
		require.NoError(t, err)
	}
	rt := seedRoomType(t, db, "Single", 50)
	room := seedRoom(t, db, "201", rt, models.RoomOccupied)
	now := time.Now()
	require.NoError(t, db.Create(&models.Stay{ReservationID: 1, RoomID: room.ID, CheckinTime: now, CheckoutTime: now, Status: "Checked-In"}).Error)

	out, err := NewDashboardService(db, "").Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.PendingCheckIns)
	assert.Equal(t, int64(1), out.PendingCheckOuts)
}
