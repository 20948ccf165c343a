package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-backoffice/models"
)

type invoiceFixture struct {
	db      *gorm.DB
	svc     *InvoiceService
	guest   models.Guest
	stay    models.Stay
	clerk   models.User
	minibar models.Item
}

func newInvoiceFixture(t *testing.T, reservationCreator *uint, cost *float64) invoiceFixture {
	t.Helper()
	db := newTestDB(t)
	rt := seedRoomType(t, db, "Standard", 50)
	room := seedRoom(t, db, "201", rt, models.RoomOccupied)
	guest := seedGuest(t, db, "Le Van C", "0911111111")

	res := models.Reservation{GuestID: &guest.ID, Status: models.ReservationCheckedIn, CreatedByUserID: reservationCreator}
	require.NoError(t, db.Omit("Guest", "CreatedByUser", "Rooms").Create(&res).Error)

	now := time.Now()
	stay := models.Stay{
		ReservationID: res.ID,
		GuestID:       &guest.ID,
		RoomID:        room.ID,
		CheckinTime:   now,
		CheckoutTime:  now,
		TotalCost:     cost,
		Status:        models.StayCompleted,
	}
	require.NoError(t, db.Omit("Reservation", "Guest", "Room").Create(&stay).Error)

	clerk := models.User{Username: "clerk"}
	require.NoError(t, db.Create(&clerk).Error)

	minibar := models.Item{Name: "Minibar", Price: 35, Status: "active"}
	require.NoError(t, db.Create(&minibar).Error)

	return invoiceFixture{
		db:      db,
		svc:     NewInvoiceService(db, nil, "", testSystemUserID),
		guest:   guest,
		stay:    stay,
		clerk:   clerk,
		minibar: minibar,
	}
}

func TestCreateFromStay(t *testing.T) {
	f := newInvoiceFixture(t, nil, floatPtr(420))

	inv, err := f.svc.CreateFromStay(context.Background(), f.stay.ID, &f.clerk.ID)
	require.NoError(t, err)
	assert.Equal(t, 420.0, inv.Balance)
	assert.Equal(t, "VND", inv.Currency)
	assert.Equal(t, models.InvoiceUnpaid, inv.Status)
	assert.Equal(t, f.guest.ID, *inv.GuestID)
	assert.Equal(t, f.clerk.ID, *inv.CreatedByUserID)

	_, err = f.svc.CreateFromStay(context.Background(), f.stay.ID, nil)
	assert.True(t, errors.Is(err, ErrValidation), "second invoice for the same stay")
}

func TestCreateFromStayActorFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("reservation creator when explicit user is unknown", func(t *testing.T) {
		owner := testSystemUserID
		f := newInvoiceFixture(t, &owner, nil)
		inv, err := f.svc.CreateFromStay(ctx, f.stay.ID, uintPtr(9999))
		require.NoError(t, err)
		assert.Equal(t, owner, *inv.CreatedByUserID)
		assert.Zero(t, inv.Balance)
	})

	t.Run("system user when nothing else is known", func(t *testing.T) {
		f := newInvoiceFixture(t, nil, nil)
		inv, err := f.svc.CreateFromStay(ctx, f.stay.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, testSystemUserID, *inv.CreatedByUserID)
	})
}

func TestCreateFromStayNotFound(t *testing.T) {
	f := newInvoiceFixture(t, nil, nil)
	_, err := f.svc.CreateFromStay(context.Background(), 555, nil)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "stay", nf.Entity)
}

func TestAddServiceItemLeavesBalance(t *testing.T) {
	f := newInvoiceFixture(t, nil, floatPtr(100))
	ctx := context.Background()
	inv, err := f.svc.CreateFromStay(ctx, f.stay.ID, nil)
	require.NoError(t, err)

	line, err := f.svc.AddServiceItem(ctx, inv.ID, f.minibar.ID, nil, &f.clerk.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, line.Amount)
	assert.Equal(t, f.clerk.ID, *line.PostedByUserID)
	assert.False(t, line.PostedAt.IsZero())

	line, err = f.svc.AddServiceItem(ctx, inv.ID, f.minibar.ID, floatPtr(20), uintPtr(4040))
	require.NoError(t, err)
	assert.Equal(t, 20.0, line.Amount)
	assert.Nil(t, line.PostedByUserID)

	got, err := f.svc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Balance)
	assert.Len(t, got.Items, 2)

	items, err := f.svc.ListItems(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Item)
	assert.Equal(t, "Minibar", items[0].Item.Name)
}

func TestAddServiceItemUsesActingUser(t *testing.T) {
	f := newInvoiceFixture(t, nil, nil)
	ctx := context.Background()
	inv, err := f.svc.CreateFromStay(ctx, f.stay.ID, nil)
	require.NoError(t, err)

	line, err := f.svc.AddServiceItem(WithActor(ctx, f.clerk.ID), inv.ID, f.minibar.ID, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, line.PostedByUserID)
	assert.Equal(t, f.clerk.ID, *line.PostedByUserID)
}

func TestAddServiceItemMissing(t *testing.T) {
	f := newInvoiceFixture(t, nil, nil)
	ctx := context.Background()

	_, err := f.svc.AddServiceItem(ctx, 999, f.minibar.ID, nil, nil)
	assert.True(t, errors.Is(err, ErrNotFound))

	inv, err := f.svc.CreateFromStay(ctx, f.stay.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.AddServiceItem(ctx, inv.ID, 999, nil, nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateInvoiceIsPartial(t *testing.T) {
	f := newInvoiceFixture(t, nil, floatPtr(300))
	ctx := context.Background()
	inv, err := f.svc.CreateFromStay(ctx, f.stay.ID, nil)
	require.NoError(t, err)

	paid := "paid"
	card := "card"
	got, err := f.svc.Update(ctx, inv.ID, InvoicePatch{Status: &paid, PaymentMethod: &card})
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
	assert.Equal(t, "card", got.PaymentMethod)
	assert.Equal(t, 300.0, got.Balance)
	assert.Equal(t, "VND", got.Currency)

	blank := "  "
	balance := 280.0
	got, err = f.svc.Update(ctx, inv.ID, InvoicePatch{Balance: &balance, PaymentMethod: &blank})
	require.NoError(t, err)
	assert.Equal(t, 280.0, got.Balance)
	assert.Equal(t, "card", got.PaymentMethod)
	assert.Equal(t, "paid", got.Status)

	_, err = f.svc.Update(ctx, 999, InvoicePatch{Status: &paid})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvoiceLookups(t *testing.T) {
	f := newInvoiceFixture(t, nil, floatPtr(10))
	ctx := context.Background()

	_, err := f.svc.GetByStay(ctx, f.stay.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	inv, err := f.svc.CreateFromStay(ctx, f.stay.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.AddServiceItem(ctx, inv.ID, f.minibar.ID, nil, nil)
	require.NoError(t, err)

	byStay, err := f.svc.GetByStay(ctx, f.stay.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, byStay.ID)

	byGuest, err := f.svc.ListByGuest(ctx, f.guest.ID)
	require.NoError(t, err)
	assert.Len(t, byGuest, 1)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, f.svc.Delete(ctx, inv.ID))
	var lines int64
	f.db.Model(&models.InvoiceItem{}).Count(&lines)
	assert.Zero(t, lines)
	assert.True(t, errors.Is(f.svc.Delete(ctx, inv.ID), ErrNotFound))
}
