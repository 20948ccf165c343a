package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotel-backoffice/models"
)

func TestRoomStatusGetOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomStatusService(db)
	ctx := context.Background()

	a, err := svc.GetOrCreate(ctx, models.RoomCleaning)
	require.NoError(t, err)
	b, err := svc.GetOrCreate(ctx, models.RoomCleaning)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	var count int64
	db.Model(&models.RoomStatus{}).Where("name = ?", "cleaning").Count(&count)
	assert.Equal(t, int64(1), count)

	got, err := svc.GetByName(ctx, " Dirty ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.GetByName(ctx, "on fire")
	assert.True(t, errors.Is(err, ErrValidation))
	_, err = svc.GetByName(ctx, "maintenance")
	assert.True(t, errors.Is(err, ErrNotFound))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRoomServiceLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	ctx := context.Background()
	rt := seedRoomType(t, db, "Suite", 900)

	room, err := svc.Create(ctx, RoomInput{RoomNumber: " 501 ", Floor: "5", RoomTypeID: rt.ID})
	require.NoError(t, err)
	assert.Equal(t, "501", room.RoomNumber)
	assert.Equal(t, models.RoomAvailable, room.StatusName())
	assert.Equal(t, "Suite", room.RoomType.Name)

	_, err = svc.Create(ctx, RoomInput{RoomNumber: "502", RoomTypeID: 999})
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = svc.Create(ctx, RoomInput{RoomTypeID: rt.ID})
	assert.True(t, errors.Is(err, ErrValidation))

	// housekeeping: returned -> cleaning -> available
	room, err = svc.Update(ctx, room.ID, RoomInput{StatusName: "dirty"})
	require.NoError(t, err)
	assert.Equal(t, models.RoomCleaning, room.StatusName())
	assert.Equal(t, "5", room.Floor)

	_, err = svc.Update(ctx, room.ID, RoomInput{StatusName: "exploded"})
	assert.True(t, errors.Is(err, ErrValidation))

	cleaning := room.StatusID
	list, err := svc.List(ctx, RoomFilter{StatusID: cleaning})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = svc.List(ctx, RoomFilter{Search: "9"})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.Delete(ctx, room.ID))
	_, err = svc.Get(ctx, room.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRoomTypeService(t *testing.T) {
	svc := NewRoomTypeService(newTestDB(t))
	ctx := context.Background()

	rt := models.RoomType{Name: "Family", BedCount: 2, MaxOccupancy: 4, BasePrice: 700}
	require.NoError(t, svc.Create(ctx, &rt))
	assert.NotZero(t, rt.ID)

	assert.True(t, errors.Is(svc.Create(ctx, &models.RoomType{}), ErrValidation))

	got, err := svc.Update(ctx, rt.ID, models.RoomType{BedCount: 3, MaxOccupancy: 5, BasePrice: 750})
	require.NoError(t, err)
	assert.Equal(t, "Family", got.Name)
	assert.Equal(t, 750.0, got.BasePrice)

	require.NoError(t, svc.Delete(ctx, rt.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, rt.ID), ErrNotFound))
}

func TestItemServicePartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	ctx := context.Background()

	laundry := models.ItemType{TypeName: "Laundry"}
	require.NoError(t, svc.CreateType(ctx, &laundry))

	item := models.Item{Name: "Shirt press", Price: 15, Status: "active", ItemTypeID: &laundry.ID}
	require.NoError(t, svc.Create(ctx, &item))

	price := 18.5
	got, err := svc.Update(ctx, item.ID, ItemPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 18.5, got.Price)
	assert.Equal(t, "Shirt press", got.Name)
	assert.Equal(t, "active", got.Status)
	require.NotNil(t, got.ItemType)
	assert.Equal(t, "Laundry", got.ItemType.TypeName)

	inactive := "inactive"
	_, err = svc.Update(ctx, item.ID, ItemPatch{Status: &inactive})
	require.NoError(t, err)
	active, err := svc.List(ctx, "active")
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = svc.Update(ctx, 999, ItemPatch{Price: &price})
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, svc.Delete(ctx, item.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, item.ID), ErrNotFound))

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestUserServicePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	role := models.Role{Name: "Receptionist"}
	require.NoError(t, db.Create(&role).Error)

	user, err := svc.Create(ctx, UserInput{Username: "frontdesk", Password: "secret1", FullName: "Front Desk", RoleID: &role.ID})
	require.NoError(t, err)
	require.NotNil(t, user.Role)
	assert.Equal(t, "Receptionist", user.Role.Name)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
	oldHash := stored.Password

	_, err = svc.Update(ctx, user.ID, UserInput{FullName: "Front Desk 2", Password: "   "})
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, oldHash, stored.Password)
	assert.Equal(t, "Front Desk 2", stored.FullName)

	_, err = svc.Update(ctx, user.ID, UserInput{FullName: "Front Desk 2", Password: "secret2"})
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret2")))

	_, err = svc.Create(ctx, UserInput{Username: "nopass"})
	assert.True(t, errors.Is(err, ErrValidation))

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.Get(ctx, user.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
