package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backoffice/models"
)

func fixedToday(t *testing.T, y int, m time.Month, d int) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(y, m, d, 15, 30, 0, 0, time.Local) }
	t.Cleanup(func() { nowFunc = prev })
}

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &v
}

func TestIsAdultBoundary(t *testing.T) {
	today := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)

	assert.True(t, isAdult(*date(2008, 10, 16), today), "exactly 18 today")
	assert.False(t, isAdult(*date(2008, 10, 17), today), "one day short")
	assert.True(t, isAdult(*date(1970, 1, 1), today))
}

func TestCreateGuestValidation(t *testing.T) {
	fixedToday(t, 2026, 10, 16)
	svc := NewGuestService(newTestDB(t))
	ctx := context.Background()

	err := svc.Create(ctx, &models.Guest{FullName: "No Dob"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "dateOfBirth", ve.Field)

	err = svc.Create(ctx, &models.Guest{FullName: "Minor", DateOfBirth: date(2008, 10, 17)})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "dateOfBirth", ve.Field)

	adult := models.Guest{FullName: "Adult", Phone: "0901", IDNumber: "ID-1", DateOfBirth: date(2008, 10, 16)}
	require.NoError(t, svc.Create(ctx, &adult))
	assert.NotZero(t, adult.ID)

	err = svc.Create(ctx, &models.Guest{FullName: "Same Phone", Phone: "0901", DateOfBirth: date(1990, 1, 1)})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "phone", ve.Field)

	err = svc.Create(ctx, &models.Guest{FullName: "Same Id", IDNumber: "ID-1", DateOfBirth: date(1990, 1, 1)})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "idNumber", ve.Field)

	// blank phone and id number are not unique values
	require.NoError(t, svc.Create(ctx, &models.Guest{FullName: "Blank A", DateOfBirth: date(1990, 1, 1)}))
	require.NoError(t, svc.Create(ctx, &models.Guest{FullName: "Blank B", DateOfBirth: date(1990, 1, 1)}))
}

func TestUpdateGuestExcludesSelf(t *testing.T) {
	fixedToday(t, 2026, 10, 16)
	svc := NewGuestService(newTestDB(t))
	ctx := context.Background()

	a := models.Guest{FullName: "A", Phone: "111", IDNumber: "X1", DateOfBirth: date(1980, 2, 2)}
	b := models.Guest{FullName: "B", Phone: "222", IDNumber: "X2", DateOfBirth: date(1981, 3, 3)}
	require.NoError(t, svc.Create(ctx, &a))
	require.NoError(t, svc.Create(ctx, &b))

	got, err := svc.Update(ctx, a.ID, models.Guest{FullName: "A Renamed", Phone: "111", IDNumber: "X1", DateOfBirth: date(1980, 2, 2)})
	require.NoError(t, err)
	assert.Equal(t, "A Renamed", got.FullName)

	_, err = svc.Update(ctx, a.ID, models.Guest{FullName: "A", Phone: "222", IDNumber: "X1", DateOfBirth: date(1980, 2, 2)})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Update(ctx, a.ID, models.Guest{FullName: "A", Phone: "111", IDNumber: "X1"})
	assert.True(t, errors.Is(err, ErrValidation), "dob is required on update too")

	_, err = svc.Update(ctx, 999, models.Guest{FullName: "Ghost", DateOfBirth: date(1980, 1, 1)})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSearchGuests(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Guest{FullName: "Alice Nguyen", IDType: "passport", IDNumber: "B1234567"}).Error)
	require.NoError(t, db.Create(&models.Guest{FullName: "Bob Tran", IDType: "cccd", IDNumber: "079200001234"}).Error)

	out, err := svc.Search(ctx, "ALICE", "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Alice Nguyen", out[0].FullName)

	out, err = svc.Search(ctx, "1234", "")
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = svc.Search(ctx, "1234", "cccd")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bob Tran", out[0].FullName)

	require.NoError(t, svc.Delete(ctx, out[0].ID))
	assert.True(t, errors.Is(svc.Delete(ctx, out[0].ID), ErrNotFound))
}
