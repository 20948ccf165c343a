package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-backoffice/config"
	"hotel-backoffice/models"
)

const testSystemUserID uint = 1

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	require.NoError(t, db.Create(&models.User{ID: testSystemUserID, Username: "system", FullName: "System"}).Error)
	return db
}

func floatPtr(v float64) *float64 { return &v }

func uintPtr(v uint) *uint { return &v }

func seedRoomType(t *testing.T, db *gorm.DB, name string, price float64) models.RoomType {
	t.Helper()
	rt := models.RoomType{Name: name, BedCount: 1, MaxOccupancy: 2, BasePrice: price}
	require.NoError(t, db.Create(&rt).Error)
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, number string, rt models.RoomType, status models.RoomStatusName) models.Room {
	t.Helper()
	st, err := roomStatusTx(db, status)
	require.NoError(t, err)
	room := models.Room{RoomNumber: number, RoomTypeID: rt.ID, StatusID: st.ID}
	require.NoError(t, db.Omit("RoomType", "Status").Create(&room).Error)
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, name, phone string) models.Guest {
	t.Helper()
	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.Local)
	g := models.Guest{FullName: name, Phone: phone, DateOfBirth: &dob, IDType: "passport", IDNumber: "P-" + phone}
	require.NoError(t, db.Create(&g).Error)
	return g
}

func roomStatusOf(t *testing.T, db *gorm.DB, roomID uint) models.RoomStatusName {
	t.Helper()
	name, err := currentRoomStatusTx(db, roomID)
	require.NoError(t, err)
	return name
}
