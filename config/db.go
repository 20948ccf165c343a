package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"hotel-backoffice/models"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

// ResolveMySQLDSN picks MYSQL_URL, then DATABASE_URL, then the DB_* parts.
func ResolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(os.Getenv("DB_NAME")), nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.RoomStatus{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.Stay{},
		&models.ItemType{},
		&models.Item{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.ActivityLog{},
	)
}

func ConnectDatabase(cfg AppConfig, log *logrus.Logger) (*gorm.DB, error) {
	dsn, dbName, err := ResolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: NewGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open mysql %q: %w", dbName, err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.Seed {
		SeedDatabase(db, cfg, log)
	}

	DB = db
	return db, nil
}

// SeedDatabase makes sure reference data exists: room statuses, roles, the
// system user and a few room and item types. Safe to run on every start.
func SeedDatabase(db *gorm.DB, cfg AppConfig, log *logrus.Logger) {
	// ---------------- Room statuses ----------------
	for _, name := range models.AllRoomStatuses {
		st := models.RoomStatus{Name: string(name)}
		if err := db.Where(models.RoomStatus{Name: st.Name}).FirstOrCreate(&st).Error; err != nil {
			log.WithError(err).WithField("status", name).Warn("failed to seed room status")
		}
	}

	// ---------------- Roles ----------------
	roleIDs := map[string]uint{}
	for _, name := range []string{"Admin", "Manager", "Receptionist", "Housekeeping"} {
		role := models.Role{Name: name}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			log.WithError(err).WithField("role", name).Warn("failed to seed role")
			continue
		}
		roleIDs[strings.ToLower(name)] = role.ID
	}

	// ---------------- System user ----------------
	var sys models.User
	if err := db.First(&sys, cfg.SystemUserID).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SYSTEM_USER_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Warn("failed to hash system user password")
		} else {
			sys = models.User{
				ID:       cfg.SystemUserID,
				Username: "system",
				Password: string(hash),
				FullName: "System",
			}
			if id, ok := roleIDs["admin"]; ok {
				sys.RoleID = &id
			}
			if err := db.Create(&sys).Error; err != nil {
				log.WithError(err).Warn("failed to create system user")
			} else {
				log.WithField("user_id", sys.ID).Info("system user seeded")
			}
		}
	}

	// ---------------- Room types ----------------
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", BedCount: 1, MaxOccupancy: 2, BasePrice: 500000},
			{Name: "Deluxe", BedCount: 2, MaxOccupancy: 3, BasePrice: 800000},
			{Name: "Suite", BedCount: 2, MaxOccupancy: 4, BasePrice: 1500000},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			log.WithError(err).Warn("failed to seed room types")
		}
	}

	// ---------------- Item types ----------------
	var itCount int64
	db.Model(&models.ItemType{}).Count(&itCount)
	if itCount == 0 {
		itemTypes := []models.ItemType{{TypeName: "Food & Beverage"}, {TypeName: "Laundry"}, {TypeName: "Spa"}}
		if err := db.Create(&itemTypes).Error; err != nil {
			log.WithError(err).Warn("failed to seed item types")
		}
	}

	log.Info("reference data ensured")
}
