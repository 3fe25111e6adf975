package database

import (
	"fmt"
	"time"

	"hotel-management-backend/internal/config"
	"hotel-management-backend/internal/models"
	"hotel-management-backend/pkg/logger"
	"hotel-management-backend/pkg/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect initializes and returns a GORM database connection
func Connect(cfg *config.Config) *gorm.DB {
	log := logger.Get()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
	)

	// Configure GORM logger
	gormLogger := gormlogger.Default.LogMode(gormlogger.Info)
	if cfg.Server.GinMode == "release" {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Error)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// AutoMigrate in parent->child order
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Hotel{},
		&models.UserHotel{},
		&models.Room{},
		&models.Booking{},
		&models.InventoryItem{},
		&models.Report{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seedDefaultAdmin(db)

	log.Info("Successfully connected to database")

	return db
}

// seedDefaultAdmin creates the initial admin account when the users table is
// empty, so a fresh deployment is reachable.
func seedDefaultAdmin(db *gorm.DB) {
	log := logger.Get()

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Warnf("Failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Warnf("Failed to seed default admin: %v", err)
		return
	}
	log.Info("Default admin account seeded")
}
