package database

import (
	"log"

	"github.com/swiftbus/swiftbus-backend/internal/config"
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/pkg/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(cfg *config.Config) *gorm.DB {
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seedAdminUser(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Travel{},
		&models.Booking{},
	)
}

// seedAdminUser creates the panel account on first boot (if configured).
func seedAdminUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPass == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.HashPassword(cfg.AdminPass)
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName: "Administrator",
		Email:    cfg.AdminEmail,
		Password: hashed,
		IsAdmin:  true,
	}

	return db.Create(admin).Error
}
