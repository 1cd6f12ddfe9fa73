package database

import (
	"fmt"
	"log"
	"os"

	"forma/config"
	"forma/models"
	courseModels "forma/models/course"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)

	if err := SeedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.Message{},
		&models.ConferenceRequest{},
		&courseModels.Course{},
		&courseModels.CourseMaterial{},
		&courseModels.CourseProgress{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// SeedAdmin creates the bootstrap admin account if it does not exist.
// Fan-out for admin-directed notifications resolves the admin by this
// configured email.
func SeedAdmin(db *gorm.DB) error {
	var admin models.User
	err := db.Where("email = ?", config.AppConfig.AdminEmail).First(&admin).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}

	admin = models.User{
		FirstName:  "System",
		LastName:   "Admin",
		Email:      config.AppConfig.AdminEmail,
		Department: "RH",
		Role:       models.RoleAdmin,
		Password:   string(hashed),
		IsActive:   true,
		IsApproved: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin account created with email: %s", config.AppConfig.AdminEmail)
	return nil
}
