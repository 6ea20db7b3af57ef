package config

import (
	"log"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedData seeds the initial admin account and default shelters
func SeedData(db *gorm.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}

	if err := seedShelters(db); err != nil {
		return err
	}

	log.Println("✅ Seed data ensured")
	return nil
}

// seedAdminUser creates the bootstrap admin account if no admin exists
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail := getEnv("ADMIN_EMAIL", "admin@scrapseva.org")
	adminPass := getEnv("ADMIN_PASSWORD", "changeme123")

	hashed, err := password.Hash(adminPass)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "ScrapSeva Admin",
		Email:    adminEmail,
		Phone:    getEnv("ADMIN_PHONE", "9999999999"),
		Password: hashed,
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Bootstrap admin created: %s", adminEmail)
	return nil
}

// seedShelters creates a starter set of shelters if the table is empty
func seedShelters(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Shelter{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	shelters := []models.Shelter{
		{
			Name:          "Gauabhayaranyam Shelter",
			ContactPerson: "Shelter Office",
			Phone:         "9000000001",
			City:          "Ahmedabad",
			Address:       "Gauabhayaranyam campus, Ahmedabad",
			Capacity:      200,
			IsActive:      true,
		},
		{
			Name:          "City Animal Rescue Home",
			ContactPerson: "Rescue Desk",
			Phone:         "9000000002",
			City:          "Surat",
			Address:       "Ring Road, Surat",
			Capacity:      80,
			IsActive:      true,
		},
	}

	return db.Create(&shelters).Error
}
