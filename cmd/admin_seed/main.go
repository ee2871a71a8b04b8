// Command admin_seed creates the admin credential and the default fee
// settings. Run once after the database is provisioned.
package main

import (
	"log"
	"os"

	"feegate/internal/config"
	"feegate/internal/models"
	"feegate/internal/repositories"
	"feegate/internal/services/fees"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminUser := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUser == "" || adminPassword == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	var existing models.AdminCredential
	if err := repositories.DB.Where("username = ?", adminUser).First(&existing).Error; err == nil {
		log.Println("admin credential already exists")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		admin := models.AdminCredential{Username: adminUser, PasswordHash: string(hash)}
		if err := repositories.DB.Create(&admin).Error; err != nil {
			log.Fatalf("failed to create admin credential: %v", err)
		}
		log.Printf("admin credential created for %s", adminUser)
	}

	settings := repositories.NewSettingsRepository(repositories.DB)
	existingSpecs, err := settings.FeeSettings()
	if err != nil {
		log.Fatalf("failed to read fee settings: %v", err)
	}
	if len(existingSpecs) > 0 {
		log.Println("fee settings already present, leaving them untouched")
		return
	}
	for _, spec := range fees.DefaultSpecs() {
		s := spec
		if err := settings.UpsertFeeSetting(&s); err != nil {
			log.Fatalf("failed to seed fee setting %s: %v", s.Name, err)
		}
		log.Printf("seeded fee setting %s", s.Name)
	}
}
