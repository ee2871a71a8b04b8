package models

import "time"

// AdminCredential is the single bcrypt-hashed login for the settings
// surface. Seeded by cmd/admin_seed.
type AdminCredential struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
