package repositories

import (
	"errors"

	"feegate/internal/models"

	"gorm.io/gorm"
)

var ErrAdminNotFound = errors.New("admin credential not found")

// SettingsRepository serves the persisted configuration: the fee specs
// edited through the admin surface, free-form settings and the admin
// credential.
type SettingsRepository interface {
	FeeSettings() ([]models.FeeSetting, error)
	UpsertFeeSetting(setting *models.FeeSetting) error
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	GetAdminByUsername(username string) (*models.AdminCredential, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FeeSettings() ([]models.FeeSetting, error) {
	var settings []models.FeeSetting
	err := r.db.Order("position ASC, id ASC").Find(&settings).Error
	return settings, err
}

func (r *settingsRepository) UpsertFeeSetting(setting *models.FeeSetting) error {
	var existing models.FeeSetting
	err := r.db.Where("name = ?", setting.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(setting).Error
	}
	if err != nil {
		return err
	}
	setting.ID = existing.ID
	setting.CreatedAt = existing.CreatedAt
	return r.db.Save(setting).Error
}

func (r *settingsRepository) GetSetting(key string) (string, error) {
	var setting models.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (r *settingsRepository) SetSetting(key, value string) error {
	var setting models.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}

func (r *settingsRepository) GetAdminByUsername(username string) (*models.AdminCredential, error) {
	var admin models.AdminCredential
	err := r.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}
