package models

import "time"

// Fee setting kinds
const (
	FeeKindPercentage = "percentage"
	FeeKindFixed      = "fixed"
)

// FeeSetting is one configured fee, editable through the admin surface.
// Percentage fees use Rate (fraction of subtotal+shipping); fixed fees
// use Amount.
type FeeSetting struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Name      string  `gorm:"uniqueIndex;not null" json:"name"`
	Kind      string  `gorm:"not null" json:"kind"`
	Rate      float64 `gorm:"default:0" json:"rate"`
	Amount    float64 `gorm:"default:0" json:"amount"`
	Enabled   bool    `gorm:"default:true" json:"enabled"`
	Position  int     `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting is a free-form key/value row for the remaining plugin-style
// options, such as the legacy target shipping method identifier.
type Setting struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Key       string `gorm:"uniqueIndex;not null" json:"key"`
	Value     string `gorm:"default:''" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting keys
const (
	SettingTargetShippingMethod = "target_shipping_method"
)
