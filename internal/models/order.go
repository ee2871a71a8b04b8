package models

import "time"

// Order statuses
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

type Order struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`
	SessionID   string `gorm:"index;not null" json:"session_id"`
	Subtotal    float64 `gorm:"default:0" json:"subtotal"`
	Shipping    float64 `gorm:"default:0" json:"shipping"`
	FeeTotal    float64 `gorm:"default:0" json:"fee_total"`
	Total       float64 `gorm:"default:0" json:"total"`
	Status      string  `gorm:"default:'pending'" json:"status"`
	PaymentRef  string  `gorm:"default:''" json:"payment_ref,omitempty"`
	FeeItems    []OrderFeeItem `gorm:"foreignKey:OrderID" json:"fee_items"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrderFeeItem struct {
	ID      uint    `gorm:"primarykey" json:"id"`
	OrderID uint    `gorm:"index;not null" json:"order_id"`
	Name    string  `gorm:"not null" json:"name"`
	Amount  float64 `gorm:"default:0" json:"amount"`
	Taxable bool    `gorm:"default:false" json:"taxable"`
}

// HasFeeItem reports whether a fee line with the given name already
// exists on the order. Fee application is idempotent by name.
func (o *Order) HasFeeItem(name string) bool {
	for _, item := range o.FeeItems {
		if item.Name == name {
			return true
		}
	}
	return false
}

// CalculateTotals recomputes the fee total and the grand total from the
// order's current line amounts.
func (o *Order) CalculateTotals() {
	o.FeeTotal = 0
	for _, item := range o.FeeItems {
		o.FeeTotal += item.Amount
	}
	o.Total = o.Subtotal + o.Shipping + o.FeeTotal
}
