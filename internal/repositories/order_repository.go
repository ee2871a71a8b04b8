package repositories

import (
	"errors"

	"feegate/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order number already exists")
)

// OrderRepository persists finalized orders and their fee items.
type OrderRepository interface {
	Create(order *models.Order) error
	Save(order *models.Order) error
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetBySessionID(sessionID string) ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateOrder
		}
		return err
	}
	return nil
}

func (r *orderRepository) Save(order *models.Order) error {
	// Full save including fee item associations.
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

func (r *orderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("FeeItems").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetBySessionID(sessionID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("FeeItems").Where("session_id = ?", sessionID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}
