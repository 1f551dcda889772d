package repository

import (
	"time"

	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByID(id uint) (*model.Order, error)
	FindByEmail(email string) ([]model.Order, error)
	FindCreatedBetween(start, end time.Time) ([]model.Order, error)
	Update(order *model.Order) error
	Delete(id uint) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.db.Preload("OrderItems").First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) FindByEmail(email string) ([]model.Order, error) {
	logger.Debug("Finding orders by email in database", map[string]interface{}{
		"email": email,
	})

	var orders []model.Order
	if err := r.db.Preload("OrderItems").
		Where("email = ?", email).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Debug("Orders found by email in database", map[string]interface{}{
		"email": email,
		"count": len(orders),
	})
	return orders, nil
}

// FindCreatedBetween returns orders created within [start, end).
func (r *orderRepository) FindCreatedBetween(start, end time.Time) ([]model.Order, error) {
	logger.Debug("Finding orders in time window", map[string]interface{}{
		"start": start,
		"end":   end,
	})

	var orders []model.Order
	if err := r.db.Preload("OrderItems").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders in time window", err, map[string]interface{}{
			"start": start,
			"end":   end,
		})
		return nil, err
	}

	logger.Debug("Orders found in time window", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.OrderStatus,
	})

	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}

	return nil
}

// Delete hard-deletes the order. 주문 항목은 FK cascade로 함께 제거된다.
func (r *orderRepository) Delete(id uint) (int64, error) {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	result := r.db.Delete(&model.Order{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete order from database", result.Error, map[string]interface{}{
			"order_id": id,
		})
		return 0, result.Error
	}

	logger.Debug("Order deleted from database", map[string]interface{}{
		"order_id":      id,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
