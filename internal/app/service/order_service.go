package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/repository"
	"github.com/seonkim/beanshop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrderLines    = errors.New("order has no lines")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OrderLine is one (product, quantity) pair in an order request.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// settlementCutoffHour 정산 마감 시각. "오늘의 주문"은 어제 14시부터
// 오늘 14시까지 생성된 주문이다.
const settlementCutoffHour = 14

type OrderService interface {
	CreateOrder(email, address string, lines []OrderLine) (*model.Order, error)
	GetOrdersByEmail(email string) ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(orderID uint) error
	GetTodayOrders() ([]model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	publisher   OrderEventPublisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	publisher OrderEventPublisher,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		db:          db,
		publisher:   publisher,
	}
}

// CreateOrder validates every requested line, snapshots current product
// prices into order items and commits the header plus all items in a
// single transaction. 실패 시 전체가 롤백된다.
func (s *orderService) CreateOrder(email, address string, lines []OrderLine) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"email":      email,
		"line_count": len(lines),
	})

	if len(lines) == 0 {
		logger.Warn("Cannot create order: no lines", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmptyOrderLines
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"email": email,
			})
		}
	}()

	var (
		totalPrice int
		totalCount int
		firstName  string
		orderItems []model.OrderItem
	)

	for _, line := range lines {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, line.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during order creation", map[string]interface{}{
					"email":      email,
					"product_id": line.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during order creation", err, map[string]interface{}{
				"email":      email,
				"product_id": line.ProductID,
			})
			return nil, err
		}

		if firstName == "" {
			firstName = product.ProductName
		}

		lineTotal := product.Price * line.Quantity
		orderItems = append(orderItems, model.OrderItem{
			ProductID:    line.ProductID,
			OrderCount:   line.Quantity,
			ProductPrice: product.Price,
			TotalPrice:   lineTotal,
		})
		totalPrice += lineTotal
		totalCount += line.Quantity

		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("order_count", gorm.Expr("order_count + ?", line.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to update product order count", err, map[string]interface{}{
				"email":      email,
				"product_id": product.ID,
			})
			return nil, err
		}
	}

	order := &model.Order{
		Email:       email,
		OrderCount:  totalCount,
		ProductName: summaryName(firstName, len(lines)),
		TotalPrice:  totalPrice,
		Address:     address,
		OrderStatus: model.OrderStatusReceived,
		OrderItems:  orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"email":       email,
			"total_price": totalPrice,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"email":    email,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"email":       email,
		"order_id":    order.ID,
		"total_price": totalPrice,
		"order_count": totalCount,
		"item_count":  len(orderItems),
	})

	if s.publisher != nil {
		s.publisher.PublishOrderEvent(OrderEvent{
			Type:        OrderEventCreated,
			OrderID:     order.ID,
			Email:       order.Email,
			OrderStatus: order.OrderStatus,
			TotalPrice:  order.TotalPrice,
		})
	}

	return s.orderRepo.FindByID(order.ID)
}

// summaryName은 첫 줄의 상품명과 나머지 줄 수로 대표 상품명을 만든다.
// "첫" 상품은 입력 순서 기준이다.
func summaryName(firstName string, lineCount int) string {
	if lineCount <= 1 {
		return firstName
	}
	return fmt.Sprintf("%s 외 %d개", firstName, lineCount-1)
}

func (s *orderService) GetOrdersByEmail(email string) ([]model.Order, error) {
	logger.Debug("Fetching orders by email", map[string]interface{}{
		"email": email,
	})

	orders, err := s.orderRepo.FindByEmail(email)
	if err != nil {
		logger.Error("Failed to fetch orders by email", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("Orders fetched successfully", map[string]interface{}{
		"email": email,
		"count": len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	logger.Debug("Fetching order by ID", map[string]interface{}{
		"order_id": id,
	})

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": id,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	return order, nil
}

// UpdateOrderStatus sets a new status from the allowed set and recomputes
// the derived delivery flag. DeliveryStatus는 독립적으로 설정되지 않는다.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	status = model.OrderStatus(strings.TrimSpace(string(status)))

	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	if !status.Valid() {
		logger.Warn("Rejected invalid order status", map[string]interface{}{
			"order_id":   orderID,
			"new_status": status,
		})
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found for status update", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	order.OrderStatus = status
	order.DeliveryStatus = status.Delivered()

	if err := s.orderRepo.Update(order); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id":        orderID,
		"status":          status,
		"delivery_status": order.DeliveryStatus,
	})

	if s.publisher != nil {
		s.publisher.PublishOrderEvent(OrderEvent{
			Type:        OrderEventStatusChanged,
			OrderID:     order.ID,
			Email:       order.Email,
			OrderStatus: order.OrderStatus,
			TotalPrice:  order.TotalPrice,
		})
	}

	return order, nil
}

func (s *orderService) DeleteOrder(orderID uint) error {
	logger.Info("Deleting order", map[string]interface{}{
		"order_id": orderID,
	})

	rows, err := s.orderRepo.Delete(orderID)
	if err != nil {
		logger.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	if rows == 0 {
		logger.Warn("Cannot delete: order not found", map[string]interface{}{
			"order_id": orderID,
		})
		return ErrOrderNotFound
	}

	logger.Info("Order deleted successfully", map[string]interface{}{
		"order_id": orderID,
	})
	return nil
}

// GetTodayOrders returns orders created between yesterday 14:00 and
// today 14:00. 빈 결과는 오류가 아니라 빈 목록이다.
func (s *orderService) GetTodayOrders() ([]model.Order, error) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), settlementCutoffHour, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -1)

	logger.Debug("Fetching today's orders", map[string]interface{}{
		"start": start,
		"end":   end,
	})

	orders, err := s.orderRepo.FindCreatedBetween(start, end)
	if err != nil {
		logger.Error("Failed to fetch today's orders", err, nil)
		return nil, err
	}

	logger.Info("Today's orders fetched successfully", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}
