package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/seonkim/beanshop-backend/internal/app/service"
	"github.com/seonkim/beanshop-backend/pkg/logger"
)

// SettlementScheduler 일일 주문 정산 스케줄러
type SettlementScheduler struct {
	cron         *cron.Cron
	orderService service.OrderService
}

func NewSettlementScheduler(orderService service.OrderService) *SettlementScheduler {
	return &SettlementScheduler{
		cron:         cron.New(),
		orderService: orderService,
	}
}

// Start 스케줄러 시작
func (s *SettlementScheduler) Start() error {
	// 매일 14시 정산 마감 시점에 직전 24시간 주문을 집계한다
	_, err := s.cron.AddFunc("0 14 * * *", func() {
		logger.Info("Starting daily order settlement", nil)

		orders, err := s.orderService.GetTodayOrders()
		if err != nil {
			logger.Error("Failed to fetch orders for settlement", err)
			return
		}

		totalRevenue := 0
		totalItems := 0
		for _, order := range orders {
			totalRevenue += order.TotalPrice
			totalItems += order.OrderCount
		}

		logger.Info("Daily order settlement completed", map[string]interface{}{
			"order_count":   len(orders),
			"total_items":   totalItems,
			"total_revenue": totalRevenue,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for order settlement", err)
		return err
	}

	s.cron.Start()
	logger.Info("Settlement scheduler started successfully (daily at 2:00 PM)", nil)

	return nil
}

// Stop 스케줄러 중지
func (s *SettlementScheduler) Stop() {
	logger.Info("Stopping settlement scheduler...", nil)
	s.cron.Stop()
	logger.Info("Settlement scheduler stopped", nil)
}
