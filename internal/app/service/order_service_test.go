package service

import (
	"sync"
	"testing"
	"time"

	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/repository"
	"github.com/seonkim/beanshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(event OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]OrderEvent(nil), p.events...)
}

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB, *recordingPublisher) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	publisher := &recordingPublisher{}
	orderRepo := repository.NewOrderRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderService := NewOrderService(orderRepo, productRepo, testDB, publisher)

	return orderService, testDB, publisher
}

func seedProduct(t *testing.T, testDB *gorm.DB, name string, price int) *model.Product {
	product := &model.Product{
		ProductName: name,
		Price:       price,
		Stock:       100,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestOrderService_CreateOrder_ComputesTotals(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	yirgacheffe := seedProduct(t, testDB, "에티오피아 예가체프", 4500)
	supremo := seedProduct(t, testDB, "콜롬비아 수프리모", 5000)

	order, err := orderService.CreateOrder("buyer@example.com", "서울시 마포구 커피로 12, 301호", []OrderLine{
		{ProductID: yirgacheffe.ID, Quantity: 2},
		{ProductID: supremo.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// 2 x 4500 + 1 x 5000
	assert.Equal(t, 14000, order.TotalPrice)
	assert.Equal(t, 3, order.OrderCount)
	assert.Equal(t, "에티오피아 예가체프 외 1개", order.ProductName)
	assert.Equal(t, model.OrderStatusReceived, order.OrderStatus)
	assert.False(t, order.DeliveryStatus)
	require.Len(t, order.OrderItems, 2)
}

func TestOrderService_CreateOrder_SingleLineKeepsPlainName(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "케냐 AA", 6000)

	order, err := orderService.CreateOrder("buyer@example.com", "서울시 종로구 세종대로 1, 5층", []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "케냐 AA", order.ProductName)
}

func TestOrderService_CreateOrder_SnapshotsPriceAtOrderTime(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "브라질 산토스", 4000)

	order, err := orderService.CreateOrder("buyer@example.com", "부산시 해운대구 바다로 99, 101호", []OrderLine{
		{ProductID: product.ID, Quantity: 2},
	})
	require.NoError(t, err)

	// 주문 후 가격 인상
	require.NoError(t, testDB.Model(&model.Product{}).Where("id = ?", product.ID).Update("price", 9999).Error)

	reloaded, err := orderService.GetOrderByID(order.ID)
	require.NoError(t, err)

	require.Len(t, reloaded.OrderItems, 1)
	assert.Equal(t, 4000, reloaded.OrderItems[0].ProductPrice)
	assert.Equal(t, 8000, reloaded.TotalPrice)
}

func TestOrderService_CreateOrder_IncrementsProductOrderCount(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "과테말라 안티구아", 5500)

	_, err := orderService.CreateOrder("buyer@example.com", "대전시 유성구 연구로 45, 2동", []OrderLine{
		{ProductID: product.ID, Quantity: 4},
	})
	require.NoError(t, err)

	var found model.Product
	require.NoError(t, testDB.First(&found, product.ID).Error)
	assert.Equal(t, 4, found.OrderCount)
}

func TestOrderService_CreateOrder_RollsBackOnMissingProduct(t *testing.T) {
	orderService, testDB, publisher := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "코스타리카 따라주", 5200)

	_, err := orderService.CreateOrder("buyer@example.com", "인천시 연수구 송도대로 7, 803호", []OrderLine{
		{ProductID: product.ID, Quantity: 2},
		{ProductID: 99999, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	// 주문과 항목 모두 남아있지 않아야 한다
	var orderCount, itemCount int64
	require.NoError(t, testDB.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, testDB.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)

	// 유효했던 첫 줄의 주문 수 증가도 롤백된다
	var found model.Product
	require.NoError(t, testDB.First(&found, product.ID).Error)
	assert.Equal(t, 0, found.OrderCount)

	assert.Empty(t, publisher.Events())
}

func TestOrderService_CreateOrder_RejectsEmptyLines(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	_, err := orderService.CreateOrder("buyer@example.com", "광주시 북구 무등로 10, 201호", nil)
	assert.ErrorIs(t, err, ErrEmptyOrderLines)
}

func TestOrderService_CreateOrder_PublishesEvent(t *testing.T) {
	orderService, testDB, publisher := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "인도네시아 만델링", 4800)

	order, err := orderService.CreateOrder("buyer@example.com", "울산시 남구 공업탑로 3, 1204호", []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, OrderEventCreated, events[0].Type)
	assert.Equal(t, order.ID, events[0].OrderID)
	assert.Equal(t, 4800, events[0].TotalPrice)
}

func TestOrderService_UpdateOrderStatus_DerivesDeliveryFlag(t *testing.T) {
	orderService, testDB, publisher := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "에티오피아 예가체프", 4500)
	order, err := orderService.CreateOrder("buyer@example.com", "서울시 강서구 공항대로 88, 402호", []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := orderService.UpdateOrderStatus(order.ID, model.OrderStatusShipping)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipping, updated.OrderStatus)
	assert.False(t, updated.DeliveryStatus)

	updated, err = orderService.UpdateOrderStatus(order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, updated.OrderStatus)
	assert.True(t, updated.DeliveryStatus)

	// 배송 완료 후 다시 이전 단계로 돌리면 플래그도 해제된다
	updated, err = orderService.UpdateOrderStatus(order.ID, model.OrderStatusPreparing)
	require.NoError(t, err)
	assert.False(t, updated.DeliveryStatus)

	events := publisher.Events()
	// 생성 1건 + 상태 변경 3건
	require.Len(t, events, 4)
	assert.Equal(t, OrderEventStatusChanged, events[1].Type)
}

func TestOrderService_UpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "콜롬비아 수프리모", 5000)
	order, err := orderService.CreateOrder("buyer@example.com", "경기도 성남시 분당구 판교로 256", []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(order.ID, "환불 완료")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_UpdateOrderStatus_MissingOrder(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	_, err := orderService.UpdateOrderStatus(99999, model.OrderStatusShipping)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	product := seedProduct(t, testDB, "케냐 AA", 6000)
	order, err := orderService.CreateOrder("buyer@example.com", "강원도 춘천시 호반로 15, 301호", []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, orderService.DeleteOrder(order.ID))

	_, err = orderService.GetOrderByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// 없는 주문을 다시 지우면 not found
	assert.ErrorIs(t, orderService.DeleteOrder(order.ID), ErrOrderNotFound)
}

func TestOrderService_GetTodayOrders_UsesSettlementWindow(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), settlementCutoffHour, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -1)

	inWindow := &model.Order{
		Email:       "a@example.com",
		OrderCount:  1,
		ProductName: "정산 대상",
		TotalPrice:  5000,
		OrderStatus: model.OrderStatusReceived,
		CreatedAt:   start.Add(30 * time.Minute),
	}
	outOfWindow := &model.Order{
		Email:       "b@example.com",
		OrderCount:  1,
		ProductName: "정산 제외",
		TotalPrice:  7000,
		OrderStatus: model.OrderStatusReceived,
		CreatedAt:   start.Add(-30 * time.Minute),
	}
	require.NoError(t, testDB.Create(inWindow).Error)
	require.NoError(t, testDB.Create(outOfWindow).Error)

	orders, err := orderService.GetTodayOrders()
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, "정산 대상", orders[0].ProductName)
}

func TestOrderService_GetTodayOrders_EmptyIsNotAnError(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	orders, err := orderService.GetTodayOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}
