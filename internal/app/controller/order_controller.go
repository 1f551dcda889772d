package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/service"
	"github.com/seonkim/beanshop-backend/internal/middleware"
	"github.com/seonkim/beanshop-backend/internal/rsdata"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type OrderLineRequest struct {
	ProductID    uint `json:"productId" binding:"required"`
	ProductCount int  `json:"productCount" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Products  []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
	UserEmail string             `json:"userEmail" binding:"required,email"`
	Address   string             `json:"address" binding:"required,min=10,max=300"`
}

type UpdateOrderStatusRequest struct {
	OrderID     uint   `json:"orderId" binding:"required"`
	OrderStatus string `json:"orderStatus" binding:"required"`
}

// Create handles POST /orders/write
func (ctrl *OrderController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order creation request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	lines := make([]service.OrderLine, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, service.OrderLine{
			ProductID: p.ProductID,
			Quantity:  p.ProductCount,
		})
	}

	order, err := ctrl.orderService.CreateOrder(req.UserEmail, req.Address, lines)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			// 존재하지 않는 상품이 포함된 주문은 요청 오류로 처리한다
			rsdata.BadRequest(c, "주문에 존재하지 않는 상품이 포함되어 있습니다")
		case errors.Is(err, service.ErrEmptyOrderLines):
			rsdata.BadRequest(c, "주문 상품이 비어 있습니다")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"email": req.UserEmail,
			})
			rsdata.Internal(c)
		}
		return
	}

	rsdata.Created(c, "주문이 접수되었습니다", order)
}

// ListByEmail handles GET /orders/lists?email=
func (ctrl *OrderController) ListByEmail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email := c.Query("email")
	if email == "" {
		rsdata.BadRequest(c, "이메일을 입력해주세요")
		return
	}

	orders, err := ctrl.orderService.GetOrdersByEmail(email)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"email": email,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.OK(c, "주문 목록을 조회했습니다", orders)
}

// ListToday handles GET /orders/lists/today. 결과가 없어도 빈 목록으로
// 성공 응답한다.
func (ctrl *OrderController) ListToday(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetTodayOrders()
	if err != nil {
		log.Error("Failed to list today's orders", err, nil)
		rsdata.Internal(c)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	rsdata.OK(c, "오늘의 주문 목록을 조회했습니다", orders)
}

// Get handles GET /orders/lists/:orderId
func (ctrl *OrderController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		rsdata.BadRequest(c, "올바르지 않은 주문 ID입니다")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			rsdata.NotFound(c, "주문을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get order", err, map[string]interface{}{
			"order_id": orderID,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.OK(c, "주문을 조회했습니다", order)
}

// UpdateStatus handles PUT /orders/modify
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order status update request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(req.OrderID, model.OrderStatus(req.OrderStatus))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			rsdata.BadRequest(c, "올바르지 않은 주문 상태입니다")
		case errors.Is(err, service.ErrOrderNotFound):
			rsdata.NotFound(c, "주문을 찾을 수 없습니다")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": req.OrderID,
			})
			rsdata.Internal(c)
		}
		return
	}

	rsdata.OK(c, "주문 상태가 변경되었습니다", order)
}

// Delete handles DELETE /orders/delete/:orderId
func (ctrl *OrderController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		rsdata.BadRequest(c, "올바르지 않은 주문 ID입니다")
		return
	}

	if err := ctrl.orderService.DeleteOrder(uint(orderID)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			rsdata.NotFound(c, "주문을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": orderID,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.Send(c, rsdata.New(rsdata.CodeDeleted, "주문이 취소되었습니다", nil))
}
