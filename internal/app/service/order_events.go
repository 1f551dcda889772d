package service

import (
	"github.com/seonkim/beanshop-backend/internal/app/model"
)

const (
	OrderEventCreated       = "order_created"
	OrderEventStatusChanged = "order_status_changed"
)

// OrderEvent is pushed to connected admin dashboards when orders change.
type OrderEvent struct {
	Type        string            `json:"type"`
	OrderID     uint              `json:"orderId"`
	Email       string            `json:"email"`
	OrderStatus model.OrderStatus `json:"orderStatus"`
	TotalPrice  int               `json:"totalPrice"`
}

// OrderEventPublisher delivers order events to subscribers. Publishing is
// best effort and must never block or fail the originating request.
type OrderEventPublisher interface {
	PublishOrderEvent(event OrderEvent)
}
