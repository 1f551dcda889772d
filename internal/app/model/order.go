package model

import (
	"time"
)

type OrderStatus string // 주문 상태 코드

const (
	OrderStatusReceived  OrderStatus = "주문 접수" // 주문 접수 (초기 상태)
	OrderStatusPreparing OrderStatus = "배송 준비" // 배송 준비
	OrderStatusShipping  OrderStatus = "배송 중"  // 배송 중
	OrderStatusDelivered OrderStatus = "배송 완료" // 배송 완료 (최종 상태)
)

// Valid reports whether s is one of the allowed order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusPreparing, OrderStatusShipping, OrderStatusDelivered:
		return true
	}
	return false
}

// Delivered reports whether s is the final delivery status.
func (s OrderStatus) Delivered() bool {
	return s == OrderStatusDelivered
}

// Order 주문 헤더. ProductName은 "첫 상품명 외 N개" 형식의 요약이며,
// TotalPrice와 OrderCount는 생성 시점에 항목 합계로 확정된다.
type Order struct {
	ID             uint        `gorm:"primarykey" json:"orderId"`                      // 주문 ID
	Email          string      `gorm:"not null;index" json:"email"`                    // 주문자 이메일
	OrderCount     int         `gorm:"not null" json:"orderCount"`                     // 총 주문 수량 (항목 수량 합)
	ProductName    string      `gorm:"not null" json:"productName"`                    // 대표 상품명 요약
	TotalPrice     int         `gorm:"not null" json:"totalPrice"`                     // 총 주문 금액
	Address        string      `gorm:"type:varchar(300)" json:"address"`               // 배송지 주소
	OrderStatus    OrderStatus `gorm:"type:varchar(20);default:'주문 접수'" json:"orderStatus"` // 주문 상태
	DeliveryStatus bool        `gorm:"default:false" json:"deliveryStatus"`            // 배송 완료 여부 (상태에서 파생)
	CreatedAt      time.Time   `json:"createDate"`                                     // 생성 시각
	UpdatedAt      time.Time   `json:"modifiedDate"`                                   // 수정 시각

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"` // 주문 항목 목록
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 주문 항목. ProductPrice는 주문 시점의 단가 스냅샷으로,
// 이후 상품 가격이 바뀌어도 변하지 않는다.
type OrderItem struct {
	ID           uint `gorm:"primarykey" json:"orderItemId"` // 주문 항목 ID
	OrderID      uint `gorm:"not null;index" json:"-"`       // 주문 ID
	ProductID    uint `gorm:"not null;index" json:"productId"` // 상품 ID
	OrderCount   int  `gorm:"not null" json:"orderCount"`    // 수량
	ProductPrice int  `gorm:"not null" json:"productPrice"`  // 단가 스냅샷
	TotalPrice   int  `gorm:"not null" json:"totalPrice"`    // 항목 합계 (단가 x 수량)
}

func (OrderItem) TableName() string {
	return "order_items"
}
