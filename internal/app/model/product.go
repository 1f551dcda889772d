package model

import (
	"time"
)

type Product struct {
	ID           uint      `gorm:"primarykey" json:"productId"`       // 상품 ID
	ProductName  string    `gorm:"not null" json:"productName"`       // 상품명 (2~100자)
	Price        int       `gorm:"not null" json:"price"`             // 가격 (원 단위 정수)
	Description  string    `gorm:"type:varchar(1000)" json:"description"` // 상품 설명
	OrderCount   int       `gorm:"default:0" json:"orderCount"`       // 누적 주문 수량
	ProductImage string    `json:"productImage"`                      // 상품 이미지 URL
	Stock        int       `gorm:"default:0" json:"stock"`            // 재고 수량
	CreatedAt    time.Time `json:"createdAt"`                         // 등록 시각
	UpdatedAt    time.Time `json:"-"`                                 // 수정 시각

	// Relationships: 상품 삭제 시 주문 항목/위시리스트도 함께 제거된다
	OrderItems []OrderItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	WishItems  []WishList  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
