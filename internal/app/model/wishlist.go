package model

// WishList 위시리스트 항목. (email, product_id) 조합은 유일하며,
// 같은 상품을 다시 담으면 새 행 대신 수량이 증가한다.
type WishList struct {
	ID        uint   `gorm:"primaryKey" json:"wishId"`                                        // 찜 항목 ID
	Email     string `gorm:"not null;uniqueIndex:idx_wish_email_product" json:"email"`        // 사용자 이메일
	ProductID uint   `gorm:"not null;uniqueIndex:idx_wish_email_product" json:"productId"`    // 상품 ID
	Quantity  int    `gorm:"not null" json:"quantity"`                                        // 희망 수량

	// 상품 정보는 스냅샷이 아니라 항상 현재 카탈로그 기준으로 조회한다
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (WishList) TableName() string {
	return "wish_lists"
}
