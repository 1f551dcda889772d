package model

import (
	"time"
)

type UserRole string // 사용자 권한 타입

const (
	RoleUser  UserRole = "USER"  // 일반 사용자 권한
	RoleAdmin UserRole = "ADMIN" // 관리자 권한
)

// User 회원. 주문과 위시리스트는 user id가 아닌 이메일로 연결된다.
type User struct {
	ID        uint      `gorm:"primarykey" json:"userId"`                    // 사용자 ID
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`           // 이메일 (주문/위시리스트 조인 키)
	Password  string    `gorm:"not null" json:"-"`                           // 비밀번호 해시
	Name      string    `gorm:"not null" json:"name"`                        // 이름
	Address   string    `gorm:"type:varchar(300)" json:"address"`            // 주소
	Role      UserRole  `gorm:"type:varchar(20);default:'USER'" json:"role"` // 권한
	CreatedAt time.Time `json:"createDate"`                                  // 가입 시각
}

func (User) TableName() string {
	return "users"
}
