package service

import (
	"errors"
	"fmt"

	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/repository"
	"github.com/seonkim/beanshop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWishItemNotFound = errors.New("wishlist item not found")
)

type WishListService interface {
	AddWishItem(email string, productID uint, quantity int) (*model.WishList, bool, error)
	GetWishList(email string) ([]model.WishList, error)
	UpdateQuantity(email string, wishID uint, quantity int) (*model.WishList, error)
	DeleteWishItem(email string, wishID uint) error
}

type wishListService struct {
	wishRepo repository.WishListRepository
	db       *gorm.DB
}

func NewWishListService(wishRepo repository.WishListRepository, db *gorm.DB) WishListService {
	return &wishListService{
		wishRepo: wishRepo,
		db:       db,
	}
}

// AddWishItem inserts a new entry or increments the existing one for the
// same (email, product). The returned bool is true when a new row was
// created. 상품 행을 잠근 상태에서 조회와 갱신을 한 트랜잭션으로 묶어
// 동시에 같은 요청이 들어와도 중복 행이 생기지 않으며, (email, product_id)
// 유니크 제약이 최후의 방어선이 된다.
func (s *wishListService) AddWishItem(email string, productID uint, quantity int) (*model.WishList, bool, error) {
	logger.Info("Adding wishlist item", map[string]interface{}{
		"email":      email,
		"product_id": productID,
		"quantity":   quantity,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during wishlist upsert, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"email":      email,
				"product_id": productID,
			})
		}
	}()

	var product model.Product
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, productID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to wishlist: product not found", map[string]interface{}{
				"email":      email,
				"product_id": productID,
			})
			return nil, false, ErrProductNotFound
		}
		logger.Error("Failed to fetch product during wishlist upsert", err, map[string]interface{}{
			"email":      email,
			"product_id": productID,
		})
		return nil, false, err
	}

	var item model.WishList
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ? AND product_id = ?", email, productID).
		First(&item).Error

	created := false
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := tx.Save(&item).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to increment wishlist quantity", err, map[string]interface{}{
				"wish_id": item.ID,
			})
			return nil, false, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = model.WishList{
			Email:     email,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to create wishlist item", err, map[string]interface{}{
				"email":      email,
				"product_id": productID,
			})
			return nil, false, err
		}
		created = true
	default:
		tx.Rollback()
		logger.Error("Failed to check existing wishlist item", err, map[string]interface{}{
			"email":      email,
			"product_id": productID,
		})
		return nil, false, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit wishlist upsert", err, map[string]interface{}{
			"email":      email,
			"product_id": productID,
		})
		return nil, false, err
	}

	item.Product = product

	logger.Info("Wishlist item upserted", map[string]interface{}{
		"wish_id":  item.ID,
		"created":  created,
		"quantity": item.Quantity,
	})
	return &item, created, nil
}

func (s *wishListService) GetWishList(email string) ([]model.WishList, error) {
	logger.Debug("Fetching wishlist", map[string]interface{}{
		"email": email,
	})

	items, err := s.wishRepo.FindAllByEmail(email)
	if err != nil {
		logger.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("Wishlist fetched successfully", map[string]interface{}{
		"email": email,
		"count": len(items),
	})
	return items, nil
}

// UpdateQuantity requires both email and wishID to match the entry.
func (s *wishListService) UpdateQuantity(email string, wishID uint, quantity int) (*model.WishList, error) {
	logger.Info("Updating wishlist quantity", map[string]interface{}{
		"email":    email,
		"wish_id":  wishID,
		"quantity": quantity,
	})

	item, err := s.wishRepo.FindByEmailAndID(email, wishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Wishlist item not found for update", map[string]interface{}{
				"email":   email,
				"wish_id": wishID,
			})
			return nil, ErrWishItemNotFound
		}
		logger.Error("Failed to fetch wishlist item for update", err, map[string]interface{}{
			"email":   email,
			"wish_id": wishID,
		})
		return nil, err
	}

	item.Quantity = quantity
	if err := s.wishRepo.Update(item); err != nil {
		logger.Error("Failed to update wishlist quantity", err, map[string]interface{}{
			"wish_id": wishID,
		})
		return nil, err
	}

	logger.Info("Wishlist quantity updated successfully", map[string]interface{}{
		"wish_id":  wishID,
		"quantity": quantity,
	})
	return item, nil
}

func (s *wishListService) DeleteWishItem(email string, wishID uint) error {
	logger.Info("Deleting wishlist item", map[string]interface{}{
		"email":   email,
		"wish_id": wishID,
	})

	rows, err := s.wishRepo.Delete(email, wishID)
	if err != nil {
		logger.Error("Failed to delete wishlist item", err, map[string]interface{}{
			"email":   email,
			"wish_id": wishID,
		})
		return err
	}
	if rows == 0 {
		logger.Warn("Cannot delete: wishlist item not found", map[string]interface{}{
			"email":   email,
			"wish_id": wishID,
		})
		return ErrWishItemNotFound
	}

	logger.Info("Wishlist item deleted successfully", map[string]interface{}{
		"email":   email,
		"wish_id": wishID,
	})
	return nil
}
