package repository

import (
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishListRepository interface {
	FindAllByEmail(email string) ([]model.WishList, error)
	FindByEmailAndID(email string, wishID uint) (*model.WishList, error)
	Update(item *model.WishList) error
	Delete(email string, wishID uint) (int64, error)
}

type wishListRepository struct {
	db *gorm.DB
}

func NewWishListRepository(db *gorm.DB) WishListRepository {
	return &wishListRepository{db: db}
}

// FindAllByEmail returns wishlist entries joined with live product data.
func (r *wishListRepository) FindAllByEmail(email string) ([]model.WishList, error) {
	logger.Debug("Finding wishlist by email in database", map[string]interface{}{
		"email": email,
	})

	var items []model.WishList
	if err := r.db.Preload("Product").
		Where("email = ?", email).
		Order("id ASC").
		Find(&items).Error; err != nil {
		logger.Error("Failed to find wishlist by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Debug("Wishlist found by email in database", map[string]interface{}{
		"email": email,
		"count": len(items),
	})
	return items, nil
}

// FindByEmailAndID requires both keys to match so a user cannot touch
// another user's entry by guessing ids.
func (r *wishListRepository) FindByEmailAndID(email string, wishID uint) (*model.WishList, error) {
	logger.Debug("Finding wishlist item in database", map[string]interface{}{
		"email":   email,
		"wish_id": wishID,
	})

	var item model.WishList
	if err := r.db.Preload("Product").
		Where("email = ? AND id = ?", email, wishID).
		First(&item).Error; err != nil {
		logger.Error("Failed to find wishlist item in database", err, map[string]interface{}{
			"email":   email,
			"wish_id": wishID,
		})
		return nil, err
	}

	return &item, nil
}

func (r *wishListRepository) Update(item *model.WishList) error {
	logger.Debug("Updating wishlist item in database", map[string]interface{}{
		"wish_id":  item.ID,
		"quantity": item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update wishlist item in database", err, map[string]interface{}{
			"wish_id": item.ID,
		})
		return err
	}

	return nil
}

func (r *wishListRepository) Delete(email string, wishID uint) (int64, error) {
	logger.Debug("Deleting wishlist item from database", map[string]interface{}{
		"email":   email,
		"wish_id": wishID,
	})

	result := r.db.Where("email = ? AND id = ?", email, wishID).Delete(&model.WishList{})
	if result.Error != nil {
		logger.Error("Failed to delete wishlist item from database", result.Error, map[string]interface{}{
			"email":   email,
			"wish_id": wishID,
		})
		return 0, result.Error
	}

	logger.Debug("Wishlist item deleted from database", map[string]interface{}{
		"email":         email,
		"wish_id":       wishID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
