package db

import (
	"github.com/seonkim/beanshop-backend/config"
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/pkg/logger"
	"github.com/seonkim/beanshop-backend/pkg/util"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.WishList{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed creates the initial admin account if it does not exist yet.
func Seed(cfg *config.AdminConfig) error {
	return SeedAdminUser(DB, cfg)
}

// SeedAdminUser 관리자 계정이 없을 때만 생성한다.
func SeedAdminUser(database *gorm.DB, cfg *config.AdminConfig) error {
	var count int64
	if err := database.Model(&model.User{}).Where("email = ?", cfg.Email).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin account already exists, skipping seed", map[string]interface{}{
			"email": cfg.Email,
		})
		return nil
	}

	hashed, err := util.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:    cfg.Email,
		Password: hashed,
		Name:     cfg.Name,
		Role:     model.RoleAdmin,
	}
	if err := database.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Admin account seeded", map[string]interface{}{
		"user_id": admin.ID,
		"email":   admin.Email,
	})
	return nil
}
