package service

import (
	"testing"

	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/repository"
	"github.com/seonkim/beanshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	productService := NewProductService(productRepo)

	return productService, testDB
}

func TestProductService_CreateAndGet(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	product := &model.Product{
		ProductName: "에티오피아 예가체프",
		Price:       4500,
		Description: "밝은 산미의 싱글 오리진",
		Stock:       30,
	}
	require.NoError(t, productService.CreateProduct(product))
	assert.NotZero(t, product.ID)

	found, err := productService.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "에티오피아 예가체프", found.ProductName)
	assert.Equal(t, 4500, found.Price)
}

func TestProductService_GetProductByID_NotFound(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	_, err := productService.GetProductByID(99999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateProduct_PreservesOrderCount(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	product := &model.Product{
		ProductName: "콜롬비아 수프리모",
		Price:       5000,
		Stock:       10,
	}
	require.NoError(t, productService.CreateProduct(product))

	// 주문으로 누적된 판매량을 흉내낸다
	require.NoError(t, testDB.Model(&model.Product{}).Where("id = ?", product.ID).Update("order_count", 42).Error)

	update := &model.Product{
		ID:          product.ID,
		ProductName: "콜롬비아 수프리모 (리뉴얼)",
		Price:       5300,
		Stock:       20,
	}
	require.NoError(t, productService.UpdateProduct(update))

	found, err := productService.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "콜롬비아 수프리모 (리뉴얼)", found.ProductName)
	assert.Equal(t, 5300, found.Price)
	assert.Equal(t, 42, found.OrderCount)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	err := productService.UpdateProduct(&model.Product{ID: 99999, ProductName: "유령 원두", Price: 1000})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	product := &model.Product{ProductName: "케냐 AA", Price: 6000}
	require.NoError(t, productService.CreateProduct(product))

	require.NoError(t, productService.DeleteProduct(product.ID))
	assert.ErrorIs(t, productService.DeleteProduct(product.ID), ErrProductNotFound)
}
