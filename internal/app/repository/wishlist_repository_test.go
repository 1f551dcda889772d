package repository

import (
	"testing"

	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishListRepositoryTest(t *testing.T) (WishListRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewWishListRepository(testDB), testDB
}

func TestWishListRepository_FindAllByEmail_LoadsProducts(t *testing.T) {
	repo, testDB := setupWishListRepositoryTest(t)

	product := createTestProduct(t, testDB, "콜롬비아 수프리모", 5000)

	item := &model.WishList{
		Email:     "buyer@example.com",
		ProductID: product.ID,
		Quantity:  2,
	}
	require.NoError(t, testDB.Create(item).Error)

	items, err := repo.FindAllByEmail("buyer@example.com")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "콜롬비아 수프리모", items[0].Product.ProductName)
	assert.Equal(t, 5000, items[0].Product.Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestWishListRepository_FindByEmailAndID_RejectsForeignOwner(t *testing.T) {
	repo, testDB := setupWishListRepositoryTest(t)

	product := createTestProduct(t, testDB, "케냐 AA", 6000)

	item := &model.WishList{
		Email:     "owner@example.com",
		ProductID: product.ID,
		Quantity:  1,
	}
	require.NoError(t, testDB.Create(item).Error)

	// 소유자 본인은 조회 가능
	found, err := repo.FindByEmailAndID("owner@example.com", item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	// 다른 사용자의 이메일로는 같은 ID를 조회할 수 없다
	_, err = repo.FindByEmailAndID("intruder@example.com", item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWishListRepository_UniqueEmailProductConstraint(t *testing.T) {
	_, testDB := setupWishListRepositoryTest(t)

	product := createTestProduct(t, testDB, "브라질 산토스", 4000)

	first := &model.WishList{Email: "buyer@example.com", ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(first).Error)

	duplicate := &model.WishList{Email: "buyer@example.com", ProductID: product.ID, Quantity: 3}
	assert.Error(t, testDB.Create(duplicate).Error)
}

func TestWishListRepository_Delete_ScopedToOwner(t *testing.T) {
	repo, testDB := setupWishListRepositoryTest(t)

	product := createTestProduct(t, testDB, "과테말라 안티구아", 5500)

	item := &model.WishList{
		Email:     "owner@example.com",
		ProductID: product.ID,
		Quantity:  1,
	}
	require.NoError(t, testDB.Create(item).Error)

	// 타인 이메일로는 삭제되지 않는다
	rows, err := repo.Delete("intruder@example.com", item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	rows, err = repo.Delete("owner@example.com", item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}
