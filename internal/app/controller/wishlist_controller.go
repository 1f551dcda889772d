package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/service"
	"github.com/seonkim/beanshop-backend/internal/middleware"
	"github.com/seonkim/beanshop-backend/internal/rsdata"
)

type WishListController struct {
	wishService service.WishListService
}

func NewWishListController(wishService service.WishListService) *WishListController {
	return &WishListController{
		wishService: wishService,
	}
}

type AddWishItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type UpdateWishQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// WishListDto flattens a wishlist entry with its product for responses.
type WishListDto struct {
	WishID       uint   `json:"wishId"`
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"productName"`
	ProductPrice int    `json:"productPrice"`
	Email        string `json:"email"`
	Quantity     int    `json:"quantity"`
}

func toWishListDto(item *model.WishList) WishListDto {
	return WishListDto{
		WishID:       item.ID,
		ProductID:    item.ProductID,
		ProductName:  item.Product.ProductName,
		ProductPrice: item.Product.Price,
		Email:        item.Email,
		Quantity:     item.Quantity,
	}
}

// Add handles POST /api/v1/wishlists/:email. 같은 상품이 이미 있으면
// 수량을 누적하고, 생성/누적 여부를 결과 코드로 구분한다.
func (ctrl *WishListController) Add(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email := c.Param("email")

	var req AddWishItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid wishlist add request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	item, created, err := ctrl.wishService.AddWishItem(email, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			rsdata.NotFound(c, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to add wishlist item", err, map[string]interface{}{
			"email":      email,
			"product_id": req.ProductID,
		})
		rsdata.Internal(c)
		return
	}

	dto := toWishListDto(item)
	if created {
		rsdata.Send(c, rsdata.New(rsdata.CodeWishCreated, "위시리스트에 추가되었습니다", dto))
		return
	}
	rsdata.Send(c, rsdata.New(rsdata.CodeWishIncreased, "위시리스트 수량이 증가했습니다", dto))
}

// List handles GET /api/v1/wishlists/:email
func (ctrl *WishListController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email := c.Param("email")

	items, err := ctrl.wishService.GetWishList(email)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"email": email,
		})
		rsdata.Internal(c)
		return
	}

	dtos := make([]WishListDto, 0, len(items))
	for i := range items {
		dtos = append(dtos, toWishListDto(&items[i]))
	}

	rsdata.OK(c, "위시리스트를 조회했습니다", dtos)
}

// UpdateQuantity handles PUT /api/v1/wishlists/:email/:wishId
func (ctrl *WishListController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email := c.Param("email")
	wishID, err := strconv.ParseUint(c.Param("wishId"), 10, 32)
	if err != nil {
		rsdata.BadRequest(c, "올바르지 않은 위시리스트 ID입니다")
		return
	}

	var req UpdateWishQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid wishlist quantity update request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	item, err := ctrl.wishService.UpdateQuantity(email, uint(wishID), req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrWishItemNotFound) {
			rsdata.Send(c, rsdata.New(rsdata.CodeWishNotFound, "위시리스트 항목을 찾을 수 없습니다", nil))
			return
		}
		log.Error("Failed to update wishlist quantity", err, map[string]interface{}{
			"email":   email,
			"wish_id": wishID,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.OK(c, "위시리스트 수량이 변경되었습니다", toWishListDto(item))
}

// Delete handles DELETE /api/v1/wishlists/:email/:wishId
func (ctrl *WishListController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email := c.Param("email")
	wishID, err := strconv.ParseUint(c.Param("wishId"), 10, 32)
	if err != nil {
		rsdata.BadRequest(c, "올바르지 않은 위시리스트 ID입니다")
		return
	}

	if err := ctrl.wishService.DeleteWishItem(email, uint(wishID)); err != nil {
		if errors.Is(err, service.ErrWishItemNotFound) {
			rsdata.Send(c, rsdata.New(rsdata.CodeWishNotFound, "위시리스트 항목을 찾을 수 없습니다", nil))
			return
		}
		log.Error("Failed to delete wishlist item", err, map[string]interface{}{
			"email":   email,
			"wish_id": wishID,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.Send(c, rsdata.New(rsdata.CodeDeleted, "위시리스트 항목이 삭제되었습니다", nil))
}
