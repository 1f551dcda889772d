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

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	ProductName  string `json:"productName" binding:"required,min=2,max=100"`
	Price        int    `json:"price" binding:"gte=0"`
	Description  string `json:"description" binding:"omitempty,max=1000"`
	ProductImage string `json:"productImage" binding:"omitempty,max=500"`
	Stock        int    `json:"stock" binding:"gte=0"`
}

type UpdateProductRequest struct {
	ProductName  string `json:"productName" binding:"required,min=2,max=100"`
	Price        int    `json:"price" binding:"gte=0"`
	Description  string `json:"description" binding:"omitempty,max=1000"`
	ProductImage string `json:"productImage" binding:"omitempty,max=500"`
	Stock        int    `json:"stock" binding:"gte=0"`
}

// Create handles POST /products
func (ctrl *ProductController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	product := &model.Product{
		ProductName:  req.ProductName,
		Price:        req.Price,
		Description:  req.Description,
		ProductImage: req.ProductImage,
		Stock:        req.Stock,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"product_name": req.ProductName,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.Created(c, "상품이 등록되었습니다", product)
}

// List handles GET /products
func (ctrl *ProductController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.GetAllProducts()
	if err != nil {
		log.Error("Failed to list products", err, nil)
		rsdata.Internal(c)
		return
	}

	rsdata.OK(c, "상품 목록을 조회했습니다", products)
}

// Get handles GET /products/:id
func (ctrl *ProductController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		rsdata.BadRequest(c, "올바르지 않은 상품 ID입니다")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			rsdata.NotFound(c, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"product_id": id,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.OK(c, "상품을 조회했습니다", product)
}

// Update handles PUT /products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		rsdata.BadRequest(c, "올바르지 않은 상품 ID입니다")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	product := &model.Product{
		ID:           uint(id),
		ProductName:  req.ProductName,
		Price:        req.Price,
		Description:  req.Description,
		ProductImage: req.ProductImage,
		Stock:        req.Stock,
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			rsdata.NotFound(c, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.OK(c, "상품이 수정되었습니다", product)
}

// Delete handles DELETE /products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		rsdata.BadRequest(c, "올바르지 않은 상품 ID입니다")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			rsdata.NotFound(c, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.Send(c, rsdata.New(rsdata.CodeDeleted, "상품이 삭제되었습니다", nil))
}
