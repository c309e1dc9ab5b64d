package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"locality_dev_v1_202609/internal/api/dto"
	"locality_dev_v1_202609/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 商品手动维护 ====================

// ListProducts 商品列表
// @Summary 当前商家的商品分页列表
// @Tags Product
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ProductListResponse
// @Router /api/dashboard/products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	resp, err := ctrl.productService.ListProducts(c.Request.Context(), businessID, &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to list products: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": resp})
}

// GetProduct 商品详情
// @Summary 获取单个商品
// @Tags Product
// @Param id path int true "商品序号"
// @Success 200 {object} dto.ProductInfo
// @Router /api/dashboard/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "invalid product id"})
		return
	}

	info, err := ctrl.productService.GetProduct(c.Request.Context(), businessID, productID)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "product not found"})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": info})
}

// CreateProduct 手动新增商品
// @Summary 手动新增商品
// @Tags Product
// @Success 200 {object} dto.ProductInfo
// @Router /api/dashboard/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	info, err := ctrl.productService.CreateProduct(c.Request.Context(), businessID, &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to create product: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": info})
}

// UpdateProduct 更新商品
// @Summary 更新商品
// @Tags Product
// @Param id path int true "商品序号"
// @Success 200 {object} dto.ProductInfo
// @Router /api/dashboard/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "invalid product id"})
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	info, err := ctrl.productService.UpdateProduct(c.Request.Context(), businessID, productID, &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to update product: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": info})
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product
// @Param id path int true "商品序号"
// @Router /api/dashboard/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "invalid product id"})
		return
	}

	if err := ctrl.productService.DeleteProduct(c.Request.Context(), businessID, productID); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to delete product: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
