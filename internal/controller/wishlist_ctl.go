package controller

import (
	"github.com/gin-gonic/gin"

	"locality_dev_v1_202609/internal/api/dto"
	"locality_dev_v1_202609/internal/middleware"
	"locality_dev_v1_202609/internal/service"
)

type WishlistController struct {
	wishlistService *service.WishlistService
}

func NewWishlistController(wishlistService *service.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

// ==================== 收藏夹 ====================

// List 收藏夹内容
// @Summary 当前用户收藏夹内容
// @Tags Wishlist
// @Router /api/wishlist [get]
func (ctrl *WishlistController) List(c *gin.Context) {
	objects, err := ctrl.wishlistService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to load wishlist: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": objects})
}

// Add 加入收藏
// @Summary 加入收藏
// @Tags Wishlist
// @Router /api/wishlist [post]
func (ctrl *WishlistController) Add(c *gin.Context) {
	var req dto.WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	if err := ctrl.wishlistService.Add(c.Request.Context(), middleware.GetUserID(c), req.ObjectID); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to add to wishlist: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// Remove 移出收藏
// @Summary 移出收藏
// @Tags Wishlist
// @Param object_id path string true "索引 objectID"
// @Router /api/wishlist/{object_id} [delete]
func (ctrl *WishlistController) Remove(c *gin.Context) {
	if err := ctrl.wishlistService.Remove(c.Request.Context(), middleware.GetUserID(c), c.Param("object_id")); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to remove from wishlist: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
