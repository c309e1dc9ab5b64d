package controller

import (
	"io"

	"github.com/gin-gonic/gin"

	"locality_dev_v1_202609/pkg/search"
)

// SearchController 搜索代理
// 前端的检索参数原样转给搜索服务，密钥不下发到浏览器
type SearchController struct {
	index search.Index
}

func NewSearchController(index search.Index) *SearchController {
	return &SearchController{index: index}
}

// Query 商品检索
// @Summary 商品检索 (参数透传)
// @Tags Search
// @Router /api/search [post]
func (ctrl *SearchController) Query(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request body"})
		return
	}

	result, err := ctrl.index.Query(c.Request.Context(), string(body))
	if err != nil {
		c.JSON(502, gin.H{"code": 502, "message": "search backend error: " + err.Error()})
		return
	}
	c.Data(200, "application/json", result)
}
