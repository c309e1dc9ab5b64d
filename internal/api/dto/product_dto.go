package dto

// ==================== 商品手动维护 ====================

// CreateProductRequest 手动新增商品请求
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=255"`
	Description   string   `json:"description"`
	Link          string   `json:"link" binding:"omitempty,max=512"`
	Image         string   `json:"image" binding:"omitempty,max=512"`
	Departments   []string `json:"departments"`
	Tags          []string `json:"tags"`
	Price         float64  `json:"price" binding:"gte=0"`
	PriceLow      float64  `json:"price_low" binding:"gte=0"`
	PriceHigh     float64  `json:"price_high" binding:"gte=0"`
	VariantTags   []string `json:"variant_tags"`
	VariantImages []string `json:"variant_images"`
}

// UpdateProductRequest 更新商品请求，字段同新增
type UpdateProductRequest = CreateProductRequest

// ProductInfo 商品信息
type ProductInfo struct {
	ObjectID      string   `json:"object_id"`
	BusinessID    int64    `json:"business_id"`
	ProductID     int64    `json:"product_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Link          string   `json:"link"`
	Image         string   `json:"image"`
	Departments   []string `json:"departments"`
	Tags          []string `json:"tags"`
	Price         float64  `json:"price"`
	PriceLow      float64  `json:"price_low"`
	PriceHigh     float64  `json:"price_high"`
	VariantTags   []string `json:"variant_tags"`
	VariantImages []string `json:"variant_images"`
}

// ProductListRequest 商品列表请求
type ProductListRequest struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

// ProductListResponse 商品列表响应
type ProductListResponse struct {
	List  []*ProductInfo `json:"list"`
	Total int64          `json:"total"`
}
