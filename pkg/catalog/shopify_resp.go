package catalog

// ==========================================
// DTO: 用于接收 Shopify 店面 products.json 返回的原始数据
// ==========================================

// ShopifyProductsResp 店面商品列表响应
// GET {homepage}/collections/all/products.json?page=N
type ShopifyProductsResp struct {
	Products []ShopifyProduct `json:"products"`
}

// ShopifyProduct 店面商品
type ShopifyProduct struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	BodyHTML    string           `json:"body_html"`
	ProductType string           `json:"product_type"`
	Tags        []string         `json:"tags"`
	Variants    []ShopifyVariant `json:"variants"`
	Images      []ShopifyImage   `json:"images"`
}

// ShopifyVariant 商品变体，价格是字符串形态的十进制数
type ShopifyVariant struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

type ShopifyImage struct {
	Src string `json:"src"`
}
