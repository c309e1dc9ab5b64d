package catalog

// ==========================================
// DTO: 用于接收 Etsy Open API (v2) 返回的原始 JSON 数据
// ==========================================

// EtsyListingsResp 店铺在售商品列表响应
// GET /v2/shops/{shop_id}/listings/active?page=N
type EtsyListingsResp struct {
	Count   int           `json:"count"`
	Results []EtsyListing `json:"results"`
}

// EtsyListing 商品列表页中的摘要条目
// 列表页只带标签，用于过滤；其余字段通过详情接口补齐
type EtsyListing struct {
	ListingID int64    `json:"listing_id"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
}

// EtsyListingDetailResp 商品详情响应
// GET /v2/listings/{listing_id}?includes=MainImage,Variations
type EtsyListingDetailResp struct {
	Results []EtsyListingDetail `json:"results"`
}

// EtsyListingDetail 商品详情 (含主图与规格)
type EtsyListingDetail struct {
	ListingID    int64           `json:"listing_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Tags         []string        `json:"tags"`
	TaxonomyPath []string        `json:"taxonomy_path"`
	URL          string          `json:"url"`
	Price        string          `json:"price"`
	CurrencyCode string          `json:"currency_code"`
	MainImage    *EtsyImage      `json:"MainImage"`
	Variations   []EtsyVariation `json:"Variations"`
}

// EtsyImage 商品图片，优先使用 570xN 缩略图
type EtsyImage struct {
	URL570xN     string `json:"url_570xN"`
	URLFullxFull string `json:"url_fullxfull"`
}

// EtsyVariation 规格维度 (如颜色/尺寸)，options 为该维度的所有取值
type EtsyVariation struct {
	Options []EtsyVariationOption `json:"options"`
}

type EtsyVariationOption struct {
	FormattedValue string `json:"formatted_value"`
}

// EtsyInventoryResp 库存/报价响应
// GET /v2/listings/{listing_id}/inventory
type EtsyInventoryResp struct {
	Results EtsyInventory `json:"results"`
}

type EtsyInventory struct {
	Products []EtsyInventoryProduct `json:"products"`
}

type EtsyInventoryProduct struct {
	Offerings []EtsyOffering `json:"offerings"`
}

type EtsyOffering struct {
	Price EtsyOfferingPrice `json:"price"`
}

// EtsyOfferingPrice 报价，非 USD 报价带 before_conversion 换算块
type EtsyOfferingPrice struct {
	CurrencyFormattedRaw string         `json:"currency_formatted_raw"`
	OriginalCurrencyCode string         `json:"original_currency_code"`
	BeforeConversion     *EtsyConverted `json:"before_conversion"`
}

type EtsyConverted struct {
	CurrencyFormattedRaw string `json:"currency_formatted_raw"`
}
