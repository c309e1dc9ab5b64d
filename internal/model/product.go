package model

import (
	"fmt"

	"github.com/lib/pq"
)

// ==================== Product 商品 (索引文档的本地镜像) ====================

// Product 索引中反规范化商品文档的本地镜像
// 每次导入整体替换商家名下的商品集，单条记录不做原地修改
type Product struct {
	BaseModel
	BusinessID int64 `gorm:"index:idx_business_product,unique;not null"`
	// 商家维度的商品序号，由 businesses.next_product_id 计数器分配
	ProductID int64 `gorm:"index:idx_business_product,unique;not null"`

	Name        string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	Link        string         `gorm:"size:512"`
	Image       string         `gorm:"size:512"`
	Departments pq.StringArray `gorm:"type:text[]"`
	Tags        pq.StringArray `gorm:"type:text[]"`

	// 价格区间不变式: price_low <= price_high
	Price     float64 `gorm:"default:0"`
	PriceLow  float64 `gorm:"default:0"`
	PriceHigh float64 `gorm:"default:0"`

	// 变体，两个数组等长；无规格商品合成一个空标签变体
	VariantTags   pq.StringArray `gorm:"type:text[]"`
	VariantImages pq.StringArray `gorm:"type:text[]"`
}

func (Product) TableName() string {
	return "products"
}

// ObjectID 对应搜索索引中的 objectID
func (p *Product) ObjectID() string {
	return fmt.Sprintf("%d_%d", p.BusinessID, p.ProductID)
}
