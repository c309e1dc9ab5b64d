package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ==================== Business 商家 ====================

// 导入来源平台
const (
	SourceEtsy    = "etsy"
	SourceShopify = "shopify"
)

type Business struct {
	BaseModel
	Name    string `gorm:"size:255;not null"`
	Email   string `gorm:"size:255;index"`
	Address string `gorm:"size:255"`
	// 多门店商家用逗号分隔多组坐标
	Latitude  string `gorm:"size:255"`
	Longitude string `gorm:"size:255"`
	LogoURL   string `gorm:"size:512"`

	// 商家的各平台店面主页，JSON 列，结构见 Homepages
	Homepages datatypes.JSON `gorm:"type:jsonb"`

	// 导入时分配的下一个商品 ID (持久计数器)
	// 导入开始时读取，结束时按本轮接受的商品数推进
	NextProductID int64 `gorm:"default:1"`

	// 各平台导入过滤配置，JSON 列，结构见 UploadSettings
	UploadSettings datatypes.JSON `gorm:"type:jsonb"`

	// 商家在商城中展示的部门分类
	Departments pq.StringArray `gorm:"type:text[]"`
}

func (Business) TableName() string {
	return "businesses"
}

// Homepages 各平台店面主页
type Homepages struct {
	Homepage        string `json:"homepage,omitempty"`
	EtsyHomepage    string `json:"etsyHomepage,omitempty"`
	ShopifyHomepage string `json:"shopifyHomepage,omitempty"`
	SquareHomepage  string `json:"squareHomepage,omitempty"`
}

// PlatformSettings 单平台导入过滤配置
type PlatformSettings struct {
	IncludeTags []string `json:"includeTags,omitempty"`
	ExcludeTags []string `json:"excludeTags,omitempty"`
	// Shopify 专用：product_type → 部门映射
	DepartmentMapping []DepartmentMapping `json:"departmentMapping,omitempty"`
}

type DepartmentMapping struct {
	Key         string   `json:"key"`
	Departments []string `json:"departments"`
}

// UploadSettings 按平台划分的导入配置
type UploadSettings struct {
	Etsy    *PlatformSettings `json:"etsy,omitempty"`
	Shopify *PlatformSettings `json:"shopify,omitempty"`
}

// ParseHomepages 解析主页 JSON 列，空列返回零值
func (b *Business) ParseHomepages() (Homepages, error) {
	var h Homepages
	if len(b.Homepages) == 0 {
		return h, nil
	}
	if err := json.Unmarshal(b.Homepages, &h); err != nil {
		return h, fmt.Errorf("解析 homepages 失败: %w", err)
	}
	return h, nil
}

// ParseUploadSettings 解析导入配置 JSON 列，空列返回零值
func (b *Business) ParseUploadSettings() (UploadSettings, error) {
	var s UploadSettings
	if len(b.UploadSettings) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b.UploadSettings, &s); err != nil {
		return s, fmt.Errorf("解析 upload_settings 失败: %w", err)
	}
	return s, nil
}

// PlatformSettingsFor 取指定平台的配置，未配置返回空配置
func (s UploadSettings) PlatformSettingsFor(source string) PlatformSettings {
	var p *PlatformSettings
	switch source {
	case SourceEtsy:
		p = s.Etsy
	case SourceShopify:
		p = s.Shopify
	}
	if p == nil {
		return PlatformSettings{}
	}
	return *p
}

// DepartmentMap 归一化后的 product_type → 部门映射
func (p PlatformSettings) DepartmentMap() map[string][]string {
	m := make(map[string][]string, len(p.DepartmentMapping))
	for _, entry := range p.DepartmentMapping {
		key := strings.ToLower(strings.TrimSpace(entry.Key))
		departments := make([]string, 0, len(entry.Departments))
		for _, d := range entry.Departments {
			departments = append(departments, strings.TrimSpace(d))
		}
		m[key] = departments
	}
	return m
}
