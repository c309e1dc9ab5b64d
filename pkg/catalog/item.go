package catalog

import (
	"locality_dev_v1_202609/pkg/utils"
)

// ==================== 规范化商品 ====================

// Item 平台无关的规范化商品
// 一次导入产出一组全新的 Item 整体替换业务旧商品集，不做字段级 diff
type Item struct {
	Name          string
	Tags          []string
	Departments   []string
	Description   string
	Link          string
	PriceLow      float64
	PriceHigh     float64
	VariantTags   []string
	VariantImages []string
	Image         string
}

// ==================== 标签过滤 ====================

// TagFilter include/exclude 标签过滤器
// 规则：配置了 include 时至少命中一个才保留；命中任意 exclude 一律剔除，
// exclude 优先级高于 include
type TagFilter struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

// NewTagFilter 创建过滤器，标签统一做大小写归一化
func NewTagFilter(includeTags, excludeTags []string) *TagFilter {
	f := &TagFilter{
		include: make(map[string]struct{}, len(includeTags)),
		exclude: make(map[string]struct{}, len(excludeTags)),
	}
	for _, t := range includeTags {
		if folded := utils.FoldTag(t); folded != "" {
			f.include[folded] = struct{}{}
		}
	}
	for _, t := range excludeTags {
		if folded := utils.FoldTag(t); folded != "" {
			f.exclude[folded] = struct{}{}
		}
	}
	return f
}

// Allow 判断携带这组标签的条目是否保留
func (f *TagFilter) Allow(tags []string) bool {
	shouldInclude := true
	if len(f.include) > 0 {
		shouldInclude = false
		for _, t := range tags {
			if _, ok := f.include[utils.FoldTag(t)]; ok {
				shouldInclude = true
				break
			}
		}
	}
	for _, t := range tags {
		if _, ok := f.exclude[utils.FoldTag(t)]; ok {
			return false
		}
	}
	return shouldInclude
}
