package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"locality_dev_v1_202609/pkg/utils"
)

// ==================== 规范化 (纯函数阶段) ====================
// 网络拉取 → 标签过滤 → 字段规范化 → 价格聚合 各阶段独立，
// 除拉取外全部是纯函数，单测不需要任何网络 mock

var multiSlashRe = regexp.MustCompile(`//+`)

// NormalizeEtsyListing 将 Etsy 商品详情规范化为 Item
// Etsy 返回的数据是实体编码过的，文本字段要解码；
// 链接保持编码原样，解码后就不是合法 URL 了
func NormalizeEtsyListing(detail *EtsyListingDetail) Item {
	item := Item{
		Name:        utils.SanitizeText(detail.Title),
		Tags:        utils.SanitizeTextSlice(detail.Tags),
		Departments: utils.SanitizeTextSlice(detail.TaxonomyPath),
		Description: utils.SanitizeRichText(detail.Description),
		Link:        utils.SanitizeEncoded(detail.URL),
	}

	if price, err := parsePrice(detail.Price); err == nil {
		item.PriceLow = price
		item.PriceHigh = price
	}

	for _, variation := range detail.Variations {
		for _, opt := range variation.Options {
			item.VariantTags = append(item.VariantTags, utils.SanitizeEncoded(opt.FormattedValue))
		}
	}
	// 无规格商品合成一个空标签变体，共用主图
	if len(item.VariantTags) == 0 {
		item.VariantTags = []string{""}
	}

	mainImage := ""
	if detail.MainImage != nil {
		mainImage = detail.MainImage.URL570xN
		if mainImage == "" {
			mainImage = detail.MainImage.URLFullxFull
		}
		mainImage = utils.SanitizeEncoded(mainImage)
	}
	item.Image = mainImage
	item.VariantImages = make([]string, len(item.VariantTags))
	for i := range item.VariantImages {
		item.VariantImages[i] = mainImage
	}

	return item
}

// ApplyEtsyOfferings 用库存报价扩展价格区间
// USD 报价直接取原始值，非 USD 取 before_conversion 换算值；
// 非 USD 又缺换算块时回退原始值，返回值示意出现过回退，由调用方记日志
func ApplyEtsyOfferings(item *Item, inv *EtsyInventory) (fellBack bool) {
	for _, product := range inv.Products {
		for _, offering := range product.Offerings {
			raw := offering.Price.CurrencyFormattedRaw
			if offering.Price.OriginalCurrencyCode != "USD" {
				if offering.Price.BeforeConversion != nil {
					raw = offering.Price.BeforeConversion.CurrencyFormattedRaw
				} else {
					fellBack = true
				}
			}
			price, err := parsePrice(raw)
			if err != nil {
				continue
			}
			if price < item.PriceLow {
				item.PriceLow = price
			}
			if price > item.PriceHigh {
				item.PriceHigh = price
			}
		}
	}
	return fellBack
}

// NormalizeShopifyProduct 将 Shopify 店面商品规范化为 Item
// deptMap 是业务配置的 product_type → 部门映射 (键已归一化)
// 无图或无变体的商品不可上架，返回 ok=false
func NormalizeShopifyProduct(p *ShopifyProduct, homepage string, deptMap map[string][]string) (Item, bool) {
	if len(p.Images) == 0 || len(p.Variants) == 0 {
		return Item{}, false
	}

	productTypes := make([]string, 0)
	for _, t := range strings.Split(p.ProductType, ",") {
		if cleaned := utils.SanitizeText(t); cleaned != "" {
			productTypes = append(productTypes, cleaned)
		}
	}

	departments := make([]string, 0)
	for _, pt := range productTypes {
		if mapped, ok := deptMap[utils.FoldTag(pt)]; ok {
			departments = append(departments, mapped...)
		}
	}

	// 标签 = product_type 拆分结果 ∪ 商品自带标签，去重保序
	seen := make(map[string]struct{})
	tags := make([]string, 0, len(productTypes)+len(p.Tags))
	for _, t := range append(append([]string{}, productTypes...), utils.SanitizeTextSlice(p.Tags)...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	// 链接保持编码，压掉路径中的重复斜杠
	link := utils.SanitizeEncoded(strings.TrimRight(homepage, "/") + "/products/" + p.Handle)
	link = multiSlashRe.ReplaceAllString(link, "/")
	link = strings.Replace(link, "https:/", "https://", 1)

	item := Item{
		Name:        utils.SanitizeText(p.Title),
		Tags:        tags,
		Departments: departments,
		Description: utils.SanitizeRichText(p.BodyHTML),
		Link:        link,
	}

	first, err := parsePrice(p.Variants[0].Price)
	if err == nil {
		item.PriceLow = first
		item.PriceHigh = first
	}
	for _, v := range p.Variants {
		item.VariantTags = append(item.VariantTags, utils.SanitizeText(v.Title))
		price, err := parsePrice(v.Price)
		if err != nil {
			continue
		}
		if price < item.PriceLow {
			item.PriceLow = price
		}
		if price > item.PriceHigh {
			item.PriceHigh = price
		}
	}

	// 店面图不经过清洗解码，图片 URL 本来就是编码形态
	image := strings.Replace(p.Images[0].Src, ".jpg", "_400x.jpg", 1)
	item.Image = image
	item.VariantImages = make([]string, len(item.VariantTags))
	for i := range item.VariantImages {
		item.VariantImages[i] = image
	}

	return item, true
}

func parsePrice(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
