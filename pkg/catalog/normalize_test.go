package catalog

import (
	"reflect"
	"testing"
)

// ==================== Etsy 规范化 ====================

func TestNormalizeEtsyListing_Basic(t *testing.T) {
	detail := &EtsyListingDetail{
		Title:        "Handmade Mug &amp; Saucer",
		Description:  "Nice mug<br>Dishwasher safe &amp; sturdy",
		Tags:         []string{"handmade", "ceramic"},
		TaxonomyPath: []string{"Home &amp; Living", "Kitchen"},
		URL:          "https://www.etsy.com/listing/123?ref=a&amp;b=c",
		Price:        "25.00",
		MainImage: &EtsyImage{
			URL570xN:     "https://img.etsystatic.com/570xN.jpg",
			URLFullxFull: "https://img.etsystatic.com/full.jpg",
		},
	}

	item := NormalizeEtsyListing(detail)

	if item.Name != "Handmade Mug & Saucer" {
		t.Errorf("Name = %q, 文本字段应解码", item.Name)
	}
	if item.Description != "Nice mug\nDishwasher safe & sturdy" {
		t.Errorf("Description = %q, <br> 应转换行", item.Description)
	}
	if item.Link != "https://www.etsy.com/listing/123?ref=a&amp;b=c" {
		t.Errorf("Link = %q, 链接应保持编码", item.Link)
	}
	if !reflect.DeepEqual(item.Departments, []string{"Home & Living", "Kitchen"}) {
		t.Errorf("Departments = %v", item.Departments)
	}
	if item.PriceLow != 25 || item.PriceHigh != 25 {
		t.Errorf("价格区间 = [%v, %v], want [25, 25]", item.PriceLow, item.PriceHigh)
	}
	if item.Image != "https://img.etsystatic.com/570xN.jpg" {
		t.Errorf("Image = %q, 应优先取 570xN", item.Image)
	}
}

func TestNormalizeEtsyListing_NoVariations(t *testing.T) {
	item := NormalizeEtsyListing(&EtsyListingDetail{
		Title: "Plain Mug",
		Price: "10.00",
		MainImage: &EtsyImage{
			URLFullxFull: "https://img.etsystatic.com/full.jpg",
		},
	})

	// 无规格商品合成一个空标签变体
	if !reflect.DeepEqual(item.VariantTags, []string{""}) {
		t.Errorf("VariantTags = %v, want [\"\"]", item.VariantTags)
	}
	if len(item.VariantImages) != 1 || item.VariantImages[0] != "https://img.etsystatic.com/full.jpg" {
		t.Errorf("VariantImages = %v, 应回退到 fullxfull 主图", item.VariantImages)
	}
}

func TestNormalizeEtsyListing_Variations(t *testing.T) {
	item := NormalizeEtsyListing(&EtsyListingDetail{
		Title: "Mug",
		Price: "10.00",
		Variations: []EtsyVariation{
			{Options: []EtsyVariationOption{
				{FormattedValue: "Small"},
				{FormattedValue: "Large"},
			}},
			{Options: []EtsyVariationOption{
				{FormattedValue: "Blue"},
			}},
		},
	})

	if !reflect.DeepEqual(item.VariantTags, []string{"Small", "Large", "Blue"}) {
		t.Errorf("VariantTags = %v", item.VariantTags)
	}
	if len(item.VariantImages) != len(item.VariantTags) {
		t.Errorf("变体标签与图片长度不一致: %d vs %d", len(item.VariantTags), len(item.VariantImages))
	}
}

func TestApplyEtsyOfferings(t *testing.T) {
	tests := []struct {
		name         string
		inv          EtsyInventory
		wantLow      float64
		wantHigh     float64
		wantFellBack bool
	}{
		{
			name: "USD报价直接取原始值",
			inv: EtsyInventory{Products: []EtsyInventoryProduct{
				{Offerings: []EtsyOffering{
					{Price: EtsyOfferingPrice{CurrencyFormattedRaw: "8.00", OriginalCurrencyCode: "USD"}},
					{Price: EtsyOfferingPrice{CurrencyFormattedRaw: "30.00", OriginalCurrencyCode: "USD"}},
				}},
			}},
			wantLow:  8,
			wantHigh: 30,
		},
		{
			name: "非USD取换算值",
			inv: EtsyInventory{Products: []EtsyInventoryProduct{
				{Offerings: []EtsyOffering{
					{Price: EtsyOfferingPrice{
						CurrencyFormattedRaw: "120.00",
						OriginalCurrencyCode: "EUR",
						BeforeConversion:     &EtsyConverted{CurrencyFormattedRaw: "35.00"},
					}},
				}},
			}},
			wantLow:  10,
			wantHigh: 35,
		},
		{
			name: "非USD缺换算块回退原始值",
			inv: EtsyInventory{Products: []EtsyInventoryProduct{
				{Offerings: []EtsyOffering{
					{Price: EtsyOfferingPrice{
						CurrencyFormattedRaw: "40.00",
						OriginalCurrencyCode: "EUR",
					}},
				}},
			}},
			wantLow:      10,
			wantHigh:     40,
			wantFellBack: true,
		},
		{
			name: "解析失败的报价跳过",
			inv: EtsyInventory{Products: []EtsyInventoryProduct{
				{Offerings: []EtsyOffering{
					{Price: EtsyOfferingPrice{CurrencyFormattedRaw: "n/a", OriginalCurrencyCode: "USD"}},
				}},
			}},
			wantLow:  10,
			wantHigh: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{PriceLow: 10, PriceHigh: 10}
			fellBack := ApplyEtsyOfferings(&item, &tt.inv)

			if item.PriceLow != tt.wantLow || item.PriceHigh != tt.wantHigh {
				t.Errorf("价格区间 = [%v, %v], want [%v, %v]",
					item.PriceLow, item.PriceHigh, tt.wantLow, tt.wantHigh)
			}
			if item.PriceLow > item.PriceHigh {
				t.Error("违反不变式: PriceLow > PriceHigh")
			}
			if fellBack != tt.wantFellBack {
				t.Errorf("fellBack = %v, want %v", fellBack, tt.wantFellBack)
			}
		})
	}
}

// ==================== Shopify 规范化 ====================

func TestNormalizeShopifyProduct_SkipUnsellable(t *testing.T) {
	// 无图或无变体的商品不可上架
	noImage := &ShopifyProduct{
		Title:    "Ghost",
		Variants: []ShopifyVariant{{Title: "Default", Price: "5.00"}},
	}
	if _, ok := NormalizeShopifyProduct(noImage, "https://shop.example.com", nil); ok {
		t.Error("无图商品不应通过")
	}

	noVariant := &ShopifyProduct{
		Title:  "Ghost",
		Images: []ShopifyImage{{Src: "https://cdn.shopify.com/a.jpg"}},
	}
	if _, ok := NormalizeShopifyProduct(noVariant, "https://shop.example.com", nil); ok {
		t.Error("无变体商品不应通过")
	}
}

func TestNormalizeShopifyProduct_Basic(t *testing.T) {
	p := &ShopifyProduct{
		Title:       "Ceramic Bowl",
		Handle:      "ceramic-bowl",
		BodyHTML:    "Great bowl<br>Microwave safe",
		ProductType: "Kitchen, Tableware",
		Tags:        []string{"ceramic", "Kitchen"},
		Variants: []ShopifyVariant{
			{Title: "Small", Price: "12.00"},
			{Title: "Large", Price: "18.00"},
		},
		Images: []ShopifyImage{{Src: "https://cdn.shopify.com/bowl.jpg"}},
	}
	deptMap := map[string][]string{
		"kitchen": {"Home", "Kitchen"},
	}

	item, ok := NormalizeShopifyProduct(p, "https://shop.example.com/", deptMap)
	if !ok {
		t.Fatal("商品应通过规范化")
	}

	if item.Link != "https://shop.example.com/products/ceramic-bowl" {
		t.Errorf("Link = %q", item.Link)
	}
	// product_type 拆分结果与自带标签取并集去重
	if !reflect.DeepEqual(item.Tags, []string{"Kitchen", "Tableware", "ceramic"}) {
		t.Errorf("Tags = %v", item.Tags)
	}
	if !reflect.DeepEqual(item.Departments, []string{"Home", "Kitchen"}) {
		t.Errorf("Departments = %v, 部门映射未生效", item.Departments)
	}
	if item.PriceLow != 12 || item.PriceHigh != 18 {
		t.Errorf("价格区间 = [%v, %v], want [12, 18]", item.PriceLow, item.PriceHigh)
	}
	if !reflect.DeepEqual(item.VariantTags, []string{"Small", "Large"}) {
		t.Errorf("VariantTags = %v", item.VariantTags)
	}
	if item.Image != "https://cdn.shopify.com/bowl_400x.jpg" {
		t.Errorf("Image = %q, 应替换为 400x 缩略图", item.Image)
	}
}

func TestNormalizeShopifyProduct_UnparsablePriceKeepsVariant(t *testing.T) {
	p := &ShopifyProduct{
		Title: "Bowl",
		Variants: []ShopifyVariant{
			{Title: "Small", Price: "12.00"},
			{Title: "Custom", Price: "contact us"},
		},
		Images: []ShopifyImage{{Src: "https://cdn.shopify.com/bowl.jpg"}},
	}

	item, ok := NormalizeShopifyProduct(p, "https://shop.example.com", nil)
	if !ok {
		t.Fatal("商品应通过规范化")
	}

	// 价格解析失败不影响变体收录，两个数组保持等长
	if len(item.VariantTags) != 2 {
		t.Errorf("VariantTags = %v, 解析失败的变体也应保留", item.VariantTags)
	}
	if len(item.VariantImages) != len(item.VariantTags) {
		t.Errorf("变体标签与图片长度不一致: %d vs %d", len(item.VariantTags), len(item.VariantImages))
	}
	if item.PriceLow != 12 || item.PriceHigh != 12 {
		t.Errorf("价格区间 = [%v, %v], want [12, 12]", item.PriceLow, item.PriceHigh)
	}
}

func TestNormalizeShopifyProduct_DoubleSlashSquashed(t *testing.T) {
	p := &ShopifyProduct{
		Title:    "Bowl",
		Handle:   "bowl",
		Variants: []ShopifyVariant{{Title: "Default", Price: "5.00"}},
		Images:   []ShopifyImage{{Src: "https://cdn.shopify.com/a.jpg"}},
	}

	item, ok := NormalizeShopifyProduct(p, "https://shop.example.com//", nil)
	if !ok {
		t.Fatal("商品应通过规范化")
	}
	if item.Link != "https://shop.example.com/products/bowl" {
		t.Errorf("Link = %q, 重复斜杠未压掉", item.Link)
	}
}
