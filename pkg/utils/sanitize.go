package utils

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ==================== 文本清洗工具 ====================

// 全局使用一个 StrictPolicy，bluemonday 的 Policy 是并发安全的
var strictPolicy = bluemonday.StrictPolicy()

var brTagRe = regexp.MustCompile(`(?i)<br\s*/?>`)

// SanitizeEncoded 清洗文本但保留实体编码
// 用于 URL 类字段：链接本身必须保持编码，否则不是合法 URL
func SanitizeEncoded(s string) string {
	return strictPolicy.Sanitize(strings.TrimSpace(s))
}

// SanitizeText 清洗并解码普通文本字段 (标题/标签/部门)
// 平台返回的数据是实体编码过的，先去掉危险标记再解码
func SanitizeText(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(strings.TrimSpace(s)))
}

// SanitizeRichText 清洗商品描述类富文本
// 先解码让藏在实体里的标签现形，<br> 转换行，其余标签全部剥离；
// bluemonday 输出会重新转义文本，末尾再解一次还原纯文本
func SanitizeRichText(s string) string {
	s = html.UnescapeString(strings.TrimSpace(s))
	s = brTagRe.ReplaceAllString(s, "\n")
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SanitizeTextSlice 批量清洗，丢弃清洗后为空的元素
func SanitizeTextSlice(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if cleaned := SanitizeText(s); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// FoldTag 标签归一化：实体解码 + 去空白 + 小写
// Etsy 列表页的标签是实体编码形态，配置里的标签是解码形态，
// 两侧都折叠到解码形态后再匹配
func FoldTag(s string) string {
	return strings.ToLower(strings.TrimSpace(html.UnescapeString(s)))
}
