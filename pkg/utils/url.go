package utils

import (
	"regexp"
	"strings"
)

// ==================== URL 工具 ====================

var domainRe = regexp.MustCompile(`www\.[^/]+`)

// AddHTTPSProtocol 将任意形态的主页地址规范化为 https://www.xxx
func AddHTTPSProtocol(url string) string {
	switch {
	case strings.HasPrefix(url, "https://www."):
		return url
	case strings.HasPrefix(url, "http://www."):
		return "https://www." + url[len("http://www."):]
	case strings.HasPrefix(url, "https://"):
		return "https://www." + url[len("https://"):]
	case strings.HasPrefix(url, "http://"):
		return "https://www." + url[len("http://"):]
	case strings.HasPrefix(url, "www."):
		return "https://" + url
	default:
		return "https://www." + url
	}
}

// ExtractDomain 从主页地址中提取 www 域名部分，找不到返回空串
func ExtractDomain(homepage string) string {
	return domainRe.FindString(homepage)
}

// TrailingSegment 取 URL 最后一个路径段 (Etsy 店铺主页的末段即 shop id)
func TrailingSegment(homepage string) string {
	trimmed := strings.TrimRight(homepage, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}
