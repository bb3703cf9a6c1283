package backend

import (
	"regexp"
	"strings"

	"douyin-downloader-go/utils"
)

var urlPattern = regexp.MustCompile(`https?://[^` + utils.SpaceClass + `]+`)

// ExtractURL 返回文本中第一个 http(s) 链接
func ExtractURL(text string) (string, bool) {
	u := urlPattern.FindString(text)
	return u, u != ""
}

// IsDouyinURL 只做子串判断
func IsDouyinURL(u string) bool {
	return strings.Contains(u, "douyin.com")
}
