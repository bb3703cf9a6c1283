// utils/utils.go
package utils

import (
	"os"
	"regexp"
)

// 文件名最大长度（不含后缀）
const MaxFileStemLength = 50

// SpaceClass 字符类内容，除 ASCII 空白外还包括 \v、不换行空格和全角空格等 Unicode 空白
const SpaceClass = `\s\x{000B}\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	unsafeCharPattern = regexp.MustCompile(`[^\w` + SpaceClass + `-]`)
	spaceRunPattern   = regexp.MustCompile(`[` + SpaceClass + `]+`)
)

// 确保目录存在
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// CleanFileStem 去掉非单词字符（保留空白和连字符），空白串替换为下划线，截断到 50 个字符。
// 剩余字符都是 ASCII，按字节截断是安全的。
func CleanFileStem(title string) string {
	stem := unsafeCharPattern.ReplaceAllString(title, "")
	stem = spaceRunPattern.ReplaceAllString(stem, "_")
	if len(stem) > MaxFileStemLength {
		stem = stem[:MaxFileStemLength]
	}
	return stem
}
