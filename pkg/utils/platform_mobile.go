//go:build mobile

package utils

// IsMobile ebitenmobile 构建（-tags mobile）始终按移动端处理：
// 没有鼠标，悬停只来自按住的触摸点
func IsMobile() bool {
	return true
}
