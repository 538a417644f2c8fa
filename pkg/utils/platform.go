//go:build !mobile

package utils

import "os"

// mobileEmulateEnv 设置为 "1" 时桌面端按移动端处理输入（用于本地调试触摸流程）
const mobileEmulateEnv = "GLASSFX_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
func IsMobile() bool {
	return os.Getenv(mobileEmulateEnv) == "1"
}
