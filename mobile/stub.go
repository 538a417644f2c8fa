//go:build !mobile

// stub.go - 桌面构建的占位文件
//
// mobile 包只有在 -tags mobile 时才注册画廊（见 mobile.go），
// 普通构建下保留同名导出函数，go build ./... 与 go vet ./... 不会因空包失败。
package mobile

// Dummy 与移动端构建导出相同的符号
func Dummy() {}
