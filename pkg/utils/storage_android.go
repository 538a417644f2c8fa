//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 gdata 在 Android 上使用的应用目录存在且可写
//
// gdata 把数据放在 /data/data/{package}/ 下，但不会预先创建该目录，
// 必须在打开 gdata 存储之前调用。
func EnsureStorageDir() error {
	dir := StoragePath()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	os.Remove(probe)
	return nil
}

// StoragePath 返回 Android 应用数据目录，无法识别包名时返回空字符串
func StoragePath() string {
	pkg, err := androidPackage()
	if err != nil || pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}

// androidPackage 从 /proc/self/cmdline 读取包名（第一个 NUL 之前的部分）
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(bytes.TrimSpace(data)), nil
}
