/*
Copyright © 2025 changheonshin
*/
package utils

import (
	"strings"
	"syscall"
)

// IsPermissionError checks if an error is a permission error
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}

	if errno, ok := err.(syscall.Errno); ok {
		return errno == syscall.EACCES || errno == syscall.EPERM
	}

	errStr := err.Error()
	return strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "operation not permitted") ||
		strings.Contains(errStr, "access is denied")
}
