// ABOUTME: Key and value checks for the SQLite cache
// ABOUTME: Rejects unusable keys and flags keys that look like SQL fragments

package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"postsheet-api/core/interfaces"
)

const (
	maxKeyLength   = 255
	maxValueLength = 4 << 20
	keyPreviewLen  = 50
)

// suspiciousPatterns never reach SQL unescaped, but their presence in a
// key usually means a caller is building keys from raw input
var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey rejects empty, oversized or NUL-bearing keys and warns about
// SQL-looking fragments
func ValidateKey(key string, logger interfaces.Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": previewKey(key),
			})
		}
	}
	return nil
}

// ValidateValue caps stored values; empty values are allowed
func ValidateValue(value []byte) error {
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}
	return nil
}

func previewKey(key string) string {
	if len(key) <= keyPreviewLen {
		return key
	}
	return key[:keyPreviewLen] + "..."
}
