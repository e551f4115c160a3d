package utils

import (
	"fmt"
	"strings"
)

var byteSizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatByteSize converts a byte length into a short lower-case unit string such as "512b" or "1.5kb".
func FormatByteSize(byteCount int64) string {
	if byteCount < 0 {
		return "0b"
	}
	value := float64(byteCount)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(byteSizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", byteCount)
	}
	if value < 10 {
		formatted := strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0")
		return formatted + byteSizeUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", value, byteSizeUnits[unitIndex])
}
