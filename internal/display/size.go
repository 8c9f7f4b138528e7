package display

import (
	"fmt"
	"math/bits"
)

var binaryPrefixes = []string{" ", " ki", " Mi", " Gi", " Ti"}

// FormatSize formats n bytes as "<value> <prefix>B" with two decimals.
// The prefix is chosen from the highest set bit, so 1023 bytes stay
// "1023.00 B" and 1024 becomes "1.00 kiB". Non-positive sizes print as
// plain bytes.
func FormatSize(n int64) string {
	index := 0
	if n > 0 {
		index = (bits.Len64(uint64(n)) - 1) / 10
		if index >= len(binaryPrefixes) {
			index = len(binaryPrefixes) - 1
		}
	}
	value := float64(n) / float64(uint64(1)<<(index*10))
	return fmt.Sprintf("%.2f%sB", value, binaryPrefixes[index])
}
