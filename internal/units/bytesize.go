package units

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const bytesPerGigabyte = 1_000_000_000

// ParseByteSize converts strings such as "1 TB", "512 MB", "1.5 GB" or
// "4 GiB" into bytes. Decimal units are powers of 1000, binary units powers
// of 1024. Unparsable input yields 0.
func ParseByteSize(value string) uint64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	n, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0
	}
	return n
}

// FormatGigabytes renders a byte count in decimal gigabytes with two
// decimals, e.g. "1.50 GB".
func FormatGigabytes(bytes uint64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/bytesPerGigabyte)
}
