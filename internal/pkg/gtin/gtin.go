package gtin

import "strings"

// Normalize canonicalizes a scanned barcode to the 13-digit GTIN form.
// Non-digit characters are stripped; EAN-8 and UPC-A (12 digit) codes are
// left-padded with zeros. Anything else is returned as-is and surfaces as
// "not found" downstream.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 8 || len(digits) == 12 {
		return strings.Repeat("0", 13-len(digits)) + digits
	}
	return digits
}
