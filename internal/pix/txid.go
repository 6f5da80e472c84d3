package pix

import (
	"strings"
	"unicode"
)

const (
	txIDPrefix    = "PED"
	txIDOrderPart = 20
)

// DeriveTxID builds the transaction id embedded in the payload from an order
// id: "PED" followed by the first 20 ASCII alphanumerics of the id.
func DeriveTxID(orderID string) string {
	var b strings.Builder
	b.WriteString(txIDPrefix)
	n := 0
	for _, r := range orderID {
		if n == txIDOrderPart {
			break
		}
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// MaskKey keeps the first 4 characters of a PIX key.
func MaskKey(key string) string {
	r := []rune(key)
	if len(r) > 4 {
		r = r[:4]
	}
	return string(r) + "****"
}
