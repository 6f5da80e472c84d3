package pix

import qrcode "github.com/skip2/go-qrcode"

// DefaultQRSize is the PNG edge in pixels.
const DefaultQRSize = 256

// QRCodePNG renders payload as a scannable PNG image.
func QRCodePNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
