package helpers

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const QRSize = 256

// ShareQR encodes link as a PNG QR code.
func ShareQR(link string) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
