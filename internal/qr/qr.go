// Package qr renders QR code images for stored URLs.
package qr

import (
	"fmt"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

// ModuleSize is the number of pixels per QR module.
const ModuleSize = 10

// Encode returns a PNG image encoding content with low error correction.
// The symbol version grows to fit the content and carries the standard
// four-module quiet zone.
func Encode(content string) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	code.ForegroundColor = color.Black
	code.BackgroundColor = color.White

	png, err := code.PNG(-ModuleSize)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	return png, nil
}
